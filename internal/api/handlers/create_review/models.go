package create_review

import (
	"time"

	createReview "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_review"
)

// CreateReviewRequest HTTP request model
type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// ReviewResponse HTTP response model
type ReviewResponse struct {
	ID                    int64     `json:"id"`
	BookingID             int64     `json:"bookingId"`
	ProviderID            int64     `json:"providerId"`
	Rating                int       `json:"rating"`
	Comment               *string   `json:"comment,omitempty"`
	ProviderAverageRating float64   `json:"providerAverageRating"`
	ProviderTotalReviews  int       `json:"providerTotalReviews"`
	CreatedAt             time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReview.Response) *ReviewResponse {
	return &ReviewResponse{
		ID:                    resp.Review.ID,
		BookingID:             resp.Review.BookingID,
		ProviderID:            resp.Review.ProviderID,
		Rating:                resp.Review.Rating,
		Comment:               resp.Review.Comment,
		ProviderAverageRating: resp.AverageRating,
		ProviderTotalReviews:  resp.TotalReviews,
		CreatedAt:             resp.Review.CreatedAt,
	}
}
