package create_review

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// Request модель запроса на создание отзыва
type Request struct {
	Actor     domain.Actor
	BookingID int64
	Rating    int
	Comment   *string
}

// Response созданный отзыв и новая сводка рейтинга исполнителя
type Response struct {
	Review        *domain.Review
	AverageRating float64
	TotalReviews  int
}
