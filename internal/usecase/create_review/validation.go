package create_review

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if req.Comment != nil && len([]rune(*req.Comment)) > domain.MaxReviewCommentLength {
		return fmt.Errorf("%w: comment longer than %d characters", ErrInvalidInput, domain.MaxReviewCommentLength)
	}

	return nil
}

// ratingSummary средняя оценка с округлением до сотых и количество отзывов
func ratingSummary(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*100) / 100, len(ratings)
}
