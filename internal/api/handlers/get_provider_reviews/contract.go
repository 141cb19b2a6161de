package get_provider_reviews

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/providers/models"
)

type ProviderService interface {
	GetReviews(ctx context.Context, providerID int64) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
