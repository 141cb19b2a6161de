package get_provider_listings

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
)

type ListingService interface {
	GetByProvider(ctx context.Context, providerID int64) (*models.ListingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
