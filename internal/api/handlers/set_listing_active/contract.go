package set_listing_active

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
)

type ListingService interface {
	SetActive(ctx context.Context, listingID int64, active bool, actor domain.Actor) (*models.ListingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
