package search_listings

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
)

type ListingService interface {
	Search(ctx context.Context, req *models.SearchListingsRequest) (*models.ListingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
