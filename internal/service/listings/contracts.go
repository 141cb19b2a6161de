package listings

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// ListingRepository интерфейс репозитория услуг
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.ServiceListing) (*domain.ServiceListing, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceListing, error)
	GetByProvider(ctx context.Context, providerID int64, activeOnly bool) ([]*domain.ServiceListing, error)
	Search(ctx context.Context, filter domain.ListingSearchFilter) ([]*domain.ServiceListing, error)
	Update(ctx context.Context, listing *domain.ServiceListing) (*domain.ServiceListing, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// ProviderRepository интерфейс репозитория исполнителей
type ProviderRepository interface {
	GetByProfileID(ctx context.Context, profileID int64) (*domain.ServiceProvider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
