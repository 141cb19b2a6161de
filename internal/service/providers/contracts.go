package providers

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// ProviderRepository интерфейс репозитория исполнителей
type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.ServiceProvider) (*domain.ServiceProvider, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceProvider, error)
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	GetByProvider(ctx context.Context, providerID int64) ([]*domain.Review, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
