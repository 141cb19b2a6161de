package create_review

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetRatingsByProvider(ctx context.Context, providerID int64) ([]int, error)
}

// ProviderRepository интерфейс репозитория исполнителей
type ProviderRepository interface {
	LockForRatingUpdate(ctx context.Context, providerID int64) error
	UpdateRatingSummary(ctx context.Context, providerID int64, average float64, total int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
