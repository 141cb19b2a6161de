package availability

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// AvailabilityRepository интерфейс репозитория недельных правил
type AvailabilityRepository interface {
	GetByProvider(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error)
	ReplaceForProvider(ctx context.Context, providerID int64, rules []*domain.AvailabilityRule) error
}

// ProviderRepository интерфейс репозитория исполнителей
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceProvider, error)
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
