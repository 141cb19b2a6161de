package transition_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error)
	ConditionalUpdate(
		ctx context.Context,
		id int64,
		expected domain.BookingStatus,
		target domain.BookingStatus,
		patch domain.BookingStatusPatch,
	) (*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByProvider(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error)
}

// ProviderRepository интерфейс репозитория исполнителей
type ProviderRepository interface {
	GetByProfileID(ctx context.Context, profileID int64) (*domain.ServiceProvider, error)
}

// Notifier отправляет уведомления после коммита. Не должен блокировать
type Notifier interface {
	Notify(ctx context.Context, event domain.BookingLifecycleEvent)
}

// MetricsRecorder учёт переходов
type MetricsRecorder interface {
	RecordTransition(from, to, result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
