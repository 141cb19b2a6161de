package notification

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/kafka"
)

// Publisher доставляет событие во внешний канал уведомлений
type Publisher interface {
	Publish(ctx context.Context, event domain.BookingLifecycleEvent) error
}

// MessageProducer реализуется *kafka.Producer
type MessageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// MetricsRecorder реализуется *metrics.Metrics
type MetricsRecorder interface {
	RecordNotification(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
