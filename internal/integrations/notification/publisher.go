package notification

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/kafka"
)

// KafkaPublisher публикует события в топик, который читает сервис рассылки
type KafkaPublisher struct {
	producer MessageProducer
	source   string
}

// NewKafkaPublisher создаёт публикатор
func NewKafkaPublisher(producer MessageProducer, source string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source}
}

// Publish отправляет событие. Ключ сообщения - id бронирования
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.BookingLifecycleEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(event.BookingID, 10)).
		WithEventType(string(event.Kind)).
		WithSource(p.source).
		WithSchemaVersion(SchemaVersion).
		WithTimestamp(event.OccurredAt).
		WithValue(FromDomainEvent(event)).
		Build()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildMessage, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("%w: booking_id=%d kind=%s: %v", ErrPublish, event.BookingID, event.Kind, err)
	}

	return nil
}

// LogPublisher только пишет событие в лог. Используется, когда kafka выключена
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher создаёт публикатор-заглушку
func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.BookingLifecycleEvent) error {
	p.logger.Info("Notification: kind=%s recipient=%s booking_id=%d client=%d provider=%d",
		event.Kind, event.Recipient, event.BookingID, event.ClientID, event.ProviderID)
	return nil
}
