package notification

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
)

// Dispatcher асинхронно отправляет события жизненного цикла.
// Notify никогда не блокирует и не возвращает ошибок: сбой доставки
// не должен влиять на уже записанный переход статуса
type Dispatcher struct {
	publisher      Publisher
	metrics        MetricsRecorder
	logger         Logger
	publishTimeout time.Duration

	queue  chan domain.BookingLifecycleEvent
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// NewDispatcher создаёт диспетчер и запускает воркер
func NewDispatcher(publisher Publisher, queueSize int, publishTimeout time.Duration, metrics MetricsRecorder, logger Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}

	d := &Dispatcher{
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
		publishTimeout: publishTimeout,
		queue:          make(chan domain.BookingLifecycleEvent, queueSize),
		done:           make(chan struct{}),
	}

	go d.run()
	return d
}

// Notify ставит событие в очередь. При переполненной очереди событие отбрасывается
func (d *Dispatcher) Notify(_ context.Context, event domain.BookingLifecycleEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Notification: dispatcher closed, dropping kind=%s booking_id=%d", event.Kind, event.BookingID)
		d.record(event.Kind, resultDropped)
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Warn("Notification: queue full, dropping kind=%s booking_id=%d", event.Kind, event.BookingID)
		d.record(event.Kind, resultDropped)
	}
}

// Close перестаёт принимать события и ждёт отправки очереди или отмены ctx
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event domain.BookingLifecycleEvent) {
	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("Notification: publisher panic kind=%s booking_id=%d: %v", event.Kind, event.BookingID, p)
			d.record(event.Kind, resultFailed)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Error("Notification: failed to publish kind=%s booking_id=%d: %v", event.Kind, event.BookingID, err)
		d.record(event.Kind, resultFailed)
		return
	}

	d.record(event.Kind, resultSent)
}

func (d *Dispatcher) record(kind domain.EventKind, result string) {
	if d.metrics != nil {
		d.metrics.RecordNotification(string(kind), result)
	}
}
