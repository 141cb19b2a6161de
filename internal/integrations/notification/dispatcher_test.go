package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/kafka"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakePublisher struct {
	publishFunc func(ctx context.Context, event domain.BookingLifecycleEvent) error
}

func (f *fakePublisher) Publish(ctx context.Context, event domain.BookingLifecycleEvent) error {
	return f.publishFunc(ctx, event)
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) RecordNotification(kind, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[kind+"/"+result]++
}

func (m *countingMetrics) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

func event(id int64, kind domain.EventKind) domain.BookingLifecycleEvent {
	return domain.BookingLifecycleEvent{Kind: kind, BookingID: id, Recipient: domain.RoleClient}
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	var (
		mu        sync.Mutex
		delivered []int64
	)
	pub := &fakePublisher{publishFunc: func(_ context.Context, e domain.BookingLifecycleEvent) error {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, e.BookingID)
		return nil
	}}
	m := &countingMetrics{}

	d := NewDispatcher(pub, 10, time.Second, m, nopLogger{})
	d.Notify(context.Background(), event(1, domain.EventBookingConfirmed))
	d.Notify(context.Background(), event(2, domain.EventBookingConfirmed))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Equal(t, []int64{1, 2}, delivered)
	assert.Equal(t, 2, m.get("booking_confirmed/sent"))
}

func TestDispatcher_PublishFailureIsSwallowed(t *testing.T) {
	pub := &fakePublisher{publishFunc: func(context.Context, domain.BookingLifecycleEvent) error {
		return errors.New("broker down")
	}}
	m := &countingMetrics{}

	d := NewDispatcher(pub, 1, time.Second, m, nopLogger{})
	d.Notify(context.Background(), event(1, domain.EventBookingCancelled))
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, 1, m.get("booking_cancelled/failed"))
}

func TestDispatcher_NotifyNeverBlocks(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	pub := &fakePublisher{publishFunc: func(context.Context, domain.BookingLifecycleEvent) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil
	}}
	m := &countingMetrics{}

	d := NewDispatcher(pub, 1, time.Second, m, nopLogger{})

	// первое событие занимает воркер, второе ложится в очередь, третье отбрасывается
	d.Notify(context.Background(), event(1, domain.EventBookingRequest))
	<-started
	d.Notify(context.Background(), event(2, domain.EventBookingRequest))

	finished := make(chan struct{})
	go func() {
		d.Notify(context.Background(), event(3, domain.EventBookingRequest))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}

	close(release)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 1, m.get("booking_request/dropped"))
	assert.Equal(t, 2, m.get("booking_request/sent"))
}

func TestDispatcher_NotifyAfterCloseIsDropped(t *testing.T) {
	pub := &fakePublisher{publishFunc: func(context.Context, domain.BookingLifecycleEvent) error { return nil }}
	m := &countingMetrics{}

	d := NewDispatcher(pub, 1, time.Second, m, nopLogger{})
	require.NoError(t, d.Close(context.Background()))

	d.Notify(context.Background(), event(1, domain.EventBookingCompleted))
	assert.Equal(t, 1, m.get("booking_completed/dropped"))
}

type fakeProducer struct {
	published []kafka.Message
	err       error
}

func (f *fakeProducer) Publish(_ context.Context, msg kafka.Message) error {
	f.published = append(f.published, msg)
	return f.err
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewKafkaPublisher(producer, "marketplace-booking")

	e := domain.BookingLifecycleEvent{
		Kind:          domain.EventBookingRequest,
		Recipient:     domain.RoleProvider,
		BookingID:     42,
		ClientID:      10,
		ProviderID:    5,
		ListingID:     7,
		Status:        domain.StatusPending,
		ScheduledDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "10:00",
		OccurredAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, pub.Publish(context.Background(), e))
	require.Len(t, producer.published, 1)

	msg := producer.published[0]
	assert.Equal(t, "42", msg.Key)
	assert.Equal(t, "booking_request", msg.Headers[kafka.HeaderEventType])
	assert.Equal(t, "marketplace-booking", msg.Headers[kafka.HeaderSource])
	assert.NotEmpty(t, msg.EventID())

	var payload EventPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "provider", payload.Recipient)
	assert.Equal(t, "2025-03-03", payload.ScheduledDate)

	producer.err = errors.New("leader not available")
	assert.ErrorIs(t, pub.Publish(context.Background(), e), ErrPublish)
}
