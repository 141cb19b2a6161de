package kafka

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBuilder_Build(t *testing.T) {
	msg, err := NewMessage().
		WithKey("17").
		WithEventType("booking_confirmed").
		WithSource("booking-service").
		WithValue(map[string]int64{"bookingId": 17}).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "17", msg.Key)
	assert.JSONEq(t, `{"bookingId":17}`, string(msg.Value))
	assert.Equal(t, "booking_confirmed", msg.Headers[HeaderEventType])
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])

	_, err = uuid.Parse(msg.EventID())
	assert.NoError(t, err)
}

func TestMessageBuilder_UnencodableValue(t *testing.T) {
	_, err := NewMessage().WithKey("1").WithValue(make(chan int)).Build()
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestNewProducer_Validation(t *testing.T) {
	_, err := NewProducer(ProducerConfig{Topic: "bookings"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewProducer(ProducerConfig{Brokers: []string{"localhost:9092"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p, err := NewProducer(ProducerConfig{Brokers: []string{"localhost:9092"}, Topic: "bookings"})
	require.NoError(t, err)

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("{}")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "1"}), ErrEmptyValue)

	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "1", Value: []byte("{}")}), ErrProducerClosed)
}
