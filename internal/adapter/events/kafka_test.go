package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/platform/logger"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, log: logger.Discard()}

	booking := &domain.Booking{ID: uuid.New(), Reference: "BK-0000ABCD", Status: domain.BookingConfirmed}
	require.NoError(t, p.Publish(context.Background(), domain.NewBookingEvent(domain.EventBookingConfirmed, booking)))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, booking.ID.String(), string(msg.Key))
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, "booking.confirmed", string(msg.Headers[0].Value))

	var ev domain.BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, booking.Reference, ev.Reference)
	assert.Equal(t, domain.BookingConfirmed, ev.Status)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("leader not available")}, log: logger.Discard()}

	err := p.Publish(context.Background(), domain.BookingEvent{Type: domain.EventBookingFailed})

	assert.ErrorContains(t, err, "publish booking.failed")
}
