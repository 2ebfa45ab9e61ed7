package events

import (
	"context"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, event domain.BookingEvent) error {
	return nil
}
