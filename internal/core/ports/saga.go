package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// IdempotencyLedger caches confirm results by saga request id.
type IdempotencyLedger interface {
	Get(ctx context.Context, requestID string) (*domain.AvailabilityResponse, bool, error)
	Put(ctx context.Context, requestID string, resp domain.AvailabilityResponse) error
	Delete(ctx context.Context, requestID string) error
}

// AvailabilityGateway is how the booking side reaches the hotel side.
// ConfirmAvailability must never report confirmed=true unless the hotel said
// so; ReleaseRoom failures are reported but callers treat them as non-fatal.
type AvailabilityGateway interface {
	ConfirmAvailability(ctx context.Context, roomID uuid.UUID, req domain.AvailabilityRequest) (*domain.AvailabilityResponse, error)
	ReleaseRoom(ctx context.Context, roomID uuid.UUID, requestID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}
