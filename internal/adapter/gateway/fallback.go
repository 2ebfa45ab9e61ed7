package gateway

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
)

const hotelService = "Hotel Service"

// Fallback answers when the hotel service cannot be reached. Confirms fail
// with a transport error and never claim the room was taken; releases are
// logged and dropped.
type Fallback struct {
	log *slog.Logger
}

func NewFallback(log *slog.Logger) *Fallback {
	return &Fallback{log: log}
}

func (f *Fallback) ConfirmAvailability(ctx context.Context, roomID uuid.UUID, req domain.AvailabilityRequest) (*domain.AvailabilityResponse, error) {
	return f.confirmFailed(roomID, req, ErrUnavailable)
}

func (f *Fallback) ReleaseRoom(ctx context.Context, roomID uuid.UUID, requestID string) error {
	return f.releaseFailed(roomID, requestID, ErrUnavailable)
}

func (f *Fallback) confirmFailed(roomID uuid.UUID, req domain.AvailabilityRequest, cause error) (*domain.AvailabilityResponse, error) {
	f.log.Error("failed to confirm availability", "room_id", roomID, "request_id", req.RequestID, "err", cause)
	return nil, apperr.Unavailable(hotelService, cause)
}

func (f *Fallback) releaseFailed(roomID uuid.UUID, requestID string, cause error) error {
	f.log.Error("failed to release room, release may be pending", "room_id", roomID, "request_id", requestID, "err", cause)
	return nil
}

// Resilient sends calls to primary and hands transport failures to the
// fallback. Other errors pass through unchanged.
type Resilient struct {
	primary  ports.AvailabilityGateway
	fallback *Fallback
}

func NewResilient(primary ports.AvailabilityGateway, fallback *Fallback) *Resilient {
	return &Resilient{primary: primary, fallback: fallback}
}

func (g *Resilient) ConfirmAvailability(ctx context.Context, roomID uuid.UUID, req domain.AvailabilityRequest) (*domain.AvailabilityResponse, error) {
	resp, err := g.primary.ConfirmAvailability(ctx, roomID, req)
	if err != nil && IsTransport(err) {
		return g.fallback.confirmFailed(roomID, req, err)
	}
	return resp, err
}

func (g *Resilient) ReleaseRoom(ctx context.Context, roomID uuid.UUID, requestID string) error {
	err := g.primary.ReleaseRoom(ctx, roomID, requestID)
	if err != nil && IsTransport(err) {
		return g.fallback.releaseFailed(roomID, requestID, err)
	}
	return err
}

// New picks the strategy once: the remote client behind the fallback when one
// is configured, the bare fallback otherwise.
func New(client *HTTPClient, log *slog.Logger) ports.AvailabilityGateway {
	fallback := NewFallback(log)
	if client == nil {
		log.Warn("hotel service not configured, bookings will fail until it is")
		return fallback
	}
	return NewResilient(client, fallback)
}
