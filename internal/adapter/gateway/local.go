package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/services"
)

// Local calls an in-process AvailabilityService, skipping the network hop.
type Local struct {
	svc *services.AvailabilityService
}

func NewLocal(svc *services.AvailabilityService) *Local {
	return &Local{svc: svc}
}

func (l *Local) ConfirmAvailability(ctx context.Context, roomID uuid.UUID, req domain.AvailabilityRequest) (*domain.AvailabilityResponse, error) {
	return l.svc.ConfirmAvailability(ctx, roomID, req)
}

func (l *Local) ReleaseRoom(ctx context.Context, roomID uuid.UUID, requestID string) error {
	_, err := l.svc.ReleaseRoom(ctx, roomID, requestID)
	return err
}
