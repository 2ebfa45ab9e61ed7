package services

import (
	"context"
	"errors"
	"time"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// RunReconciler periodically fails bookings stuck in PENDING, which happens
// when the process dies between persisting the intent and settling it.
func (s *BookingService) RunReconciler(ctx context.Context, interval, staleAfter time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("reconciler started", "interval", interval, "stale_after", staleAfter)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("reconciler stopped")
			return
		case <-ticker.C:
			if _, err := s.ReconcileStale(ctx, staleAfter); err != nil {
				s.log.Error("reconcile pass failed", "err", err)
			}
		}
	}
}

// ReconcileStale returns how many bookings it failed.
func (s *BookingService) ReconcileStale(ctx context.Context, staleAfter time.Duration) (int, error) {
	stale, err := s.bookingRepo.FindStalePending(ctx, time.Now().UTC().Add(-staleAfter), reconcileBatchSize)
	if err != nil {
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	s.log.Info("found stale pending bookings", "count", len(stale))

	failed := 0
	for i := range stale {
		booking := &stale[i]
		log := s.log.With("booking_ref", booking.Reference, "room_id", booking.RoomID, "request_id", booking.SagaRequestID)

		if err := booking.Fail(ReasonExpired); err != nil {
			continue
		}
		// The version-checked update claims the booking before the room is
		// released.
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			if errors.Is(err, domain.ErrVersionConflict) {
				log.Info("booking settled concurrently, skipping")
				continue
			}
			log.Error("failed to expire booking", "err", err)
			continue
		}

		if booking.SagaRequestID != "" {
			if err := s.gateway.ReleaseRoom(ctx, booking.RoomID, booking.SagaRequestID); err != nil {
				log.Warn("failed to release room for stale booking", "err", err)
			}
		}

		s.publish(ctx, domain.EventBookingFailed, booking)
		log.Info("stale booking expired")
		failed++
	}

	return failed, nil
}
