package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
)

// AvailabilityService owns room state on the hotel side. Confirm and release
// on the same room are serialized by the repository's room lock; confirm
// results are cached by request id so a retried call has at most one effect.
type AvailabilityService struct {
	roomRepo ports.RoomRepository
	ledger   ports.IdempotencyLedger
	log      *slog.Logger

	inflight singleflight.Group
}

func NewAvailabilityService(roomRepo ports.RoomRepository, ledger ports.IdempotencyLedger, log *slog.Logger) *AvailabilityService {
	return &AvailabilityService{
		roomRepo: roomRepo,
		ledger:   ledger,
		log:      log,
	}
}

func (s *AvailabilityService) ConfirmAvailability(ctx context.Context, roomID uuid.UUID, req domain.AvailabilityRequest) (*domain.AvailabilityResponse, error) {
	log := s.log.With("room_id", roomID, "request_id", req.RequestID)

	if req.RequestID == "" {
		return nil, apperr.InvalidArgument("request id is required")
	}

	cached, ok, err := s.ledger.Get(ctx, req.RequestID)
	if err != nil {
		return nil, apperr.Internal("idempotency ledger unavailable", err)
	}
	if ok {
		log.Info("request already processed, returning cached response")
		return cached, nil
	}

	if !domain.DateOnly(req.StartDate).Before(domain.DateOnly(req.EndDate)) {
		return nil, apperr.InvalidArgument("Start date must be before end date")
	}

	// Concurrent confirms carrying the same request id run once; the others
	// wait and share the result.
	v, err, shared := s.inflight.Do(req.RequestID, func() (any, error) {
		return s.confirmLocked(ctx, roomID, req)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug("joined in-flight confirmation")
	}

	resp := *v.(*domain.AvailabilityResponse)
	return &resp, nil
}

func (s *AvailabilityService) confirmLocked(ctx context.Context, roomID uuid.UUID, req domain.AvailabilityRequest) (*domain.AvailabilityResponse, error) {
	log := s.log.With("room_id", roomID, "request_id", req.RequestID)

	var resp domain.AvailabilityResponse
	var replay bool

	err := s.roomRepo.WithLock(ctx, roomID, func(room *domain.Room) error {
		// Another process may have finished this request while we waited.
		cached, ok, err := s.ledger.Get(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if ok {
			resp, replay = *cached, true
			return nil
		}

		start, end := domain.DateOnly(req.StartDate), domain.DateOnly(req.EndDate)
		resp = domain.AvailabilityResponse{
			RoomID:    room.ID,
			HotelID:   room.HotelID,
			RequestID: req.RequestID,
			StartDate: &start,
			EndDate:   &end,
		}

		switch {
		case !room.IsAvailable():
			resp.Message = domain.MsgNotAvailable
		case !room.Fits(req.GuestCount):
			resp.Message = fmt.Sprintf("Room capacity (%d) is less than guest count (%d)", room.MaxOccupancy, *req.GuestCount)
		default:
			nights := domain.Nights(start, end)
			total := room.PricePerNight * float64(nights)

			room.Occupy()

			resp.Confirmed = true
			resp.Message = domain.MsgConfirmed
			resp.TotalPrice = &total
			resp.Nights = &nights
		}

		// Recorded while the room is still locked so a replica waiting on the
		// same room finds this result instead of deciding again. A failed write
		// rolls back the room change.
		if err := s.ledger.Put(ctx, req.RequestID, resp); err != nil {
			return &recordError{err: err}
		}
		return nil
	})
	if err != nil {
		var recErr *recordError
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			return nil, apperr.NotFound("Room", roomID.String())
		case errors.As(err, &recErr):
			return nil, apperr.Internal("failed to record confirmation", recErr.err)
		}
		return nil, apperr.Internal("failed to confirm availability", err)
	}

	if replay {
		log.Info("request processed concurrently, returning cached response")
		return &resp, nil
	}

	if resp.Confirmed {
		log.Info("room confirmed for booking", "nights", *resp.Nights, "total_price", *resp.TotalPrice)
	} else {
		log.Warn("room confirmation rejected", "reason", resp.Message)
	}

	return &resp, nil
}

type recordError struct {
	err error
}

func (e *recordError) Error() string { return "record confirmation: " + e.err.Error() }

func (e *recordError) Unwrap() error { return e.err }

// ReleaseRoom marks the room available again and forgets the confirm result
// cached under requestID. A request whose cached result is a rejection never
// held the room, so releasing it leaves the room as it is.
func (s *AvailabilityService) ReleaseRoom(ctx context.Context, roomID uuid.UUID, requestID string) (*domain.AvailabilityResponse, error) {
	log := s.log.With("room_id", roomID, "request_id", requestID)
	log.Info("releasing room")

	var hotelID uuid.UUID
	err := s.roomRepo.WithLock(ctx, roomID, func(room *domain.Room) error {
		hotelID = room.HotelID

		if requestID == "" {
			room.Free()
			return nil
		}

		cached, ok, err := s.ledger.Get(ctx, requestID)
		if err != nil {
			log.Warn("failed to read idempotency entry", "err", err)
		}
		if ok && !cached.Confirmed {
			log.Info("request was rejected, room left untouched")
		} else {
			room.Free()
		}

		if err := s.ledger.Delete(ctx, requestID); err != nil {
			log.Warn("failed to clear idempotency entry", "err", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return nil, apperr.NotFound("Room", roomID.String())
		}
		return nil, apperr.Internal("failed to release room", err)
	}

	log.Info("room released")

	return &domain.AvailabilityResponse{
		RoomID:    roomID,
		HotelID:   hotelID,
		RequestID: requestID,
		Confirmed: false,
		Message:   domain.MsgReleased,
	}, nil
}

func (s *AvailabilityService) GetRoom(ctx context.Context, roomID uuid.UUID) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return nil, apperr.NotFound("Room", roomID.String())
		}
		return nil, apperr.Internal("failed to load room", err)
	}
	return room, nil
}
