package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
)

const (
	ReasonSystemError      = "SYSTEM_ERROR"
	ReasonCancelledDefault = "Cancelled by user"
	ReasonExpired          = "Booking expired before confirmation"

	reconcileBatchSize = 100
)

type CreateBookingRequest struct {
	RoomID          string `json:"roomId" validate:"required,uuid"`
	HotelID         string `json:"hotelId" validate:"required,uuid"`
	CheckInDate     string `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate    string `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	GuestCount      int    `json:"guestCount" validate:"required,min=1,max=20"`
	SpecialRequests string `json:"specialRequests" validate:"max=500"`
}

// Actor is the authenticated caller as asserted by the upstream gateway.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

type BookingService struct {
	bookingRepo ports.BookingRepository
	overlap     *OverlapChecker
	gateway     ports.AvailabilityGateway
	publisher   ports.EventPublisher
	validate    *validator.Validate
	log         *slog.Logger
}

func NewBookingService(bookingRepo ports.BookingRepository, gateway ports.AvailabilityGateway, publisher ports.EventPublisher, log *slog.Logger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		overlap:     NewOverlapChecker(bookingRepo),
		gateway:     gateway,
		publisher:   publisher,
		validate:    validator.New(),
		log:         log,
	}
}

// CreateBooking runs the booking saga: pre-check, persist PENDING, ask the
// hotel side to take the room, then settle the booking on the answer.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest, actor Actor) (*domain.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation(validationMessage(err))
	}

	roomID, _ := uuid.Parse(req.RoomID)
	hotelID, _ := uuid.Parse(req.HotelID)
	checkIn, _ := time.Parse(domain.DateLayout, req.CheckInDate)
	checkOut, _ := time.Parse(domain.DateLayout, req.CheckOutDate)

	if !checkOut.After(checkIn) {
		return nil, apperr.Validation("Check-out date must be after check-in date")
	}

	log := s.log.With("user_id", actor.UserID, "room_id", roomID)
	log.Info("creating booking", "check_in", req.CheckInDate, "check_out", req.CheckOutDate)

	overlapping, err := s.overlap.Find(ctx, roomID, checkIn, checkOut, domain.ActiveStatuses)
	if err != nil {
		return nil, apperr.Internal("failed to check existing bookings", err)
	}
	if len(overlapping) > 0 {
		log.Warn("room already booked for requested dates", "conflicts", len(overlapping))
		return nil, apperr.Conflict("Room is already booked for the selected dates")
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:              uuid.New(),
		Reference:       domain.NewReference(),
		UserID:          actor.UserID,
		RoomID:          roomID,
		HotelID:         hotelID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestCount:      req.GuestCount,
		SpecialRequests: req.SpecialRequests,
		Status:          domain.BookingPending,
		SagaRequestID:   uuid.NewString(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// The intent is durable before the hotel side hears about it.
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, apperr.Internal("failed to create booking", err)
	}

	log = log.With("booking_ref", booking.Reference, "request_id", booking.SagaRequestID)
	log.Info("booking created, confirming availability")

	guests := req.GuestCount
	resp, err := s.gateway.ConfirmAvailability(ctx, roomID, domain.AvailabilityRequest{
		RequestID:  booking.SagaRequestID,
		StartDate:  checkIn,
		EndDate:    checkOut,
		GuestCount: &guests,
	})
	if err != nil {
		return nil, s.compensate(ctx, log, booking, err)
	}

	// Settle even if the caller has gone away; the hotel side already acted.
	ctx = context.WithoutCancel(ctx)

	if !resp.Confirmed {
		if err := booking.Fail(resp.Message); err != nil {
			return nil, apperr.Internal("unexpected booking state", err)
		}
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return nil, apperr.Internal("failed to update booking", err)
		}
		s.publish(ctx, domain.EventBookingFailed, booking)

		log.Warn("booking failed, room not available", "reason", resp.Message)
		return nil, apperr.Rejected(booking.Reference, "Room is not available: "+resp.Message)
	}

	var total float64
	if resp.TotalPrice != nil {
		total = *resp.TotalPrice
	}
	if err := booking.Confirm(total); err != nil {
		return nil, apperr.Internal("unexpected booking state", err)
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, apperr.Internal("failed to update booking", err)
	}
	s.publish(ctx, domain.EventBookingConfirmed, booking)

	log.Info("booking confirmed", "total_price", total)
	return booking, nil
}

// compensate undoes whatever the hotel side may have done and fails the
// booking without exposing cause to the caller.
func (s *BookingService) compensate(ctx context.Context, log *slog.Logger, booking *domain.Booking, cause error) error {
	ctx = context.WithoutCancel(ctx)
	log.Error("availability confirmation failed, compensating", "err", cause)

	if err := s.gateway.ReleaseRoom(ctx, booking.RoomID, booking.SagaRequestID); err != nil {
		log.Error("failed to release room during compensation", "err", err)
	}

	if err := booking.Fail(ReasonSystemError); err != nil {
		return apperr.Internal("unexpected booking state", err)
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return apperr.Internal("failed to update booking", err)
	}
	s.publish(ctx, domain.EventBookingFailed, booking)

	return apperr.Transport(booking.Reference, cause)
}

// CancelBooking releases the room best-effort and always cancels the booking
// if the actor may and the booking is still active.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID, actor Actor, reason string) (*domain.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && !booking.OwnedBy(actor.UserID) {
		return nil, apperr.Forbidden("You are not authorized to cancel this booking")
	}

	if !booking.IsCancellable() {
		return nil, apperr.InvalidState(fmt.Sprintf("Cannot cancel booking in %s status", booking.Status)).
			WithDetails(map[string]any{"bookingReference": booking.Reference})
	}

	log := s.log.With("booking_ref", booking.Reference, "room_id", booking.RoomID)

	// Releasing under the saga's own key also clears the cached confirm.
	requestID := booking.SagaRequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	if err := s.gateway.ReleaseRoom(ctx, booking.RoomID, requestID); err != nil {
		log.Warn("failed to release room for cancelled booking", "err", err)
	} else {
		log.Info("room released for cancelled booking")
	}

	if reason == "" {
		reason = ReasonCancelledDefault
	}
	if err := booking.Cancel(reason); err != nil {
		return nil, apperr.Internal("unexpected booking state", err)
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, apperr.Internal("failed to update booking", err)
	}
	s.publish(ctx, domain.EventBookingCancelled, booking)

	log.Info("booking cancelled", "reason", reason)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return s.load(ctx, id)
}

func (s *BookingService) GetBookingByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, apperr.NotFound("Booking", reference)
		}
		return nil, apperr.Internal("failed to load booking", err)
	}
	return booking, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) ListBookingsByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	switch status {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingFailed, domain.BookingCancelled:
	default:
		return nil, apperr.Validation(fmt.Sprintf("unknown booking status %q", status))
	}

	bookings, err := s.bookingRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) load(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, apperr.NotFound("Booking", id.String())
		}
		return nil, apperr.Internal("failed to load booking", err)
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, t domain.BookingEventType, booking *domain.Booking) {
	if err := s.publisher.Publish(ctx, domain.NewBookingEvent(t, booking)); err != nil {
		s.log.Warn("failed to publish booking event", "type", t, "booking_ref", booking.Reference, "err", err)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid booking request"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
