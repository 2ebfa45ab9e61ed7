package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
)

// OverlapChecker finds locally known bookings that collide with a requested
// stay. It only guards against double submission; the hotel side's room lock
// decides who actually gets the room.
type OverlapChecker struct {
	bookingRepo ports.BookingRepository
}

func NewOverlapChecker(bookingRepo ports.BookingRepository) *OverlapChecker {
	return &OverlapChecker{bookingRepo: bookingRepo}
}

func (c *OverlapChecker) Find(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	return c.bookingRepo.FindOverlapping(ctx, roomID, domain.DateOnly(checkIn), domain.DateOnly(checkOut), statuses)
}
