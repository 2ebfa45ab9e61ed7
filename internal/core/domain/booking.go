package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingFailed    BookingStatus = "FAILED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// ActiveStatuses are the statuses that hold a room for their interval.
var ActiveStatuses = []BookingStatus{BookingPending, BookingConfirmed}

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrVersionConflict = errors.New("booking was modified by another transaction")
)

type Booking struct {
	ID                 uuid.UUID
	Reference          string
	UserID             uuid.UUID
	RoomID             uuid.UUID
	HotelID            uuid.UUID
	CheckIn            time.Time
	CheckOut           time.Time
	GuestCount         int
	SpecialRequests    string
	TotalPrice         *float64
	Status             BookingStatus
	CancellationReason *string
	SagaRequestID      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int
}

func NewReference() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (b *Booking) IsTerminal() bool {
	return b.Status == BookingFailed || b.Status == BookingCancelled
}

func (b *Booking) IsCancellable() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// Confirm moves a PENDING booking to CONFIRMED.
func (b *Booking) Confirm(totalPrice float64) error {
	if b.Status != BookingPending {
		return fmt.Errorf("cannot confirm booking in %s status", b.Status)
	}

	b.Status = BookingConfirmed
	b.TotalPrice = &totalPrice
	return nil
}

// Fail moves a PENDING booking to FAILED.
func (b *Booking) Fail(reason string) error {
	if b.Status != BookingPending {
		return fmt.Errorf("cannot fail booking in %s status", b.Status)
	}

	b.Status = BookingFailed
	b.CancellationReason = &reason
	return nil
}

func (b *Booking) Cancel(reason string) error {
	if !b.IsCancellable() {
		return fmt.Errorf("cannot cancel booking in %s status", b.Status)
	}

	b.Status = BookingCancelled
	b.CancellationReason = &reason
	return nil
}

// OwnedBy reports whether the user placed this booking.
func (b *Booking) OwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}

// Overlaps uses the inclusive interval test: a stay ending on the day another
// starts still counts as a conflict.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return !b.CheckIn.After(checkOut) && !b.CheckOut.Before(checkIn)
}

func (b *Booking) HasStatus(statuses []BookingStatus) bool {
	for _, s := range statuses {
		if b.Status == s {
			return true
		}
	}
	return false
}
