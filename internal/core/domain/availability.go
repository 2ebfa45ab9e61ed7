package domain

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type AvailabilityRequest struct {
	RequestID  string
	StartDate  time.Time
	EndDate    time.Time
	GuestCount *int
}

// AvailabilityResponse is the unit cached by the idempotency ledger.
type AvailabilityResponse struct {
	RoomID     uuid.UUID
	HotelID    uuid.UUID
	RequestID  string
	Confirmed  bool
	Message    string
	StartDate  *time.Time
	EndDate    *time.Time
	TotalPrice *float64
	Nights     *int
}

const (
	MsgConfirmed    = "Room availability confirmed"
	MsgNotAvailable = "Room is not available"
	MsgReleased     = "Room released successfully"
)

// DateOnly strips the clock so that day arithmetic ignores time zones and DST.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights is the whole-day difference between two dates.
func Nights(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
}
