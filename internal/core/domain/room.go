package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type RoomType string

const (
	RoomStandard RoomType = "STANDARD"
	RoomDeluxe   RoomType = "DELUXE"
	RoomSuite    RoomType = "SUITE"
)

var ErrRoomNotFound = errors.New("room not found")

type Room struct {
	ID            uuid.UUID
	HotelID       uuid.UUID
	RoomNumber    string
	Type          RoomType
	PricePerNight float64
	MaxOccupancy  int
	Available     bool
	BookingCount  int
	Version       int
	UpdatedAt     time.Time
}

func (r *Room) IsAvailable() bool {
	return r.Available
}

func (r *Room) Fits(guestCount *int) bool {
	return guestCount == nil || *guestCount <= r.MaxOccupancy
}

// Occupy takes the room off the market and counts the booking.
func (r *Room) Occupy() {
	r.Available = false
	r.BookingCount++
}

func (r *Room) Free() {
	r.Available = true
}
