package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingEventType string

const (
	EventBookingConfirmed BookingEventType = "booking.confirmed"
	EventBookingFailed    BookingEventType = "booking.failed"
	EventBookingCancelled BookingEventType = "booking.cancelled"
)

type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  uuid.UUID        `json:"bookingId"`
	Reference  string           `json:"reference"`
	UserID     uuid.UUID        `json:"userId"`
	RoomID     uuid.UUID        `json:"roomId"`
	HotelID    uuid.UUID        `json:"hotelId"`
	Status     BookingStatus    `json:"status"`
	Reason     string           `json:"reason,omitempty"`
	TotalPrice *float64         `json:"totalPrice,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

func NewBookingEvent(t BookingEventType, b *Booking) BookingEvent {
	ev := BookingEvent{
		Type:       t,
		BookingID:  b.ID,
		Reference:  b.Reference,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		HotelID:    b.HotelID,
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}
	if b.CancellationReason != nil {
		ev.Reason = *b.CancellationReason
	}
	return ev
}
