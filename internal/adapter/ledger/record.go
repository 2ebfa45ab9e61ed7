package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type record struct {
	RoomID     uuid.UUID  `json:"roomId"`
	HotelID    uuid.UUID  `json:"hotelId"`
	RequestID  string     `json:"requestId"`
	Confirmed  bool       `json:"confirmed"`
	Message    string     `json:"message"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	TotalPrice *float64   `json:"totalPrice,omitempty"`
	Nights     *int       `json:"nights,omitempty"`
}

func fromDomain(r domain.AvailabilityResponse) record {
	return record(r)
}

func (r record) toDomain() domain.AvailabilityResponse {
	return domain.AvailabilityResponse(r)
}
