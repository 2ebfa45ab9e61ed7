// Package contract holds the JSON shapes exchanged between the booking and
// hotel services. Dates travel as YYYY-MM-DD.
package contract

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type AvailabilityRequest struct {
	RequestID  string `json:"requestId" validate:"required,max=64"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
	GuestCount *int   `json:"guestCount,omitempty" validate:"omitempty,min=1"`
}

type AvailabilityResponse struct {
	RoomID     string   `json:"roomId"`
	HotelID    string   `json:"hotelId"`
	RequestID  string   `json:"requestId"`
	Confirmed  bool     `json:"confirmed"`
	Message    string   `json:"message"`
	StartDate  string   `json:"startDate,omitempty"`
	EndDate    string   `json:"endDate,omitempty"`
	TotalPrice *float64 `json:"totalPrice,omitempty"`
	Nights     *int     `json:"nights,omitempty"`
}

func NewAvailabilityRequest(req domain.AvailabilityRequest) AvailabilityRequest {
	return AvailabilityRequest{
		RequestID:  req.RequestID,
		StartDate:  req.StartDate.Format(domain.DateLayout),
		EndDate:    req.EndDate.Format(domain.DateLayout),
		GuestCount: req.GuestCount,
	}
}

func (r AvailabilityRequest) ToDomain() (domain.AvailabilityRequest, error) {
	start, err := time.Parse(domain.DateLayout, r.StartDate)
	if err != nil {
		return domain.AvailabilityRequest{}, fmt.Errorf("invalid startDate %q", r.StartDate)
	}

	end, err := time.Parse(domain.DateLayout, r.EndDate)
	if err != nil {
		return domain.AvailabilityRequest{}, fmt.Errorf("invalid endDate %q", r.EndDate)
	}

	return domain.AvailabilityRequest{
		RequestID:  r.RequestID,
		StartDate:  start,
		EndDate:    end,
		GuestCount: r.GuestCount,
	}, nil
}

func NewAvailabilityResponse(resp *domain.AvailabilityResponse) AvailabilityResponse {
	out := AvailabilityResponse{
		RoomID:     resp.RoomID.String(),
		HotelID:    resp.HotelID.String(),
		RequestID:  resp.RequestID,
		Confirmed:  resp.Confirmed,
		Message:    resp.Message,
		TotalPrice: resp.TotalPrice,
		Nights:     resp.Nights,
	}
	if resp.StartDate != nil {
		out.StartDate = resp.StartDate.Format(domain.DateLayout)
	}
	if resp.EndDate != nil {
		out.EndDate = resp.EndDate.Format(domain.DateLayout)
	}
	return out
}

func (r AvailabilityResponse) ToDomain() (*domain.AvailabilityResponse, error) {
	roomID, err := uuid.Parse(r.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid roomId %q", r.RoomID)
	}

	out := &domain.AvailabilityResponse{
		RoomID:     roomID,
		RequestID:  r.RequestID,
		Confirmed:  r.Confirmed,
		Message:    r.Message,
		TotalPrice: r.TotalPrice,
		Nights:     r.Nights,
	}

	if r.HotelID != "" {
		if out.HotelID, err = uuid.Parse(r.HotelID); err != nil {
			return nil, fmt.Errorf("invalid hotelId %q", r.HotelID)
		}
	}
	if r.StartDate != "" {
		t, err := time.Parse(domain.DateLayout, r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q", r.StartDate)
		}
		out.StartDate = &t
	}
	if r.EndDate != "" {
		t, err := time.Parse(domain.DateLayout, r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q", r.EndDate)
		}
		out.EndDate = &t
	}

	return out, nil
}
