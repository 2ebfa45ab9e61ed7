package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type seedRoom struct {
	ID            uuid.UUID `json:"id"`
	HotelID       uuid.UUID `json:"hotelId"`
	RoomNumber    string    `json:"roomNumber"`
	Type          string    `json:"roomType"`
	PricePerNight float64   `json:"pricePerNight"`
	MaxOccupancy  int       `json:"maxOccupancy"`
}

// loadRooms reads the room catalogue for in-memory mode. Every seeded room
// starts available.
func loadRooms(path string) ([]domain.Room, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms seed: %w", err)
	}

	var seeds []seedRoom
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse rooms seed: %w", err)
	}

	rooms := make([]domain.Room, 0, len(seeds))
	for _, s := range seeds {
		rooms = append(rooms, domain.Room{
			ID:            s.ID,
			HotelID:       s.HotelID,
			RoomNumber:    s.RoomNumber,
			Type:          domain.RoomType(s.Type),
			PricePerNight: s.PricePerNight,
			MaxOccupancy:  s.MaxOccupancy,
			Available:     true,
		})
	}
	return rooms, nil
}
