package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/srgjo27/hotel_booking/internal/adapter/contract"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
)

type RoomResponse struct {
	ID            string  `json:"id"`
	HotelID       string  `json:"hotelId"`
	RoomNumber    string  `json:"roomNumber"`
	Type          string  `json:"roomType"`
	PricePerNight float64 `json:"pricePerNight"`
	MaxOccupancy  int     `json:"maxOccupancy"`
	Available     bool    `json:"available"`
	BookingCount  int     `json:"timesBooked"`
}

type AvailabilityHandler struct {
	svc      *services.AvailabilityService
	validate *validator.Validate
	log      *slog.Logger
}

func NewAvailabilityHandler(svc *services.AvailabilityService, log *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc, validate: validator.New(), log: log}
}

func (h *AvailabilityHandler) ConfirmAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, h.log, apperr.InvalidArgument("invalid room id"))
		return
	}

	var body contract.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.log, apperr.InvalidArgument("invalid json body"))
		return
	}

	if err := h.validate.Struct(body); err != nil {
		writeError(w, h.log, apperr.InvalidArgument(err.Error()))
		return
	}

	req, err := body.ToDomain()
	if err != nil {
		writeError(w, h.log, apperr.InvalidArgument(err.Error()))
		return
	}

	resp, err := h.svc.ConfirmAvailability(r.Context(), roomID, req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, contract.NewAvailabilityResponse(resp))
}

func (h *AvailabilityHandler) ReleaseRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, h.log, apperr.InvalidArgument("invalid room id"))
		return
	}

	resp, err := h.svc.ReleaseRoom(r.Context(), roomID, r.URL.Query().Get("requestId"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, contract.NewAvailabilityResponse(resp))
}

func (h *AvailabilityHandler) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, h.log, apperr.InvalidArgument("invalid room id"))
		return
	}

	room, err := h.svc.GetRoom(r.Context(), roomID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

func toRoomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		ID:            room.ID.String(),
		HotelID:       room.HotelID.String(),
		RoomNumber:    room.RoomNumber,
		Type:          string(room.Type),
		PricePerNight: room.PricePerNight,
		MaxOccupancy:  room.MaxOccupancy,
		Available:     room.Available,
		BookingCount:  room.BookingCount,
	}
}
