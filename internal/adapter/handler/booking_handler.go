package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
)

// Identity headers set by the upstream API gateway after it authenticates
// the caller.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleAdmin = "ADMIN"
)

type BookingResponse struct {
	ID                 string   `json:"id"`
	Reference          string   `json:"bookingReference"`
	UserID             string   `json:"userId"`
	RoomID             string   `json:"roomId"`
	HotelID            string   `json:"hotelId"`
	CheckInDate        string   `json:"checkInDate"`
	CheckOutDate       string   `json:"checkOutDate"`
	GuestCount         int      `json:"guestCount"`
	SpecialRequests    string   `json:"specialRequests,omitempty"`
	TotalPrice         *float64 `json:"totalPrice,omitempty"`
	Status             string   `json:"status"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID.String(),
		Reference:          b.Reference,
		UserID:             b.UserID.String(),
		RoomID:             b.RoomID.String(),
		HotelID:            b.HotelID.String(),
		CheckInDate:        b.CheckIn.Format(domain.DateLayout),
		CheckOutDate:       b.CheckOut.Format(domain.DateLayout),
		GuestCount:         b.GuestCount,
		SpecialRequests:    b.SpecialRequests,
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type BookingHandler struct {
	svc *services.BookingService
	log *slog.Logger
}

func NewBookingHandler(svc *services.BookingService, log *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperr.Validation("invalid json body"))
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), req, actor)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, h.log, apperr.Validation("invalid booking id"))
		return
	}

	booking, err := h.svc.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) GetBookingByReference(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.svc.GetBookingByReference(r.Context(), ps.ByName("ref"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// ListBookings returns the caller's bookings; admins may filter all bookings
// by ?status=.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var bookings []domain.Booking
	if status := r.URL.Query().Get("status"); status != "" {
		if !actor.IsAdmin {
			writeError(w, h.log, apperr.Forbidden("Only administrators can list bookings by status"))
			return
		}
		bookings, err = h.svc.ListBookingsByStatus(r.Context(), domain.BookingStatus(strings.ToUpper(status)))
	} else {
		bookings, err = h.svc.ListUserBookings(r.Context(), actor.UserID)
	}
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	id, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, h.log, apperr.Validation("invalid booking id"))
		return
	}

	var req cancelRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, h.log, apperr.Validation("invalid json body"))
			return
		}
	}

	booking, err := h.svc.CancelBooking(r.Context(), id, actor, req.Reason)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func actorFrom(r *http.Request) (services.Actor, error) {
	raw := r.Header.Get(HeaderUserID)
	if raw == "" {
		return services.Actor{}, apperr.Unauthorized("missing caller identity")
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return services.Actor{}, apperr.Unauthorized("invalid caller identity")
	}

	return services.Actor{
		UserID:  userID,
		IsAdmin: strings.EqualFold(r.Header.Get(HeaderUserRole), RoleAdmin),
	}, nil
}
