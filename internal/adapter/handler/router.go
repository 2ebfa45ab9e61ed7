package handler

import (
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func NewBookingRouter(h *BookingHandler, log *slog.Logger) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/health", health)

	router.POST("/bookings", h.CreateBooking)
	router.GET("/bookings", h.ListBookings)
	router.GET("/bookings/id/:id", h.GetBooking)
	router.GET("/bookings/reference/:ref", h.GetBookingByReference)
	router.POST("/bookings/id/:id/cancel", h.CancelBooking)

	return logRequests(log, router)
}

// NewHotelRouter exposes the confirm/release protocol. When verifier is nil
// the service token check is skipped.
func NewHotelRouter(h *AvailabilityHandler, verifier TokenVerifier, log *slog.Logger) http.Handler {
	router := httprouter.New()

	protect := func(next httprouter.Handle) httprouter.Handle {
		if verifier == nil {
			return next
		}
		return RequireServiceToken(verifier, log, next)
	}

	router.HandlerFunc(http.MethodGet, "/health", health)

	router.GET("/rooms/:id", h.GetRoom)
	router.POST("/rooms/:id/confirm-availability", protect(h.ConfirmAvailability))
	router.POST("/rooms/:id/release", protect(h.ReleaseRoom))

	return logRequests(log, router)
}
