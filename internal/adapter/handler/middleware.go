package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
)

type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// RequireServiceToken rejects calls without a valid service bearer token.
func RequireServiceToken(verifier TokenVerifier, log *slog.Logger, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			writeError(w, log, apperr.Unauthorized("missing bearer token"))
			return
		}

		caller, err := verifier.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			writeError(w, log, apperr.Unauthorized("invalid token"))
			return
		}

		log.Debug("service call authenticated", "caller", caller, "path", r.URL.Path)
		next(w, r, ps)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func logRequests(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
