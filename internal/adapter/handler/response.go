package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err's client-facing part; causes only reach the log.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	appErr := apperr.As(err)

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed", "code", appErr.Code, "err", err)
	}

	writeJSON(w, status, appErr.Response())
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
