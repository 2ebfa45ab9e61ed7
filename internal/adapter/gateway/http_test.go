package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_booking/internal/adapter/contract"
	"github.com/srgjo27/hotel_booking/internal/adapter/gateway"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
	"github.com/srgjo27/hotel_booking/internal/platform/logger"
)

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

func confirmRequest() domain.AvailabilityRequest {
	guests := 2
	return domain.AvailabilityRequest{
		RequestID:  "req-1",
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		GuestCount: &guests,
	}
}

func TestHTTPClient_ConfirmAvailability(t *testing.T) {
	roomID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rooms/"+roomID.String()+"/confirm-availability", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body contract.AvailabilityRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "req-1", body.RequestID)
		assert.Equal(t, "2025-06-01", body.StartDate)
		assert.Equal(t, "2025-06-03", body.EndDate)

		total, nights := 200.0, 2
		_ = json.NewEncoder(w).Encode(contract.AvailabilityResponse{
			RoomID:     roomID.String(),
			RequestID:  body.RequestID,
			Confirmed:  true,
			Message:    domain.MsgConfirmed,
			StartDate:  body.StartDate,
			EndDate:    body.EndDate,
			TotalPrice: &total,
			Nights:     &nights,
		})
	}))
	defer srv.Close()

	client := gateway.NewHTTPClient(srv.URL+"/", time.Second, staticToken("tok"), logger.Discard())

	resp, err := client.ConfirmAvailability(context.Background(), roomID, confirmRequest())

	require.NoError(t, err)
	assert.True(t, resp.Confirmed)
	assert.Equal(t, 200.0, *resp.TotalPrice)
	assert.Equal(t, "2025-06-03", resp.EndDate.Format(domain.DateLayout))
}

func TestHTTPClient_ServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := gateway.NewHTTPClient(srv.URL, time.Second, nil, logger.Discard())

	_, err := client.ConfirmAvailability(context.Background(), uuid.New(), confirmRequest())

	assert.True(t, gateway.IsTransport(err))
}

func TestHTTPClient_ClientErrorIsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(apperr.NotFound("Room", "x").Response())
	}))
	defer srv.Close()

	client := gateway.NewHTTPClient(srv.URL, time.Second, nil, logger.Discard())

	_, err := client.ConfirmAvailability(context.Background(), uuid.New(), confirmRequest())

	assert.False(t, gateway.IsTransport(err))
	appErr := apperr.As(err)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestHTTPClient_ReleaseRoom(t *testing.T) {
	roomID := uuid.New()
	var gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rooms/"+roomID.String()+"/release", r.URL.Path)
		gotRequestID = r.URL.Query().Get("requestId")
		_ = json.NewEncoder(w).Encode(contract.AvailabilityResponse{RoomID: roomID.String(), Message: domain.MsgReleased})
	}))
	defer srv.Close()

	client := gateway.NewHTTPClient(srv.URL, time.Second, nil, logger.Discard())

	require.NoError(t, client.ReleaseRoom(context.Background(), roomID, "req 1&x"))
	assert.Equal(t, "req 1&x", gotRequestID)
}

func TestNew_FallsBackOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gw := gateway.New(gateway.NewHTTPClient(srv.URL, time.Second, nil, logger.Discard()), logger.Discard())

	resp, err := gw.ConfirmAvailability(context.Background(), uuid.New(), confirmRequest())
	assert.Nil(t, resp)
	appErr := apperr.As(err)
	assert.Equal(t, apperr.CodeSystem, appErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)

	assert.NoError(t, gw.ReleaseRoom(context.Background(), uuid.New(), "req-1"), "release failures are swallowed")
}

func TestNew_WithoutClientNeverConfirms(t *testing.T) {
	gw := gateway.New(nil, logger.Discard())

	resp, err := gw.ConfirmAvailability(context.Background(), uuid.New(), confirmRequest())

	assert.Nil(t, resp)
	assert.True(t, apperr.HasCode(err, apperr.CodeSystem))
	assert.NoError(t, gw.ReleaseRoom(context.Background(), uuid.New(), "req-1"))
}

func TestNew_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	gw := gateway.New(gateway.NewHTTPClient(url, 200*time.Millisecond, nil, logger.Discard()), logger.Discard())

	_, err := gw.ConfirmAvailability(context.Background(), uuid.New(), confirmRequest())

	assert.True(t, apperr.HasCode(err, apperr.CodeSystem))
}
