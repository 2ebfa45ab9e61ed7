package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hotel_booking/internal/adapter/contract"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/platform/apperr"
)

// ErrUnavailable marks failures where the hotel service could not be reached
// or answered with a server error.
var ErrUnavailable = errors.New("hotel service unavailable")

func IsTransport(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

type TokenSource interface {
	Token() (string, error)
}

// HTTPClient calls the hotel service's confirm/release endpoints.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *slog.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log,
	}
}

func (c *HTTPClient) ConfirmAvailability(ctx context.Context, roomID uuid.UUID, req domain.AvailabilityRequest) (*domain.AvailabilityResponse, error) {
	path := fmt.Sprintf("/rooms/%s/confirm-availability", roomID)

	var body contract.AvailabilityResponse
	if err := c.do(ctx, http.MethodPost, path, contract.NewAvailabilityRequest(req), &body); err != nil {
		return nil, err
	}

	resp, err := body.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed confirm response: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func (c *HTTPClient) ReleaseRoom(ctx context.Context, roomID uuid.UUID, requestID string) error {
	path := fmt.Sprintf("/rooms/%s/release?requestId=%s", roomID, url.QueryEscape(requestID))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s %s returned %d", ErrUnavailable, method, path, resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}
	return nil
}

// decodeError rebuilds the hotel service's error so callers can match codes.
func decodeError(status int, raw []byte) error {
	var body apperr.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Code == "" {
		return &apperr.AppError{
			Code:       apperr.CodeInternal,
			Message:    fmt.Sprintf("hotel service returned %d", status),
			HTTPStatus: status,
		}
	}

	return &apperr.AppError{
		Code:       body.Code,
		Message:    body.Message,
		HTTPStatus: status,
		Details:    body.Details,
	}
}
