// Package schoolapi implements the HTTP client for the school management
// backend. The backend is an opaque REST/JSON service; this package owns
// request encoding, response decoding, per-call deadlines, and the mapping
// of HTTP statuses onto domain errors.
package schoolapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolhub/portal/internal/api/metrics"
	"github.com/schoolhub/portal/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second

	// maxRawBody caps buffered raw responses (profile images).
	maxRawBody = 8 << 20
)

// Client talks to the school backend. All methods derive a deadline from the
// caller's context, so a view that is torn down (client disconnect) cancels
// its in-flight backend request rather than loading forever.
type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient builds a Client for the backend at baseURL (e.g.
// "http://host:9090/api"). A timeout of zero falls back to 10s.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		timeout: timeout,
		log:     log,
	}
}

// do performs one JSON round trip. endpoint is the logical name used for
// metrics and logging; out may be nil for calls with no response body.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", endpoint, err)
		}
		payload = bytes.NewReader(b)
	}

	// the deadline must outlive the body read below, so it is owned here
	// rather than inside roundTrip
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.roundTrip(ctx, endpoint, method, path, query, payload, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(endpoint, resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, domain.ErrBackendUnavailable)
	}
	return nil
}

// doRaw performs one round trip with untyped bodies (profile images) and
// returns the buffered response body with its content type. Buffering keeps
// the body read inside the call deadline.
func (c *Client) doRaw(ctx context.Context, endpoint, method, path string, body []byte, contentType string) ([]byte, string, error) {
	var payload io.Reader
	if body != nil {
		payload = bytes.NewReader(body)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.roundTrip(ctx, endpoint, method, path, nil, payload, contentType)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(endpoint, resp); err != nil {
		return nil, "", err
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxRawBody))
	if err != nil {
		return nil, "", fmt.Errorf("%s: read response: %w", endpoint, domain.ErrBackendUnavailable)
	}
	return b, resp.Header.Get("Content-Type"), nil
}

// roundTrip issues the request on the caller's context; do/doRaw own the
// deadline so it covers their body reads.
func (c *Client) roundTrip(ctx context.Context, endpoint, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := domain.TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req) //nolint:bodyclose // closed by callers
	elapsed := time.Since(start).Seconds()

	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(endpoint, "error").Observe(elapsed)
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("backend request failed")
		return nil, fmt.Errorf("%s: %w", endpoint, domain.ErrBackendUnavailable)
	}

	status := "ok"
	if resp.StatusCode >= 400 {
		status = "error"
	}
	metrics.BackendRequestDuration.WithLabelValues(endpoint, status).Observe(elapsed)
	return resp, nil
}

// checkStatus maps non-2xx responses to domain errors, propagating the
// backend's own message verbatim when the body carries one.
func (c *Client) checkStatus(endpoint string, resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	msg := readErrorMessage(resp.Body)
	c.log.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Str("message", msg).
		Msg("backend rejected request")

	return &domain.BackendError{Status: resp.StatusCode, Message: msg}
}

// readErrorMessage extracts a human-readable message from an error body.
// The backend uses {"message": "..."} but {"error": "..."} is tolerated.
func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 8<<10))
	if err != nil || len(b) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(b, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(b))
}
