// Package api implements the REST clients for the inventory backend: product
// reads, export mutations, and import transactions. Clients are stateless
// request/response objects; they never touch the local cache, and they never
// swallow errors — categorization and propagation happen here, presentation
// belongs to the views.
package api

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

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/auth"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

const defaultTimeout = 15 * time.Second

// BreakerConfig configures the optional circuit breaker around the transport.
// Disabled by default; business errors (404/400/409) never trip it.
type BreakerConfig struct {
	Enabled             bool
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// Config holds the settings shared by all REST clients.
type Config struct {
	// BaseURL is normalized with NormalizeBaseURL before first use.
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
}

// Client is the shared HTTP plumbing: base URL, credentials, request ids,
// JSON codec and error mapping. The typed clients embed a *Client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *auth.Session
	logger     *slog.Logger
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates the shared plumbing. A nil session sends every request
// unauthenticated.
func NewClient(cfg Config, session *auth.Session, logger *slog.Logger) (*Client, error) {
	base, err := NormalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
		logger:     logger.With("component", "api"),
	}
	if cfg.Breaker.Enabled {
		c.breaker = newBreaker(cfg.Breaker)
	}
	return c, nil
}

// NormalizeBaseURL defaults the scheme to https when omitted and strips
// trailing slashes, so that path joining is uniform for every request.
func NormalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("API base URL is not configured")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid API base URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("API base URL %q has no host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// newBreaker configures a circuit breaker for outbound calls. Only transport
// and 5xx failures count against it: NotFound, Conflict and auth rejections
// are business outcomes, not signs of a broken backend.
func newBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker[[]byte] {
	st := gobreaker.Settings{
		Name:    "inventory-api",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *Error
			if errors.As(err, &apiErr) {
				return apiErr.kind != ErrNetwork && apiErr.kind != ErrServer
			}
			return false
		},
	}
	return gobreaker.NewCircuitBreaker[[]byte](st)
}

// call performs one HTTP exchange and returns the raw response body.
// authRequired short-circuits with an AuthError when no session token is
// available, before any request goes out.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any, authRequired bool) ([]byte, error) {
	token, err := c.session.Token(ctx)
	if err != nil {
		return nil, newAuthError(fmt.Sprintf("failed to obtain credentials: %v", err))
	}
	if authRequired && token == "" {
		return nil, newAuthError("sign in required")
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.breaker != nil {
		return c.breaker.Execute(func() ([]byte, error) {
			return c.roundTrip(req)
		})
	}
	return c.roundTrip(req)
}

func (c *Client) roundTrip(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(req.Context(), "Request failed",
			"method", req.Method, "url", req.URL.String(), "error", err)
		return nil, newNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}
	c.logger.DebugContext(req.Context(), "Request completed",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, errorMessage(data))
	}
	return data, nil
}

// errorMessage extracts the structured `{message}` body mutation endpoints
// return on failure. An unparseable body yields an empty message and the
// caller falls back to a generic one.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Message
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, authRequired bool) error {
	data, err := c.call(ctx, http.MethodGet, path, query, nil, authRequired)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// sendJSON issues a mutation and, when out is non-nil, decodes the returned
// resource into it.
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := c.call(ctx, method, path, nil, body, true)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
