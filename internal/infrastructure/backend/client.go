// Package backend is the REST client for the shop's server API. The API is
// an external collaborator with server-owned schemas; this package decodes
// its wire shapes once, at the boundary, and hands domain types to the
// controllers.
package backend

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

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// maxResponseSize bounds how much of a response body is read (10MB).
const maxResponseSize = 10 * 1024 * 1024

// requestIDHeader carries a client-generated id for request correlation.
const requestIDHeader = "X-Request-ID"

// Config holds client settings.
type Config struct {
	// BaseURL is the API origin, e.g. "https://shop.example.com".
	BaseURL string
	// TimeoutSeconds bounds each request; defaults to 15.
	TimeoutSeconds int
	// Traced wraps the transport with otelhttp instrumentation.
	Traced bool
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("backend: base URL cannot be empty")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("backend: invalid base URL: %w", err)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("backend: timeout cannot be negative")
	}
	return nil
}

// Client calls the shop backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a backend client with the given configuration.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if cfg.TimeoutSeconds == 0 {
		timeout = 15 * time.Second
	}

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.Traced {
		transport = otelhttp.NewTransport(transport)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger.Named("backend"),
	}, nil
}

// envelope is the common {success, error} wrapper on write responses.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// rejection converts a success=false envelope into a RejectionError.
func (e envelope) rejection() error {
	if e.Success {
		return nil
	}
	return &RejectionError{Message: e.Error}
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// sendJSON issues a request with a JSON body and decodes the response into
// out when out is non-nil.
func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("backend: failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	respBody, err := c.doRequest(ctx, method, path, nil, "application/json", body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// decodeJSON decodes a response body, mapping failures to ErrInvalidResponse.
func decodeJSON(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// doRequest performs a single HTTP call and returns the bounded body.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("backend: failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Backend request failed in transport",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("backend: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		// A JSON error envelope beats a bare status code for the user.
		var env envelope
		if jsonErr := json.Unmarshal(respBody, &env); jsonErr == nil && env.Error != "" {
			return nil, &RejectionError{Message: env.Error}
		}
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}
