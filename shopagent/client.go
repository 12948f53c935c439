// Package shopagent provides the HTTP transport for the shopping agent
// backend: it opens the /chat/stream endpoint and exposes the response
// as a stream of semantic events.
package shopagent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/modachat/moda"
)

const (
	defaultBaseURL = "http://localhost:8000"
	streamPath     = "/chat/stream"
)

// Interface compliance check.
var _ moda.Provider = (*Client)(nil)

// Client implements [moda.Provider] for the shopping agent streaming API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets a structured logger for stream lifecycle diagnostics.
// The default is a nop logger so the library stays quiet.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new shopping agent [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// chatRequest is the request body for POST /chat/stream.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// Stream sends a chat request and returns a [moda.Stream] of semantic
// events. Transport errors are fatal and not retried here.
func (c *Client) Stream(ctx context.Context, req moda.Request) (moda.Stream, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("shopagent: %w", moda.ErrEmptyMessage)
	}

	body, err := json.Marshal(chatRequest{Message: req.Message, SessionID: req.SessionID})
	if err != nil {
		return nil, fmt.Errorf("shopagent: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+streamPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("shopagent: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("shopagent: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	c.logger.Debug("stream opened",
		zap.String("session_id", req.SessionID),
		zap.Int("message_len", len(req.Message)),
	)

	return newStream(ctx, resp.Body, c.logger), nil
}

// parseHTTPError converts a non-200 response into an error, preferring
// the backend's JSON detail message when present.
func parseHTTPError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("shopagent: HTTP %d", resp.StatusCode)
	}

	var apiErr struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Detail != "" {
		return fmt.Errorf("shopagent: HTTP %d: %s", resp.StatusCode, apiErr.Detail)
	}
	return fmt.Errorf("shopagent: HTTP %d", resp.StatusCode)
}
