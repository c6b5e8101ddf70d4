// Package datasync is a typed client for the DataSync federation REST API.
package datasync

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

	"datasync-console/internal/domain"
)

// DefaultTimeout bounds a single backend call when no http.Client is supplied.
const DefaultTimeout = 60 * time.Second

// APIError is a non-2xx response from the backend. Message is the response
// body text, or an operation-specific fallback when the body is empty.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to a DataSync backend.
type Client struct {
	baseURL        string
	globalQueryURL string
	httpClient     *http.Client
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithGlobalQueryURL points federated queries at an absolute URL instead of
// {baseURL}/query/global.
func WithGlobalQueryURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.globalQueryURL = u
		}
	}
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL:        base,
		globalQueryURL: base + "/query/global",
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// GlobalQueryURL returns the federated query endpoint.
func (c *Client) GlobalQueryURL() string { return c.globalQueryURL }

// escapePath joins path segments, escaping each one.
func escapePath(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// do sends a JSON request to path (relative to the base URL) and decodes the
// response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, fallback string) error {
	raw, err := c.send(ctx, method, c.baseURL+path, path, body, fallback)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// send performs the request and returns the raw response body.
func (c *Client) send(ctx context.Context, method, target, path string, body interface{}, fallback string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UnavailableError{
			Message: fmt.Sprintf("%s: backend unreachable", fallback),
			Err:     err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.DebugContext(ctx, "datasync request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = fallback
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    msg,
		}
	}
	return raw, nil
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (*domain.HealthStatus, error) {
	var out domain.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out, "Health check failed"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SyncMetadata asks the backend to refresh its catalog metadata.
func (c *Client) SyncMetadata(ctx context.Context) (*domain.SyncResponse, error) {
	var out domain.SyncResponse
	if err := c.do(ctx, http.MethodPost, "/sync", nil, &out, "Sync failed"); err != nil {
		return nil, err
	}
	return &out, nil
}

var (
	_ domain.MetadataBackend     = (*Client)(nil)
	_ domain.GlobalSchemaBackend = (*Client)(nil)
	_ domain.RelationBackend     = (*Client)(nil)
	_ domain.AssistantBackend    = (*Client)(nil)
	_ domain.QueryBackend        = (*Client)(nil)
)
