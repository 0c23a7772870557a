// Package apiclient talks to the deployed attendance backend over JSON HTTP.
// Each sub-handle satisfies the same consumer interfaces as the sandbox SQLite stores.
package apiclient

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
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 15 * time.Second

// Error is a non-2xx backend response.
// Message is the backend's {message} text; Err is the matching domain error, if any.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// UserMessage returns the backend text shown to the user as the alert.
func (e *Error) UserMessage() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client is a bearer-token JSON client for the attendance backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client rooted at baseURL.
// PRE: baseURL is an absolute http(s) URL
func New(baseURL, token string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}, nil
}

// Events returns the event endpoints.
func (c *Client) Events() *Events { return &Events{c: c} }

// Attendance returns the attendance endpoints.
func (c *Client) Attendance() *Attendance { return &Attendance{c: c} }

// Reports returns the report endpoints.
func (c *Client) Reports() *Reports { return &Reports{c: c} }

// Requests returns the event request endpoint.
func (c *Client) Requests() *Requests { return &Requests{c: c} }

// Students returns the student endpoints.
func (c *Client) Students() *Students { return &Students{c: c} }

// statusErrors maps response statuses to domain errors for one call.
type statusErrors map[int]error

// do sends body as JSON (when non-nil) and decodes a 2xx response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, mapped statusErrors) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("backend_call_failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	slog.Debug("backend_call", "method", method, "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, mapped)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response, mapped statusErrors) error {
	apiErr := &Error{Status: resp.StatusCode, Err: mapped[resp.StatusCode]}
	var payload struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err == nil {
		apiErr.Message = strings.TrimSpace(payload.Message)
	}
	slog.Warn("backend_error", "status", apiErr.Status, "message", apiErr.Message)
	return apiErr
}

// IsStatus reports whether err is a backend response with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
