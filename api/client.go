// Package api is the REST client for the padel tournament platform. Every
// operation decodes the platform envelope {success, data, error, message} and
// fails soft: callers always get a structured error, never a panic, and are
// expected to keep their last-known-good state on failure.
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
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 1_048_576 // 1MB, same cap the platform applies to bodies
	headerRequestID = "X-Request-ID"
)

var (
	// ErrLoginInFlight guards against duplicate concurrent login submissions.
	ErrLoginInFlight = errors.New("a login request is already in flight")
)

// Error is an API-reported failure: a non-2xx status or a success=false
// envelope. Transport failures are returned as wrapped errors instead.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %s", e.Message)
}

// IsUnauthorized reports whether err is a 401 from the platform.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// TokenSource supplies the bearer token attached to outgoing requests. An
// empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Meta is the pagination block wrapped around list responses.
type Meta struct {
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// errorMessage flattens the error field, which the platform emits either as a
// plain string or as a validation object.
func (e envelope) errorMessage(status int) string {
	if len(e.Error) > 0 {
		var msg string
		if err := json.Unmarshal(e.Error, &msg); err == nil && msg != "" {
			return msg
		}
		return string(e.Error)
	}
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(status)
}

type page struct {
	Meta Meta            `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// Client talks to the platform API.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	sessions SessionWriter
	logger   *slog.Logger

	// onUnauthorized tears the session down when any authenticated endpoint
	// answers 401. The auth endpoints themselves are exempt so a failed login
	// cannot wipe an unrelated session.
	onUnauthorized func()

	loginInFlight chan struct{}
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithSession attaches the narrow session write surface the auth operations
// persist through (token and cached user).
func WithSession(w SessionWriter) Option {
	return func(c *Client) { c.sessions = w }
}

// WithUnauthorizedHook registers the teardown invoked on a 401 from any
// non-auth endpoint.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: defaultTimeout},
		tokens:        tokens,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		loginInFlight: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authExempt lists the paths whose 401 responses must not clear the session,
// so the login and registration flows cannot trigger a teardown loop.
func authExempt(path string) bool {
	return path == "/auth" || path == "/register"
}

// do performs one request against the platform and decodes the envelope data
// into out. A nil out discards the data field.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !authExempt(path) {
		c.logger.Warn("session rejected by API", slog.String("path", path))
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 400 {
				return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
			}
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &Error{Status: resp.StatusCode, Message: env.errorMessage(resp.StatusCode)}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s %s data: %w", method, path, err)
		}
	}
	return nil
}

// doPaginated decodes a list endpoint whose data field carries {meta, data}.
func (c *Client) doPaginated(ctx context.Context, path string, out any) (Meta, error) {
	var pg page
	if err := c.do(ctx, http.MethodGet, path, nil, &pg); err != nil {
		return Meta{}, err
	}
	if out != nil && len(pg.Data) > 0 {
		if err := json.Unmarshal(pg.Data, out); err != nil {
			return Meta{}, fmt.Errorf("decode page %s: %w", path, err)
		}
	}
	return pg.Meta, nil
}
