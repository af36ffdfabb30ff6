// Package session talks to the planning service. One lazily created server
// session scopes every edit request issued by a client instance.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cutlistlab/cabplan/internal/model"
)

const (
	// DefaultBaseURL is the local dev server address.
	DefaultBaseURL = "http://localhost:8445"

	defaultTimeout = 30 * time.Second
)

// Client performs session-scoped calls against the planning API. It is safe
// for concurrent use; concurrent callers racing on a cold client share a
// single session-creation request.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger

	flight    singleflight.Group
	mu        sync.Mutex
	sessionID string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSessionID seeds an already-established session id, for resuming an
// editing context across process restarts.
func WithSessionID(id string) Option {
	return func(c *Client) { c.sessionID = id }
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAvailable checks if a planning service is reachable at url.
func IsAvailable(url string) bool {
	if url == "" {
		url = DefaultBaseURL
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url + "/api/healthz")
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// SessionID returns the held session id, or "" before the first
// EnsureSession.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// EnsureSession returns the held session id, creating one on first use.
// Concurrent callers before the first response resolves are deduplicated so
// at most one session is ever created.
func (c *Client) EnsureSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.sessionID != "" {
		id := c.sessionID
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	v, err, _ := c.flight.Do("create-session", func() (interface{}, error) {
		// A racing caller may have won the flight and stored the id
		// already.
		c.mu.Lock()
		if c.sessionID != "" {
			id := c.sessionID
			c.mu.Unlock()
			return id, nil
		}
		c.mu.Unlock()

		var out struct {
			ID string `json:"id"`
		}
		if err := c.do(ctx, http.MethodPost, "/api/sessions", nil, &out); err != nil {
			if se, ok := err.(*statusError); ok {
				return "", &SessionCreationError{Status: se.Message}
			}
			return "", &SessionCreationError{Err: err}
		}
		if out.ID == "" {
			return "", &SessionCreationError{Status: "server returned no session id"}
		}

		c.mu.Lock()
		c.sessionID = out.ID
		c.mu.Unlock()
		c.log.Info("session established", "session_id", out.ID)
		return out.ID, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// UpdateProject persists the whole document.
func (c *Client) UpdateProject(ctx context.Context, project *model.Project) error {
	id, err := c.EnsureSession(ctx)
	if err != nil {
		return err
	}
	return c.persist(ctx, http.MethodPut, fmt.Sprintf("/api/sessions/%s/project", id), project)
}

// UpdateCabinet persists one cabinet entry by its position in the sequence.
func (c *Client) UpdateCabinet(ctx context.Context, index int, cabinet model.Cabinet) error {
	id, err := c.EnsureSession(ctx)
	if err != nil {
		return err
	}
	return c.persist(ctx, http.MethodPut, fmt.Sprintf("/api/sessions/%s/cabinets/%d", id, index), cabinet)
}

// Nest asks the service to nest the session's current document onto its
// stock sheets.
func (c *Client) Nest(ctx context.Context) (*model.NestingResult, error) {
	id, err := c.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}
	var result model.NestingResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/sessions/%s/nest", id), nil, &result); err != nil {
		return nil, asSyncError(err)
	}
	return &result, nil
}

func (c *Client) persist(ctx context.Context, method, path string, body interface{}) error {
	if err := c.do(ctx, method, path, body, nil); err != nil {
		c.log.Warn("persist failed", "path", path, "err", err)
		return asSyncError(err)
	}
	return nil
}

func asSyncError(err error) error {
	if se, ok := err.(*statusError); ok {
		return &SyncError{Message: se.Message}
	}
	return err
}

// statusError is an internal carrier for non-2xx responses; callers convert
// it to the public error kinds.
type statusError struct {
	Code    int
	Message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// do issues one request. A nil body sends no body and no content-type; a
// successful response with an empty body yields nothing, otherwise the body
// is decoded into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{Code: resp.StatusCode, Message: errorMessage(raw, resp)}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts the server's {error} body, falling back to the
// transport status text.
func errorMessage(raw []byte, resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(resp.StatusCode)
}
