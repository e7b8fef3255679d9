// Package persist ships finished team splits to a remote endpoint. A failed
// save never touches in-memory state; callers surface the error and may
// retry.
package persist

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/teamdraft/teamdraft/internal/errors"
	"github.com/teamdraft/teamdraft/internal/logging"
	"github.com/teamdraft/teamdraft/internal/split"
)

// DefaultTimeout bounds a save request when the caller's context carries no
// deadline of its own.
const DefaultTimeout = 10 * time.Second

// SavePayload is the request body for a save.
type SavePayload struct {
	SavedAt time.Time    `json:"saved_at"`
	Teams   []split.Team `json:"teams"`
}

// SaveResult is the server's acknowledgement.
type SaveResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Client posts team splits to a configured endpoint.
type Client struct {
	http     *resty.Client
	endpoint string
	log      *logging.Logger
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a logger for request diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.log = l.WithComponent("persist") }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithClock overrides the payload timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a Client posting to endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		http:     resty.New().SetTimeout(DefaultTimeout).SetHeader("Content-Type", "application/json"),
		endpoint: endpoint,
		log:      logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SaveTeamData posts teams to the endpoint and returns the server's
// acknowledgement. Transport failures and non-2xx responses come back as a
// PersistenceError.
func (c *Client) SaveTeamData(ctx context.Context, teams []split.Team) (*SaveResult, error) {
	payload := SavePayload{
		SavedAt: c.now(),
		Teams:   teams,
	}

	var result SaveResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		Post(c.endpoint)
	if err != nil {
		c.log.Warn("save request failed", "endpoint", c.endpoint, "error", err)
		return nil, errors.NewPersistenceError("request failed", err).
			WithEndpoint(c.endpoint)
	}
	if resp.IsError() {
		c.log.Warn("save rejected", "endpoint", c.endpoint, "status", resp.StatusCode())
		return nil, errors.NewPersistenceError("server rejected the save", nil).
			WithEndpoint(c.endpoint).
			WithStatusCode(resp.StatusCode())
	}

	c.log.Info("teams saved", "endpoint", c.endpoint, "teams", len(teams), "id", result.ID)
	return &result, nil
}
