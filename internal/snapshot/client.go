package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/event-ops/internal/model"
)

// Client is a thin HTTP client for the event store REST API. It handles
// Bearer token authentication, JSON unmarshaling, and automatic retry
// with exponential backoff on HTTP 429.
type Client struct {
	baseURL    string
	eventID    string
	token      string
	httpClient *http.Client
	maxRetries int
	log        *zap.Logger
}

// NewClient creates an event store client. The baseURL should be the
// API root (e.g. https://events.example.org). The token is the API key
// used for Bearer authentication.
func NewClient(baseURL, eventID, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		eventID: eventID,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
		log:        log,
	}
}

// Fetch retrieves one full domain snapshot for the configured event.
func (c *Client) Fetch(ctx context.Context, userID string) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		UserID: userID,
		Now:    time.Now(),
	}

	var shifts []shiftDTO
	if err := c.get(ctx, fmt.Sprintf("/api/events/%s/shifts", c.eventID), &shifts); err != nil {
		return nil, fmt.Errorf("fetching shifts: %w", err)
	}
	for _, dto := range shifts {
		sh, err := dto.toModel()
		if err != nil {
			// One malformed record must not abort the snapshot.
			c.log.Warn("skipping malformed shift record",
				zap.String("shift_id", dto.ID), zap.Error(err))
			continue
		}
		snap.Shifts = append(snap.Shifts, sh)
	}

	var signups []signupDTO
	if err := c.get(ctx, fmt.Sprintf("/api/events/%s/signups", c.eventID), &signups); err != nil {
		return nil, fmt.Errorf("fetching signups: %w", err)
	}
	for _, dto := range signups {
		snap.Signups = append(snap.Signups, dto.toModel())
	}

	var teams []teamDTO
	if err := c.get(ctx, fmt.Sprintf("/api/events/%s/teams", c.eventID), &teams); err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	for _, dto := range teams {
		snap.Teams = append(snap.Teams, dto.toModel())
	}

	var live eventDTO
	err := c.get(ctx, "/api/events/live", &live)
	switch {
	case err == nil && live.ID != "":
		ev := live.toModel()
		snap.LiveEvent = &ev
	case err != nil:
		// No live event is not fatal; rules fall back to the default
		// required-hours value.
		c.log.Warn("fetching live event failed", zap.Error(err))
	}

	return snap, nil
}

// get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request GET %s: %w", path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			waitDuration := retryAfterDuration(resp, attempt)
			lastErr = fmt.Errorf("rate limited (429) on GET %s", path)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitDuration):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return &AuthError{
				Message: fmt.Sprintf("status %d from %s: check your API token", resp.StatusCode, c.baseURL),
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf(
				"unexpected status %d on GET %s: %s",
				resp.StatusCode, path, string(respBody),
			)
		}

		if result == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}

		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshaling response from GET %s: %w", path, err)
		}

		return nil
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
