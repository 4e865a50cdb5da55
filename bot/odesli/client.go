// Package odesli implements the links-by-URL resolution client.
package odesli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"

	"songlinkbot/bot"
)

// ErrNotFound signals that the resolution service has no data for a URL.
// Malformed payloads and payloads without a resolvable entity map to the
// same error; callers never inspect nested diagnostic fields.
var ErrNotFound = errors.New("odesli: no data for url")

const (
	// DefaultBaseURL is the resolution API host.
	DefaultBaseURL = "https://api.streaming-hell.com/v1"
	// DefaultTimeout bounds a single lookup request.
	DefaultTimeout = 30 * time.Second

	linksPath = "/links/byUrl"

	maxResponseSize = 4 << 20
)

// Options configures the resolution client.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int // 0 disables transport retries; lookups are never reattempted by callers
	Logger   bot.Logger
}

// Client provides resilient lookups against the resolution API.
type Client struct {
	baseURL    string
	http       *http.Client
	retry      *retryablehttp.Client
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	minBackoff time.Duration
	maxBackoff time.Duration
	logger     bot.Logger
}

// New creates a resolution client with a circuit breaker.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	retry := retryablehttp.NewClient()
	retry.RetryMax = opts.RetryMax
	retry.RetryWaitMin = 200 * time.Millisecond
	retry.RetryWaitMax = 2 * time.Second
	retry.Logger = nil

	settings := gobreaker.Settings{
		Name:        "odesli-api",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		// A definitive "not found" answer must not trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	}

	return &Client{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: timeout},
		retry:      retry,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		maxRetries: retry.RetryMax,
		minBackoff: retry.RetryWaitMin,
		maxBackoff: retry.RetryWaitMax,
		logger:     opts.Logger,
	}
}

// Resolve looks up all known streaming/purchase destinations for a song.
// Every failure mode of a lookup — transport error, non-2xx status, bad
// payload, payload without the referenced entity — surfaces as ErrNotFound
// so one URL's outcome stays local to that URL.
func (c *Client) Resolve(ctx context.Context, rawURL string) (*bot.ResolvedSong, error) {
	var song *bot.ResolvedSong
	err := c.execute(ctx, func() error {
		resolved, err := c.lookup(ctx, rawURL)
		if err != nil {
			return err
		}
		song = resolved
		return nil
	})
	if err != nil {
		if c.logger != nil && !errors.Is(err, ErrNotFound) {
			c.logger.Error("resolution lookup failed", "url", rawURL, "error", err)
		}
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return song, nil
}

func (c *Client) lookup(ctx context.Context, rawURL string) (*bot.ResolvedSong, error) {
	lookupURL := c.baseURL + linksPath + "?url=" + url.QueryEscape(rawURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("odesli: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("odesli: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("odesli: read response: %w", err)
	}

	var song bot.ResolvedSong
	if err := json.Unmarshal(body, &song); err != nil {
		return nil, fmt.Errorf("odesli: decode response: %w", err)
	}

	// The entity referenced by entityUniqueId must exist in the metadata map.
	if _, ok := song.Entity(); !ok {
		return nil, ErrNotFound
	}
	return &song, nil
}

func (c *Client) execute(ctx context.Context, fn func() error) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.withRetry(ctx, fn)
	})
	return err
}

func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		// "Not found" is a definitive answer, not a transient failure.
		if errors.Is(err, ErrNotFound) {
			return err
		}
		if attempt == c.maxRetries {
			break
		}

		wait := c.retry.Backoff(c.minBackoff, c.maxBackoff, attempt, nil)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}
