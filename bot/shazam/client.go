// Package shazam resolves Shazam share links to canonical streaming URLs.
// Shazam share links cannot be looked up by the link-resolution service
// directly, so the pipeline converts them to Apple Music URLs first.
package shazam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"songlinkbot/bot"
)

const (
	// DefaultBaseURL is the Shazam web host serving track discovery data.
	DefaultBaseURL = "https://www.shazam.com"
	// DefaultTimeout bounds a single discovery lookup.
	DefaultTimeout = 10 * time.Second

	discoveryPathFormat = "/discovery/v5/en-US/US/web/-/track/%s"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxResponseSize = 1 << 20
)

var trackPathPattern = regexp.MustCompile(`^/track/(\d+)(?:/|$)`)

// appleMusicHosts are the destinations Shazam points at for playable tracks.
var appleMusicHosts = map[string]bool{
	"music.apple.com":     true,
	"geo.music.apple.com": true,
	"itunes.apple.com":    true,
}

// trackResponse is the subset of the Shazam discovery payload the client reads.
type trackResponse struct {
	Key string `json:"key"`
	Hub struct {
		Actions []hubAction `json:"actions"`
		Options []struct {
			Actions []hubAction `json:"actions"`
		} `json:"options"`
	} `json:"hub"`
}

type hubAction struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

// Client looks up Shazam track discovery data over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  bot.Logger
}

// New creates a Shazam client.
func New(baseURL string, timeout time.Duration, logger bot.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// IsShareLink reports whether the URL is a Shazam track share link.
func (c *Client) IsShareLink(raw string) bool {
	_, ok := trackID(raw)
	return ok
}

// FindStreamingURL resolves a share link to a canonical Apple Music URL.
// It returns "" with a nil error when Shazam has no playable destination
// for the track.
func (c *Client) FindStreamingURL(ctx context.Context, raw string) (string, error) {
	id, ok := trackID(raw)
	if !ok {
		return "", fmt.Errorf("shazam: not a share link: %s", raw)
	}

	lookupURL := c.baseURL + fmt.Sprintf(discoveryPathFormat, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, http.NoBody)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("shazam: discovery request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shazam: discovery returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("shazam: read discovery response: %w", err)
	}

	var track trackResponse
	if err := json.Unmarshal(body, &track); err != nil {
		return "", fmt.Errorf("shazam: decode discovery response: %w", err)
	}

	streaming := appleMusicURL(&track)
	if streaming == "" && c.logger != nil {
		c.logger.Debug("shazam track has no streaming destination", "track_id", id)
	}
	return streaming, nil
}

// appleMusicURL picks the first hub action pointing at an Apple Music host.
func appleMusicURL(track *trackResponse) string {
	actions := track.Hub.Actions
	for _, option := range track.Hub.Options {
		actions = append(actions, option.Actions...)
	}
	for _, action := range actions {
		if action.URI == "" {
			continue
		}
		u, err := url.Parse(action.URI)
		if err != nil {
			continue
		}
		if appleMusicHosts[strings.ToLower(u.Hostname())] {
			return action.URI
		}
	}
	return ""
}

func trackID(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host != "shazam.com" && host != "www.shazam.com" {
		return "", false
	}
	match := trackPathPattern.FindStringSubmatch(u.Path)
	if match == nil {
		return "", false
	}
	return match[1], true
}
