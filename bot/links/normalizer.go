package links

import (
	"context"

	"songlinkbot/bot"
)

// ShareResolver converts a music-recognition share link into a canonical
// streaming URL. FindStreamingURL returns an empty string when the service
// could not identify the track behind the link.
type ShareResolver interface {
	IsShareLink(url string) bool
	FindStreamingURL(ctx context.Context, url string) (string, error)
}

// Normalizer maps each extracted URL to zero or one canonical URLs before
// resolution. Share-service links the resolver cannot convert are dropped.
type Normalizer struct {
	Shazam ShareResolver
	Logger bot.Logger
}

// ContainsShareLink reports whether any of the URLs is a share-service link.
func (n *Normalizer) ContainsShareLink(urls []string) bool {
	if n.Shazam == nil {
		return false
	}
	for _, url := range urls {
		if n.Shazam.IsShareLink(url) {
			return true
		}
	}
	return false
}

// Normalize produces a new sequence of canonical URLs. Non-share URLs pass
// through unchanged at the same position; share URLs are substituted by the
// streaming URL the share service reports, or removed when it reports none.
func (n *Normalizer) Normalize(ctx context.Context, urls []string) []string {
	normalized := make([]string, 0, len(urls))
	for _, url := range urls {
		if n.Shazam == nil || !n.Shazam.IsShareLink(url) {
			normalized = append(normalized, url)
			continue
		}

		canonical, err := n.Shazam.FindStreamingURL(ctx, url)
		if err != nil {
			if n.Logger != nil {
				n.Logger.Warn("share link lookup failed", "url", url, "error", err)
			}
			continue
		}
		if canonical == "" {
			if n.Logger != nil {
				n.Logger.Debug("share link not identified", "url", url)
			}
			continue
		}
		normalized = append(normalized, canonical)
	}
	return normalized
}
