// Package providers holds the static classification data for streaming and
// purchase platforms known to the resolution service.
package providers

import (
	"sort"

	"songlinkbot/bot"
)

// displayNames maps provider keys to human-readable names. Keys without an
// entry have no display name and are never rendered.
var displayNames = map[string]string{
	"spotify":      "Spotify",
	"itunes":       "iTunes",
	"appleMusic":   "Apple Music",
	"youtube":      "YouTube",
	"youtubeMusic": "YouTube Music",
	"google":       "Google Play",
	"googleStore":  "Google Play Store",
	"pandora":      "Pandora",
	"deezer":       "Deezer",
	"tidal":        "Tidal",
	"amazonStore":  "Amazon",
	"amazonMusic":  "Amazon Music",
	"soundcloud":   "SoundCloud",
	"napster":      "Napster",
	"yandex":       "Yandex Music",
	"spinrilla":    "Spinrilla",
}

// listenProviders are the platforms rendered under the "Listen" header.
var listenProviders = map[string]bool{
	"spotify":      true,
	"appleMusic":   true,
	"youtube":      true,
	"youtubeMusic": true,
	"pandora":      true,
	"deezer":       true,
	"tidal":        true,
	"amazonMusic":  true,
	"soundcloud":   true,
	"napster":      true,
	"yandex":       true,
	"spinrilla":    true,
}

// buyProviders are the platforms rendered under the "Buy" header.
var buyProviders = map[string]bool{
	"itunes":      true,
	"google":      true,
	"googleStore": true,
	"amazonStore": true,
}

// Link is one provider destination with its derived display name.
type Link struct {
	Provider    string
	DisplayName string
	URL         string
}

// DisplayName resolves the human-readable name of a provider key.
func DisplayName(key string) (string, bool) {
	name, ok := displayNames[key]
	return name, ok
}

// IsListen reports listen-category membership.
func IsListen(key string) bool { return listenProviders[key] }

// IsBuy reports buy-category membership.
func IsBuy(key string) bool { return buyProviders[key] }

// Classify turns a resolution payload's provider mapping into a sequence of
// links sorted alphabetically by display name. Every provider key occupies an
// entry, including keys without a display name; the sort is deterministic
// regardless of the payload's map ordering.
func Classify(linksByPlatform map[string]bot.PlatformLink) []Link {
	links := make([]Link, 0, len(linksByPlatform))
	for key, platformLink := range linksByPlatform {
		name, _ := DisplayName(key)
		links = append(links, Link{
			Provider:    key,
			DisplayName: name,
			URL:         platformLink.URL,
		})
	}
	sort.SliceStable(links, func(i, j int) bool {
		if links[i].DisplayName != links[j].DisplayName {
			return links[i].DisplayName < links[j].DisplayName
		}
		return links[i].Provider < links[j].Provider
	})
	return links
}

// Partition splits classified links into the rendered listen and buy
// sections, preserving order. Links without a display name and providers
// outside both membership sets are excluded.
func Partition(links []Link) (listen, buy []Link) {
	for _, link := range links {
		if link.DisplayName == "" || link.URL == "" {
			continue
		}
		if listenProviders[link.Provider] {
			listen = append(listen, link)
		}
		if buyProviders[link.Provider] {
			buy = append(buy, link)
		}
	}
	return listen, buy
}
