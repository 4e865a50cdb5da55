// Package vk builds VK search links appended to every link-list reply.
package vk

import (
	"net/url"
	"strings"
)

// DefaultSearchBaseURL is the VK audio search page.
const DefaultSearchBaseURL = "https://vk.com/audio"

// SearchLink returns a search-results URL for the given "<artist> – <title>"
// query on VK.
func SearchLink(baseURL, query string) string {
	if baseURL == "" {
		baseURL = DefaultSearchBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	params := url.Values{}
	params.Set("q", query)
	return baseURL + "?" + params.Encode()
}
