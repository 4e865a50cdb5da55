// Package links implements URL extraction and share-link normalization for
// incoming messages.
package links

import "regexp"

var urlPattern = regexp.MustCompile(`(http|ftp|https)://[\w-]+(\.[\w-]+)+([\w.,@?^=%&:/~+#-]*[\w@?^=%&/~+#-])?`)

// Extract returns every URL-like substring of text in order of appearance.
// Duplicates are kept. A text without URLs yields an empty result.
func Extract(text string) []string {
	return urlPattern.FindAllString(text, -1)
}
