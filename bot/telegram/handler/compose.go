package handler

import (
	"fmt"
	"net/url"
	"strings"

	"songlinkbot/bot"
	"songlinkbot/bot/i18n"
	"songlinkbot/bot/providers"
	"songlinkbot/bot/vk"
)

// ReplyComposer renders the two replies sent for each resolved song: the
// song card and the categorized link list.
type ReplyComposer struct {
	PageBaseURL     string
	VKSearchBaseURL string
}

// SongTitle renders "<artist> – <title>", tolerating a missing half.
func (c *ReplyComposer) SongTitle(entity bot.SongEntity) string {
	switch {
	case entity.ArtistName != "" && entity.Title != "":
		return entity.ArtistName + " – " + entity.Title
	case entity.ArtistName != "":
		return entity.ArtistName
	default:
		return entity.Title
	}
}

// PageLink returns the companion web page URL for the original link.
func (c *ReplyComposer) PageLink(originalURL string) string {
	base := strings.TrimRight(c.PageBaseURL, "/")
	return base + "/?url=" + url.QueryEscape(originalURL)
}

// SongCaption renders the artwork caption linking to the companion page.
func (c *ReplyComposer) SongCaption(entity bot.SongEntity, originalURL string) string {
	return fmt.Sprintf("[%s](%s)", c.SongTitle(entity), c.PageLink(originalURL))
}

// SongFallbackText renders the bold text reply used when no artwork exists.
func (c *ReplyComposer) SongFallbackText(entity bot.SongEntity) string {
	return "*" + c.SongTitle(entity) + "*"
}

// LinkList renders the categorized link list: the listen section with a VK
// search link appended, a blank line, then the buy section. Both headers are
// always rendered, even over an empty section. Sections are alphabetized by
// display name.
func (c *ReplyComposer) LinkList(loc *i18n.Localizer, song *bot.ResolvedSong, entity bot.SongEntity) string {
	listen, buy := providers.Partition(providers.Classify(song.LinksByPlatform))

	var sb strings.Builder
	sb.WriteString(loc.T(i18n.KeyListen))
	for _, link := range listen {
		fmt.Fprintf(&sb, "[%s](%s)\n", link.DisplayName, link.URL)
	}
	fmt.Fprintf(&sb, "[VK](%s)\n", vk.SearchLink(c.VKSearchBaseURL, c.SongTitle(entity)))

	sb.WriteString("\n")
	sb.WriteString(loc.T(i18n.KeyBuy))
	for _, link := range buy {
		fmt.Fprintf(&sb, "[%s](%s)\n", link.DisplayName, link.URL)
	}

	return sb.String()
}
