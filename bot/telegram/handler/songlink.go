package handler

import (
	"context"
	"errors"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"
	"golang.org/x/sync/errgroup"

	"songlinkbot/bot"
	"songlinkbot/bot/i18n"
	"songlinkbot/bot/links"
)

// MessagePipeline turns a private text message into song replies. For each
// URL in the message it sends the song card and the link list, in the order
// the URLs appear in the text. A URL that cannot be resolved gets its own
// "no data" reply without affecting the others.
type MessagePipeline struct {
	Sender     Sender
	Resolver   bot.SongResolver
	Cache      bot.ResolutionCache
	Normalizer *links.Normalizer
	Composer   *ReplyComposer
	Messages   *i18n.Catalog
	Logger     bot.Logger

	// ResolveConcurrency caps parallel lookups per message. Values below 1
	// resolve sequentially.
	ResolveConcurrency int
}

// ErrNoTextInMessage is returned to the dispatcher for messages without
// text. It is the only pipeline failure that escapes Handle; everything
// else is answered with a reply.
var ErrNoTextInMessage = errors.New("message has no text")

type resolveResult struct {
	song *bot.ResolvedSong
	err  error
}

func (p *MessagePipeline) Handle(ctx context.Context, message *telego.Message) error {
	chatID := message.Chat.ID
	loc := localizerFor(p.Messages, message)

	if message.Text == "" {
		return ErrNoTextInMessage
	}

	urls := links.Extract(message.Text)
	if len(urls) == 0 {
		p.reply(ctx, chatID, loc.T(i18n.KeyNoMusicLinks))
		return nil
	}

	// The share-service message is deleted exactly once, before resolution,
	// regardless of whether any URL resolves afterwards.
	if p.Normalizer.ContainsShareLink(urls) {
		err := p.Sender.DeleteMessage(ctx, &telego.DeleteMessageParams{
			ChatID:    telego.ChatID{ID: chatID},
			MessageID: message.MessageID,
		})
		if err != nil {
			p.Logger.Warn("delete share message failed", "chat_id", chatID, "message_id", message.MessageID, "error", err)
		}
	}

	urls = p.Normalizer.Normalize(ctx, urls)
	if len(urls) == 0 {
		return nil
	}

	results := p.resolveAll(ctx, urls)
	for i, u := range urls {
		result := results[i]
		if result.err != nil || result.song == nil {
			p.Logger.Info("link not resolved", "chat_id", chatID, "url", u, "error", result.err)
			p.reply(ctx, chatID, loc.T(i18n.KeyNoDataByLink))
			continue
		}
		p.sendSongReplies(ctx, chatID, loc, u, result.song)
	}
	return nil
}

// resolveAll fans out lookups while keeping results indexed by the URL's
// position, so replies preserve message order. Failures stay per-URL.
func (p *MessagePipeline) resolveAll(ctx context.Context, urls []string) []resolveResult {
	results := make([]resolveResult, len(urls))

	limit := p.ResolveConcurrency
	if limit < 1 {
		limit = 1
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			results[i] = p.resolveOne(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (p *MessagePipeline) resolveOne(ctx context.Context, url string) resolveResult {
	if p.Cache != nil {
		cached, err := p.Cache.Find(ctx, url)
		if err != nil {
			p.Logger.Warn("cache lookup failed", "url", url, "error", err)
		} else if cached != nil {
			return resolveResult{song: cached}
		}
	}

	song, err := p.Resolver.Resolve(ctx, url)
	if err != nil {
		return resolveResult{err: err}
	}

	if p.Cache != nil {
		if err := p.Cache.Save(ctx, url, song); err != nil {
			p.Logger.Warn("cache save failed", "url", url, "error", err)
		}
	}
	return resolveResult{song: song}
}

func (p *MessagePipeline) sendSongReplies(ctx context.Context, chatID int64, loc *i18n.Localizer, originalURL string, song *bot.ResolvedSong) {
	entity, ok := song.Entity()
	if !ok {
		p.reply(ctx, chatID, loc.T(i18n.KeyNoDataByLink))
		return
	}

	sent := false
	if entity.ThumbnailURL != "" {
		_, err := p.Sender.SendPhoto(ctx, &telego.SendPhotoParams{
			ChatID:              telego.ChatID{ID: chatID},
			Photo:               telegoutil.FileFromURL(entity.ThumbnailURL),
			Caption:             p.Composer.SongCaption(entity, originalURL),
			ParseMode:           telego.ModeMarkdown,
			DisableNotification: true,
		})
		if err != nil {
			p.Logger.Warn("song artwork reply failed", "chat_id", chatID, "url", originalURL, "error", err)
		} else {
			sent = true
		}
	}
	if !sent {
		p.reply(ctx, chatID, p.Composer.SongFallbackText(entity))
	}

	p.reply(ctx, chatID, p.Composer.LinkList(loc, song, entity))
}

func (p *MessagePipeline) reply(ctx context.Context, chatID int64, text string) {
	if err := sendText(ctx, p.Sender, chatID, text); err != nil {
		p.Logger.Warn("reply failed", "chat_id", chatID, "error", err)
	}
}
