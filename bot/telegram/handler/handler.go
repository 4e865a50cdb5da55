// Package handler routes Telegram updates to the bot's features.
package handler

import (
	"context"

	"github.com/mymmrac/telego"

	"songlinkbot/bot/telegram"
)

// MessageHandler handles a single incoming message. The returned error is
// reserved for exceptional conditions the dispatcher must surface; ordinary
// failures are answered with a reply and reported as nil.
type MessageHandler interface {
	Handle(ctx context.Context, message *telego.Message) error
}

// Sender abstracts the outgoing Telegram calls the handlers make.
type Sender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
	SendPhoto(ctx context.Context, params *telego.SendPhotoParams) (*telego.Message, error)
	DeleteMessage(ctx context.Context, params *telego.DeleteMessageParams) error
}

// RetrySender sends through the bot client with per-chat rate limiting and
// retry-after handling.
type RetrySender struct {
	Bot     *telego.Bot
	Limiter *telegram.RateLimiter
}

func (s *RetrySender) SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	return telegram.SendMessageWithRetry(ctx, s.Limiter, s.Bot, params)
}

func (s *RetrySender) SendPhoto(ctx context.Context, params *telego.SendPhotoParams) (*telego.Message, error) {
	return telegram.SendPhotoWithRetry(ctx, s.Limiter, s.Bot, params)
}

func (s *RetrySender) DeleteMessage(ctx context.Context, params *telego.DeleteMessageParams) error {
	return telegram.DeleteMessageWithRetry(ctx, s.Limiter, s.Bot, params)
}
