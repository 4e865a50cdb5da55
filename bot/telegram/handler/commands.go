package handler

import (
	"context"

	"github.com/mymmrac/telego"

	"songlinkbot/bot"
	"songlinkbot/bot/i18n"
)

// StartHandler replies to /start with a short usage intro.
type StartHandler struct {
	Sender   Sender
	Messages *i18n.Catalog
	Logger   bot.Logger
}

func (h *StartHandler) Handle(ctx context.Context, message *telego.Message) error {
	loc := localizerFor(h.Messages, message)
	if err := sendText(ctx, h.Sender, message.Chat.ID, loc.T(i18n.KeyStartCommandReply)); err != nil && h.Logger != nil {
		h.Logger.Warn("start reply failed", "chat_id", message.Chat.ID, "error", err)
	}
	return nil
}

// ServicesHandler replies to /services with the list of supported services.
type ServicesHandler struct {
	Sender   Sender
	Messages *i18n.Catalog
	Logger   bot.Logger
}

func (h *ServicesHandler) Handle(ctx context.Context, message *telego.Message) error {
	loc := localizerFor(h.Messages, message)
	if err := sendText(ctx, h.Sender, message.Chat.ID, loc.T(i18n.KeyServicesCommandReply)); err != nil && h.Logger != nil {
		h.Logger.Warn("services reply failed", "chat_id", message.Chat.ID, "error", err)
	}
	return nil
}

// localizerFor picks the message language from the sender's Telegram client.
func localizerFor(catalog *i18n.Catalog, message *telego.Message) *i18n.Localizer {
	lang := ""
	if message != nil && message.From != nil {
		lang = message.From.LanguageCode
	}
	return catalog.Localizer(lang)
}

// sendText sends a silent Markdown message with link previews disabled.
func sendText(ctx context.Context, sender Sender, chatID int64, text string) error {
	_, err := sender.SendMessage(ctx, &telego.SendMessageParams{
		ChatID:              telego.ChatID{ID: chatID},
		Text:                text,
		ParseMode:           telego.ModeMarkdown,
		DisableNotification: true,
		LinkPreviewOptions:  &telego.LinkPreviewOptions{IsDisabled: true},
	})
	return err
}
