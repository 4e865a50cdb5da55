package handler

import (
	"context"
	"strings"

	"github.com/mymmrac/telego"

	"songlinkbot/bot"
)

// Router delegates incoming updates to feature handlers. Only private chats
// are served; group messages and non-message updates are ignored.
type Router struct {
	Start    MessageHandler
	Services MessageHandler
	SongLink MessageHandler
	Logger   bot.Logger
}

// HandleUpdate dispatches a single update.
func (r *Router) HandleUpdate(ctx context.Context, update telego.Update) {
	message := update.Message
	if message == nil {
		return
	}
	if message.Chat.Type != telego.ChatTypePrivate {
		return
	}

	switch commandName(message.Text) {
	case "start":
		r.dispatch(ctx, r.Start, message)
	case "services":
		r.dispatch(ctx, r.Services, message)
	default:
		// Unknown commands flow through the pipeline like any other text.
		r.dispatch(ctx, r.SongLink, message)
	}
}

func (r *Router) dispatch(ctx context.Context, handler MessageHandler, message *telego.Message) {
	if handler == nil {
		return
	}
	if err := handler.Handle(ctx, message); err != nil {
		if r.Logger != nil {
			r.Logger.Error("message handling failed", "chat_id", message.Chat.ID, "message_id", message.MessageID, "error", err)
		}
	}
}

// commandName extracts the bot command from a message text, stripping the
// @BotName suffix. It returns "" for non-command text.
func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd)
}
