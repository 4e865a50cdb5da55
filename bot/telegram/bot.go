// Package telegram wraps the telego client with polling, rate limiting
// and retry helpers.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mymmrac/telego"

	botpkg "songlinkbot/bot"
	"songlinkbot/bot/config"
	"songlinkbot/bot/worker"
)

// UpdateHandler consumes a single Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update telego.Update)
}

// Bot wraps telego with application configuration.
type Bot struct {
	client *telego.Bot
	config *config.Config
	logger botpkg.Logger
}

// New creates a new Telegram bot client.
func New(cfg *config.Config, logger botpkg.Logger) (*Bot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger required")
	}

	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	client := &http.Client{
		Timeout:   2 * time.Minute,
		Transport: transport,
	}

	options := []telego.BotOption{
		telego.WithHTTPClient(client),
		telego.WithLogger(telegoLogger{logger: logger}),
	}

	if cfg.GetString("BotAPI") != "" {
		options = append(options, telego.WithAPIServer(cfg.GetString("BotAPI")))
	}
	if cfg.GetBool("BotDebug") {
		options = append(options, telego.WithDebugMode())
	}

	tg, err := telego.NewBot(cfg.GetString("BOT_TOKEN"), options...)
	if err != nil {
		return nil, err
	}

	return &Bot{client: tg, config: cfg, logger: logger}, nil
}

// Start polls updates and dispatches each one through the worker pool.
// It blocks until the context is canceled or polling fails.
func (b *Bot) Start(ctx context.Context, pool *worker.Pool, handler UpdateHandler) error {
	if handler == nil {
		return fmt.Errorf("update handler required")
	}

	updates, err := b.client.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout:        30,
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		return fmt.Errorf("start long polling: %w", err)
	}

	for update := range updates {
		update := update
		submitErr := pool.Submit(func() {
			handler.HandleUpdate(ctx, update)
		})
		if submitErr != nil {
			b.logger.Warn("update dropped", "error", submitErr, "update_id", update.UpdateID)
		}
	}

	return ctx.Err()
}

// Client exposes the underlying bot client.
func (b *Bot) Client() *telego.Bot {
	return b.client
}

// GetMe retrieves bot info.
func (b *Bot) GetMe(ctx context.Context) (*telego.User, error) {
	return b.client.GetMe(ctx)
}

// SetCommands registers the bot command menu.
func (b *Bot) SetCommands(ctx context.Context, commands []telego.BotCommand) error {
	return b.client.SetMyCommands(ctx, &telego.SetMyCommandsParams{Commands: commands})
}

type telegoLogger struct {
	logger botpkg.Logger
}

func (l telegoLogger) Debugf(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l telegoLogger) Errorf(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Error(fmt.Sprintf(format, args...))
}
