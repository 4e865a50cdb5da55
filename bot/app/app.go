// Package app wires the application dependencies.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	gormlogger "gorm.io/gorm/logger"

	"songlinkbot/bot/config"
	"songlinkbot/bot/db"
	"songlinkbot/bot/i18n"
	"songlinkbot/bot/links"
	logpkg "songlinkbot/bot/logger"
	"songlinkbot/bot/odesli"
	"songlinkbot/bot/shazam"
	"songlinkbot/bot/telegram"
	"songlinkbot/bot/telegram/handler"
	"songlinkbot/bot/worker"
)

// App wires all application dependencies.
type App struct {
	Config   *config.Config
	Logger   *logpkg.Logger
	DB       *db.Repository
	Pool     *worker.Pool
	Telegram *telegram.Bot
	Build    BuildInfo
}

// BuildInfo provides build-time metadata.
type BuildInfo struct {
	RuntimeVer string
	BinVersion string
	CommitSHA  string
	BuildTime  string
	BuildArch  string
}

// New builds the application container.
func New(ctx context.Context, configPath string, build BuildInfo) (*App, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logpkg.New(conf.GetString("LogLevel"), conf.GetString("LogFormat"), conf.GetBool("LogSource"))
	if err != nil {
		return nil, err
	}

	gormLogger := logpkg.NewGormLogger(log.Slog(), mapGormLevel(conf.GetString("GormLogLevel")))
	databasePath := strings.TrimSpace(conf.GetString("Database"))
	if databasePath == "" {
		databasePath = "cache.db"
	}

	repo, err := db.NewSQLiteRepository(databasePath, gormLogger)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	poolMaxOpen := conf.GetInt("DBMaxOpenConns")
	poolMaxIdle := conf.GetInt("DBMaxIdleConns")
	poolMaxLifetimeSec := conf.GetInt("DBConnMaxLifetimeSec")
	if err := repo.ConfigurePool(poolMaxOpen, poolMaxIdle, time.Duration(poolMaxLifetimeSec)*time.Second); err != nil {
		return nil, fmt.Errorf("configure db pool: %w", err)
	}
	repo.SetTTL(time.Duration(conf.GetInt("CacheTTLHours")) * time.Hour)

	pool := worker.New(conf.GetInt("WorkerPoolSize"))

	tele, err := telegram.New(conf, log)
	if err != nil {
		return nil, fmt.Errorf("init telegram: %w", err)
	}

	return &App{
		Config:   conf,
		Logger:   log,
		DB:       repo,
		Pool:     pool,
		Telegram: tele,
		Build:    build,
	}, nil
}

// Start builds the handlers and launches update polling.
func (a *App) Start(ctx context.Context) error {
	meCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	me, err := a.Telegram.GetMe(meCtx)
	if err != nil {
		return fmt.Errorf("getMe: %w", err)
	}
	a.Logger.Info("bot authorized", "username", me.Username, "version", a.Build.BinVersion)

	rateLimitPerSecond := a.Config.GetFloat64("RateLimitPerSecond")
	if rateLimitPerSecond <= 0 {
		rateLimitPerSecond = 1.0
	}
	rateLimitBurst := a.Config.GetInt("RateLimitBurst")
	if rateLimitBurst <= 0 {
		rateLimitBurst = 3
	}
	rateLimiter := telegram.NewRateLimiter(rateLimitPerSecond, rateLimitBurst)
	rateLimiter.SetLogger(a.Logger)

	shazamClient := shazam.New(
		a.Config.GetString("ShazamBaseURL"),
		time.Duration(a.Config.GetInt("ShazamTimeoutSec"))*time.Second,
		a.Logger,
	)

	resolver := odesli.New(odesli.Options{
		BaseURL:  a.Config.GetString("APIBaseURL"),
		Timeout:  time.Duration(a.Config.GetInt("APITimeoutSec")) * time.Second,
		RetryMax: a.Config.GetInt("APIRetryMax"),
		Logger:   a.Logger,
	})

	catalog := i18n.NewCatalog(a.Config.GetString("DefaultLanguage"))
	for _, lang := range a.Config.MessageLanguages() {
		if overrides, ok := a.Config.GetMessageOverrides(lang); ok {
			catalog.Override(lang, overrides)
		}
	}

	sender := &handler.RetrySender{Bot: a.Telegram.Client(), Limiter: rateLimiter}
	composer := &handler.ReplyComposer{
		PageBaseURL:     a.Config.GetString("PageBaseURL"),
		VKSearchBaseURL: a.Config.GetString("VKSearchBaseURL"),
	}

	pipeline := &handler.MessagePipeline{
		Sender:             sender,
		Resolver:           resolver,
		Cache:              a.DB,
		Normalizer:         &links.Normalizer{Shazam: shazamClient, Logger: a.Logger},
		Composer:           composer,
		Messages:           catalog,
		Logger:             a.Logger,
		ResolveConcurrency: a.Config.GetInt("ResolveConcurrency"),
	}

	router := &handler.Router{
		Start:    &handler.StartHandler{Sender: sender, Messages: catalog, Logger: a.Logger},
		Services: &handler.ServicesHandler{Sender: sender, Messages: catalog, Logger: a.Logger},
		SongLink: pipeline,
		Logger:   a.Logger,
	}

	commands := []telego.BotCommand{
		{Command: "start", Description: "How to use the bot"},
		{Command: "services", Description: "List supported streaming services"},
	}
	if err := a.Telegram.SetCommands(ctx, commands); err != nil {
		a.Logger.Warn("set commands failed", "error", err)
	}

	go func() {
		if err := a.Telegram.Start(ctx, a.Pool, router); err != nil && ctx.Err() == nil {
			a.Logger.Error("polling stopped", "error", err)
		}
	}()

	return nil
}

// Shutdown releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	if a.Pool != nil {
		if err := a.Pool.Shutdown(ctx); err != nil {
			a.Pool.StopNow()
			if firstErr == nil {
				firstErr = fmt.Errorf("shutdown worker pool: %w", err)
			}
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			if a.Logger != nil {
				a.Logger.Error("failed to close database", "error", err)
			}
			if firstErr == nil {
				firstErr = fmt.Errorf("close database: %w", err)
			}
		}
	}

	if a.Logger != nil {
		if err := a.Logger.Close(); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("close logger: %w", err)
			}
		}
	}

	return firstErr
}

func mapGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent", "off":
		return gormlogger.Silent
	case "info", "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "warn", "warning":
		fallthrough
	default:
		return gormlogger.Warn
	}
}
