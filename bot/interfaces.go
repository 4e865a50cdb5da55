package bot

import "context"

// Logger is the minimal logging abstraction used across modules.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Config provides typed access to configuration values.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetFloat64(key string) float64
}

// SongResolver resolves a canonical streaming URL to a ResolvedSong.
// Implementations return an error satisfying errors.Is(err, odesli.ErrNotFound)
// when the service has no data for the URL.
type SongResolver interface {
	Resolve(ctx context.Context, url string) (*ResolvedSong, error)
}

// ResolutionCache stores successful resolutions keyed by canonical URL.
// Find returns (nil, nil) on a cache miss.
type ResolutionCache interface {
	Find(ctx context.Context, url string) (*ResolvedSong, error)
	Save(ctx context.Context, url string, song *ResolvedSong) error
}

// WorkerPool limits concurrency for background tasks.
type WorkerPool interface {
	Submit(task func()) error
	Shutdown(ctx context.Context) error
	Size() int
}
