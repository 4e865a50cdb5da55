package handler

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mymmrac/telego"

	botpkg "songlinkbot/bot"
	"songlinkbot/bot/i18n"
	"songlinkbot/bot/links"
)

// testLogger implements botpkg.Logger and discards everything.
type testLogger struct{}

func (testLogger) Debug(msg string, args ...any)   {}
func (testLogger) Info(msg string, args ...any)    {}
func (testLogger) Warn(msg string, args ...any)    {}
func (testLogger) Error(msg string, args ...any)   {}
func (l testLogger) With(args ...any) botpkg.Logger { return l }

// sentItem records one outgoing Telegram call.
type sentItem struct {
	kind     string // "message", "photo" or "delete"
	chatID   int64
	text     string // message text or photo caption
	photoURL string
}

// fakeSender implements Sender and records calls in order.
type fakeSender struct {
	mu         sync.Mutex
	items      []sentItem
	photoErr   error
	messageErr error
	deleteErr  error
}

func (s *fakeSender) SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.messageErr != nil {
		return nil, s.messageErr
	}
	s.items = append(s.items, sentItem{kind: "message", chatID: params.ChatID.ID, text: params.Text})
	return &telego.Message{MessageID: len(s.items)}, nil
}

func (s *fakeSender) SendPhoto(ctx context.Context, params *telego.SendPhotoParams) (*telego.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.photoErr != nil {
		return nil, s.photoErr
	}
	s.items = append(s.items, sentItem{kind: "photo", chatID: params.ChatID.ID, text: params.Caption, photoURL: params.Photo.URL})
	return &telego.Message{MessageID: len(s.items)}, nil
}

func (s *fakeSender) DeleteMessage(ctx context.Context, params *telego.DeleteMessageParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.items = append(s.items, sentItem{kind: "delete", chatID: params.ChatID.ID})
	return nil
}

func (s *fakeSender) sent() []sentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentItem(nil), s.items...)
}

func (s *fakeSender) deletes() int {
	count := 0
	for _, item := range s.sent() {
		if item.kind == "delete" {
			count++
		}
	}
	return count
}

var errNoData = errors.New("no data for url")

// fakeResolver implements botpkg.SongResolver against a fixed map.
type fakeResolver struct {
	mu    sync.Mutex
	calls []string
	songs map[string]*botpkg.ResolvedSong
}

func (r *fakeResolver) Resolve(ctx context.Context, url string) (*botpkg.ResolvedSong, error) {
	r.mu.Lock()
	r.calls = append(r.calls, url)
	r.mu.Unlock()
	if song, ok := r.songs[url]; ok {
		return song, nil
	}
	return nil, errNoData
}

func (r *fakeResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// fakeCache implements botpkg.ResolutionCache in memory.
type fakeCache struct {
	mu    sync.Mutex
	store map[string]*botpkg.ResolvedSong
	saves int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]*botpkg.ResolvedSong)}
}

func (c *fakeCache) Find(ctx context.Context, url string) (*botpkg.ResolvedSong, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[url], nil
}

func (c *fakeCache) Save(ctx context.Context, url string, song *botpkg.ResolvedSong) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[url] = song
	c.saves++
	return nil
}

// fakeShare treats shazam.example track links as share links and maps them
// through a fixed table. Unmapped share links report no streaming URL.
type fakeShare struct {
	streaming map[string]string
}

func (s *fakeShare) IsShareLink(url string) bool {
	return strings.HasPrefix(url, "https://www.shazam.example/track/")
}

func (s *fakeShare) FindStreamingURL(ctx context.Context, url string) (string, error) {
	return s.streaming[url], nil
}

func testSong(id, thumb string) *botpkg.ResolvedSong {
	return &botpkg.ResolvedSong{
		EntityUniqueID: id,
		PageURL:        "https://song.link/s/" + id,
		EntitiesByUniqueID: map[string]botpkg.SongEntity{
			id: {Title: "Title " + id, ArtistName: "Artist", ThumbnailURL: thumb},
		},
		LinksByPlatform: map[string]botpkg.PlatformLink{
			"spotify": {URL: "https://open.spotify.example/" + id},
			"itunes":  {URL: "https://itunes.example/" + id},
		},
	}
}

func newTestPipeline(sender *fakeSender, resolver *fakeResolver, cache *fakeCache, share links.ShareResolver) *MessagePipeline {
	logger := testLogger{}
	var cacheIface botpkg.ResolutionCache
	if cache != nil {
		cacheIface = cache
	}
	return &MessagePipeline{
		Sender:     sender,
		Resolver:   resolver,
		Cache:      cacheIface,
		Normalizer: &links.Normalizer{Shazam: share, Logger: logger},
		Composer: &ReplyComposer{
			PageBaseURL:     "https://streaming-hell.example/",
			VKSearchBaseURL: "https://vk.example/audio",
		},
		Messages:           i18n.NewCatalog("en"),
		Logger:             logger,
		ResolveConcurrency: 1,
	}
}

func privateMessage(text string) *telego.Message {
	return &telego.Message{
		MessageID: 7,
		Text:      text,
		Chat:      telego.Chat{ID: 99, Type: telego.ChatTypePrivate},
		From:      &telego.User{ID: 1, LanguageCode: "en"},
	}
}
