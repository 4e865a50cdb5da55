package handler

import (
	"context"
	"testing"

	"github.com/mymmrac/telego"
)

type recordingHandler struct {
	calls int
	last  *telego.Message
	err   error
}

func (h *recordingHandler) Handle(ctx context.Context, message *telego.Message) error {
	h.calls++
	h.last = message
	return h.err
}

// errorCapturingLogger records error-level messages, discarding the rest.
type errorCapturingLogger struct {
	testLogger
	errors []string
}

func (l *errorCapturingLogger) Error(msg string, args ...any) {
	l.errors = append(l.errors, msg)
}

func TestCommandName(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "/start", want: "start"},
		{text: "/start@SongLinkBot", want: "start"},
		{text: "/SERVICES extra args", want: "services"},
		{text: "https://open.spotify.com/track/x", want: ""},
		{text: "", want: ""},
		{text: "plain text", want: ""},
	}

	for _, tt := range tests {
		if got := commandName(tt.text); got != tt.want {
			t.Fatalf("commandName(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestRouterDispatchesCommands(t *testing.T) {
	start := &recordingHandler{}
	services := &recordingHandler{}
	songLink := &recordingHandler{}
	router := &Router{Start: start, Services: services, SongLink: songLink, Logger: testLogger{}}

	router.HandleUpdate(context.Background(), telego.Update{Message: privateMessage("/start")})
	router.HandleUpdate(context.Background(), telego.Update{Message: privateMessage("/services@SongLinkBot")})
	router.HandleUpdate(context.Background(), telego.Update{Message: privateMessage("https://open.spotify.com/track/x")})

	if start.calls != 1 || services.calls != 1 || songLink.calls != 1 {
		t.Fatalf("unexpected dispatch counts: start=%d services=%d songlink=%d",
			start.calls, services.calls, songLink.calls)
	}
}

func TestRouterIgnoresGroups(t *testing.T) {
	songLink := &recordingHandler{}
	router := &Router{SongLink: songLink, Logger: testLogger{}}

	group := privateMessage("https://open.spotify.com/track/x")
	group.Chat.Type = telego.ChatTypeGroup
	router.HandleUpdate(context.Background(), telego.Update{Message: group})
	router.HandleUpdate(context.Background(), telego.Update{})

	if songLink.calls != 0 {
		t.Fatalf("group or empty updates must not reach the pipeline, got %d", songLink.calls)
	}
}

func TestRouterUnknownCommandFlowsToPipeline(t *testing.T) {
	songLink := &recordingHandler{}
	router := &Router{SongLink: songLink, Logger: testLogger{}}

	router.HandleUpdate(context.Background(), telego.Update{Message: privateMessage("/unknown")})

	if songLink.calls != 1 {
		t.Fatalf("unknown commands must flow through the pipeline, got %d calls", songLink.calls)
	}
}

func TestRouterLogsHandlerError(t *testing.T) {
	logger := &errorCapturingLogger{}
	songLink := &recordingHandler{err: ErrNoTextInMessage}
	router := &Router{SongLink: songLink, Logger: logger}

	message := privateMessage("")
	router.HandleUpdate(context.Background(), telego.Update{Message: message})

	if songLink.calls != 1 {
		t.Fatalf("expected pipeline dispatch, got %d calls", songLink.calls)
	}
	if len(logger.errors) != 1 {
		t.Fatalf("expected handler error to be logged at error level, got %v", logger.errors)
	}
}
