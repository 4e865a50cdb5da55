package config

import (
	"os"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "test_config_*.ini")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("write config: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoadINI(t *testing.T) {
	path := writeTempConfig(t, `BOT_TOKEN = test_token
APIBaseURL = https://api.example.com/v1
APITimeoutSec = 5
BotDebug = true
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if conf.GetString("BOT_TOKEN") != "test_token" {
		t.Fatalf("expected BOT_TOKEN=test_token, got %q", conf.GetString("BOT_TOKEN"))
	}
	if conf.GetString("APIBaseURL") != "https://api.example.com/v1" {
		t.Fatalf("unexpected APIBaseURL: %q", conf.GetString("APIBaseURL"))
	}
	if conf.GetInt("APITimeoutSec") != 5 {
		t.Fatalf("expected APITimeoutSec=5, got %d", conf.GetInt("APITimeoutSec"))
	}
	if !conf.GetBool("BotDebug") {
		t.Fatalf("expected BotDebug=true")
	}
}

func TestDefaults(t *testing.T) {
	path := writeTempConfig(t, "BOT_TOKEN = test_token\n")

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if got := conf.GetString("APIBaseURL"); got != "https://api.streaming-hell.com/v1" {
		t.Fatalf("unexpected default APIBaseURL: %q", got)
	}
	if got := conf.GetInt("ResolveConcurrency"); got != 1 {
		t.Fatalf("expected default ResolveConcurrency=1, got %d", got)
	}
	if got := conf.GetString("DefaultLanguage"); got != "en" {
		t.Fatalf("expected default DefaultLanguage=en, got %q", got)
	}
	if got := conf.GetFloat64("RateLimitPerSecond"); got != 1.0 {
		t.Fatalf("expected default RateLimitPerSecond=1.0, got %v", got)
	}
}

func TestMessageSections(t *testing.T) {
	path := writeTempConfig(t, `BOT_TOKEN = test_token

[messages.en]
NO_DATA_BY_LINK = Custom not found text

[messages.ru]
LISTEN = Слушать тут:
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	langs := conf.MessageLanguages()
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "ru" {
		t.Fatalf("unexpected languages: %v", langs)
	}

	en, ok := conf.GetMessageOverrides("en")
	if !ok {
		t.Fatalf("expected en overrides")
	}
	if en["NO_DATA_BY_LINK"] != "Custom not found text" {
		t.Fatalf("unexpected override: %q", en["NO_DATA_BY_LINK"])
	}

	if _, ok := conf.GetMessageOverrides("de"); ok {
		t.Fatalf("expected no de overrides")
	}
}
