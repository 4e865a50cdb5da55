package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// MessageOverrides stores per-language message template overrides.
type MessageOverrides map[string]string

// Config wraps viper and provides typed accessors.
type Config struct {
	v        *viper.Viper
	messages map[string]MessageOverrides
}

// Load reads an INI config file and prepares defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SONGLINKBOT")
	v.AutomaticEnv()

	setDefaults(v)

	c := &Config{
		v:        v,
		messages: make(map[string]MessageOverrides),
	}

	if strings.EqualFold(filepath.Ext(path), ".ini") {
		cfg, err := loadINI(v, path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		loadMessageSections(cfg, c)
		return c, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("BotAPI", "https://api.telegram.org")
	v.SetDefault("BotDebug", false)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFormat", "text")
	v.SetDefault("LogSource", false)
	v.SetDefault("GormLogLevel", "warn")
	v.SetDefault("Database", "cache.db")
	v.SetDefault("DBMaxOpenConns", 1)
	v.SetDefault("DBMaxIdleConns", 1)
	v.SetDefault("DBConnMaxLifetimeSec", 3600)
	v.SetDefault("APIBaseURL", "https://api.streaming-hell.com/v1")
	v.SetDefault("APITimeoutSec", 30)
	v.SetDefault("APIRetryMax", 0)
	v.SetDefault("ShazamBaseURL", "https://www.shazam.com")
	v.SetDefault("ShazamTimeoutSec", 10)
	v.SetDefault("PageBaseURL", "https://streaming-hell.com/")
	v.SetDefault("VKSearchBaseURL", "https://vk.com/audio")
	v.SetDefault("DefaultLanguage", "en")
	v.SetDefault("ResolveConcurrency", 1)
	v.SetDefault("CacheTTLHours", 24)
	v.SetDefault("WorkerPoolSize", 4)
	v.SetDefault("RateLimitPerSecond", 1.0)
	v.SetDefault("RateLimitBurst", 3)
}

// GetString returns a string value.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt returns an int value.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 returns a float64 value.
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool returns a bool value.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// MessageLanguages returns the languages with configured overrides.
func (c *Config) MessageLanguages() []string {
	if len(c.messages) == 0 {
		return nil
	}
	langs := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// GetMessageOverrides retrieves message overrides for a language.
// Returns the override map and true if a [messages.<lang>] section exists.
func (c *Config) GetMessageOverrides(lang string) (MessageOverrides, bool) {
	msgs, ok := c.messages[lang]
	return msgs, ok
}

func loadINI(v *viper.Viper, path string) (*ini.File, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	for _, key := range cfg.Section("").Keys() {
		v.Set(key.Name(), key.Value())
	}

	return cfg, nil
}

func loadMessageSections(cfg *ini.File, c *Config) {
	const messagePrefix = "messages."

	for _, section := range cfg.Sections() {
		sectionName := section.Name()
		if !strings.HasPrefix(sectionName, messagePrefix) {
			continue
		}

		lang := strings.TrimPrefix(sectionName, messagePrefix)
		overrides := make(MessageOverrides)
		for _, key := range section.Keys() {
			overrides[key.Name()] = key.Value()
		}
		c.messages[lang] = overrides
	}
}
