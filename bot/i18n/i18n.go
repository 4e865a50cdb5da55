// Package i18n provides the localized message templates for user-facing replies.
package i18n

import "fmt"

// DefaultLanguage is the fallback language when no translation is available.
const DefaultLanguage = "en"

// Fixed template keys used by the handlers.
const (
	KeyStartCommandReply    = "START_COMMAND_REPLY"
	KeyServicesCommandReply = "SERVICES_COMMAND_REPLY"
	KeyListen               = "LISTEN"
	KeyBuy                  = "BUY"
	KeyNoDataByLink         = "NO_DATA_BY_LINK"
	KeyNoMusicLinks         = "NO_MUSIC_LINKS_IN_MESSAGE"
)

// Catalog holds message templates per language plus configured overrides.
type Catalog struct {
	defaultLanguage string
	messages        map[string]map[string]string
}

// NewCatalog creates a catalog seeded with the built-in languages.
func NewCatalog(defaultLanguage string) *Catalog {
	if defaultLanguage == "" {
		defaultLanguage = DefaultLanguage
	}
	messages := map[string]map[string]string{
		"en": cloneMessages(englishMessages),
		"ru": cloneMessages(russianMessages),
	}
	if _, ok := messages[defaultLanguage]; !ok {
		defaultLanguage = DefaultLanguage
	}
	return &Catalog{
		defaultLanguage: defaultLanguage,
		messages:        messages,
	}
}

// Override replaces templates for a language. Unknown languages get a new
// profile backed by the default-language fallback in T.
func (c *Catalog) Override(lang string, overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}
	profile, ok := c.messages[lang]
	if !ok {
		profile = make(map[string]string, len(overrides))
		c.messages[lang] = profile
	}
	for key, value := range overrides {
		profile[key] = value
	}
}

// Localizer returns a localizer for the given language. An empty or unknown
// language resolves against the catalog's default language.
func (c *Catalog) Localizer(lang string) *Localizer {
	if lang == "" {
		lang = c.defaultLanguage
	}
	if _, ok := c.messages[lang]; !ok {
		lang = c.defaultLanguage
	}
	return &Localizer{language: lang, catalog: c}
}

// SupportedLanguages returns the languages present in the catalog.
func (c *Catalog) SupportedLanguages() []string {
	langs := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		langs = append(langs, lang)
	}
	return langs
}

// Localizer resolves message templates for a single language.
type Localizer struct {
	language string
	catalog  *Catalog
}

// Language returns the resolved language code.
func (l *Localizer) Language() string {
	return l.language
}

// T translates a message key, with optional parameters for formatting.
func (l *Localizer) T(key string, args ...any) string {
	if message, ok := l.catalog.messages[l.language][key]; ok {
		return format(message, args...)
	}

	// Fallback to the default language if key not found.
	if l.language != l.catalog.defaultLanguage {
		if message, ok := l.catalog.messages[l.catalog.defaultLanguage][key]; ok {
			return format(message, args...)
		}
	}

	// Ultimate fallback: return the key itself.
	return key
}

func format(message string, args ...any) string {
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}

func cloneMessages(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
