package i18n

import (
	"sort"
	"testing"
)

// TestCatalogCompleteness verifies that all language profiles contain all message keys.
func TestCatalogCompleteness(t *testing.T) {
	catalog := NewCatalog(DefaultLanguage)

	reference := englishMessages
	var referenceKeys []string
	for key := range reference {
		referenceKeys = append(referenceKeys, key)
	}
	sort.Strings(referenceKeys)

	for _, lang := range catalog.SupportedLanguages() {
		t.Run("Language_"+lang, func(t *testing.T) {
			loc := catalog.Localizer(lang)
			for _, key := range referenceKeys {
				if got := loc.T(key); got == key {
					t.Errorf("language %s missing key %s", lang, key)
				}
			}
		})
	}
}

func TestLocalizerFallbacks(t *testing.T) {
	catalog := NewCatalog("en")

	if lang := catalog.Localizer("").Language(); lang != "en" {
		t.Fatalf("expected empty language to resolve to en, got %s", lang)
	}
	if lang := catalog.Localizer("de").Language(); lang != "en" {
		t.Fatalf("expected unknown language to resolve to en, got %s", lang)
	}
	if lang := catalog.Localizer("ru").Language(); lang != "ru" {
		t.Fatalf("expected ru to resolve to ru, got %s", lang)
	}

	loc := catalog.Localizer("en")
	if got := loc.T("SOME_UNKNOWN_KEY"); got != "SOME_UNKNOWN_KEY" {
		t.Fatalf("expected unknown key to fall back to itself, got %q", got)
	}
}

func TestCatalogOverride(t *testing.T) {
	catalog := NewCatalog("en")
	catalog.Override("en", map[string]string{KeyNoDataByLink: "nothing here"})

	if got := catalog.Localizer("en").T(KeyNoDataByLink); got != "nothing here" {
		t.Fatalf("expected override to apply, got %q", got)
	}

	// Other keys keep their built-in values.
	if got := catalog.Localizer("en").T(KeyListen); got != "Where to listen:\n" {
		t.Fatalf("unexpected LISTEN template: %q", got)
	}

	// Overriding an unknown language creates a sparse profile with fallback.
	catalog.Override("de", map[string]string{KeyListen: "Anhören:\n"})
	loc := catalog.Localizer("de")
	if got := loc.T(KeyListen); got != "Anhören:\n" {
		t.Fatalf("unexpected de LISTEN template: %q", got)
	}
	if got := loc.T(KeyBuy); got != "Where to buy:\n" {
		t.Fatalf("expected de BUY to fall back to English, got %q", got)
	}
}
