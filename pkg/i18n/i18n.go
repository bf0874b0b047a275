// Package i18n localizes the dashboard's user-facing labels.
// Unknown languages fall back to English; translations are compiled in.
package i18n

import "fmt"

// Fallback language used when a key or language is not found.
const DefaultLang = "en"

// Languages lists the supported language codes
var Languages = []string{"en", "hi"}

// Supported reports whether lang has its own translations
func Supported(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Translate returns a localized string for key in lang.
// Extra args are passed to fmt.Sprintf if the translation contains format verbs.
// Falls back to English if lang is unsupported or key is missing.
func Translate(key, lang string, args ...interface{}) string {
	if lang == "" {
		lang = DefaultLang
	}

	langMap, ok := translations[key]
	if !ok {
		// Key entirely unknown: return the key itself so nothing is silently swallowed.
		return key
	}

	tmpl, ok := langMap[lang]
	if !ok {
		tmpl, ok = langMap[DefaultLang]
		if !ok {
			return key
		}
	}

	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// PhaseKey returns the translation key of loader phase i
func PhaseKey(i int) string {
	return fmt.Sprintf("dashboard.phase.%d", i)
}
