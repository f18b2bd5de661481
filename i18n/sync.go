package i18n

import (
	"golang.org/x/text/language"

	"hrslides/config"
)

// SyncLanguageFromConfig synchronizes language setting from application config
func SyncLanguageFromConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	SetLanguage(ParseLanguage(cfg.Language))
}

// ParseLanguage matches a BCP 47 tag such as "fr-FR", "fr_CA" or "en" to a
// supported language. Unknown or empty tags give English.
func ParseLanguage(tag string) Language {
	if tag == "" {
		return English
	}
	t, err := language.Parse(tag)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return English
	}
	return supported[idx]
}

// Locale returns the xml:lang value written into slide text runs.
func (l Language) Locale() string {
	switch l {
	case French:
		return "fr-FR"
	default:
		return "en-US"
	}
}
