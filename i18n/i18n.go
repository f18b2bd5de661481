package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// Language represents supported languages
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

var supported = []Language{English, French}

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

// Translator provides translation functionality
type Translator struct {
	language     Language
	translations map[Language]map[string]string
	mu           sync.RWMutex
}

var (
	defaultTranslator *Translator
	once              sync.Once
)

// New returns a translator fixed to lang, independent of the global one.
func New(lang Language) *Translator {
	t := &Translator{
		language:     lang,
		translations: make(map[Language]map[string]string),
	}
	t.loadTranslations()
	return t
}

// GetTranslator returns the singleton translator instance
func GetTranslator() *Translator {
	once.Do(func() {
		defaultTranslator = New(English)
	})
	return defaultTranslator
}

// SetLanguage sets the current language
func (t *Translator) SetLanguage(lang Language) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.language = lang
}

// GetLanguage returns the current language
func (t *Translator) GetLanguage() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.language
}

// T translates a key with optional parameters. Keys missing from the
// current language fall back to English, then to the key itself.
func (t *Translator) T(key string, params ...interface{}) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	text, ok := t.translations[t.language][key]
	if !ok {
		text, ok = t.translations[English][key]
	}
	if !ok {
		return key
	}

	if len(params) > 0 {
		return fmt.Sprintf(text, params...)
	}
	return text
}

// T is a convenience function for translation
func T(key string, params ...interface{}) string {
	return GetTranslator().T(key, params...)
}

// SetLanguage is a convenience function to set language
func SetLanguage(lang Language) {
	GetTranslator().SetLanguage(lang)
}

// GetLanguage is a convenience function to get current language
func GetLanguage() Language {
	return GetTranslator().GetLanguage()
}

// Supported lists the languages with a translation table.
func Supported() []Language {
	return append([]Language(nil), supported...)
}

func (t *Translator) loadTranslations() {
	t.translations[English] = englishTranslations
	t.translations[French] = frenchTranslations
}
