// Package i18n serves the UI strings and the French visa photo requirements
// in Chinese, English and French.
package i18n

import (
	"maps"

	"golang.org/x/text/language"
)

type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
	French  Language = "fr"
)

const OfficialDocURL = "https://www.diplomatie.gouv.fr/IMG/pdf/sample_photos_france.pdf"

// English comes first so it is the matcher's fallback.
var (
	supported = []Language{English, Chinese, French}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Chinese, language.French})
)

type LanguageInfo struct {
	Code Language `json:"code"`
	Name string   `json:"name"`
}

func Languages() []LanguageInfo {
	return []LanguageInfo{
		{Code: Chinese, Name: "中文"},
		{Code: English, Name: "English"},
		{Code: French, Name: "Français"},
	}
}

// Match returns the first candidate that names a supported language. Each
// candidate may be a bare code ("fr") or a full Accept-Language header.
func Match(candidates ...string) Language {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(c)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			return supported[idx]
		}
	}
	return English
}

// Parse reports whether code is exactly one of the supported codes.
func Parse(code string) (Language, bool) {
	l := Language(code)
	_, ok := catalogs[l]
	return l, ok
}

// Catalog returns a copy of every string for lang.
func Catalog(lang Language) map[string]string {
	c, ok := catalogs[lang]
	if !ok {
		c = catalogs[English]
	}
	return maps.Clone(c)
}

// T falls back to English, then to the key itself.
func T(lang Language, key string) string {
	if s, ok := catalogs[lang][key]; ok {
		return s
	}
	if s, ok := catalogs[English][key]; ok {
		return s
	}
	return key
}
