package i18n

import (
	"errors"
	"fmt"
)

// Language is a supported locale tag.
type Language string

const (
	English     Language = "en"
	Kinyarwanda Language = "rw"
	French      Language = "fr"
	Swahili     Language = "sw"
	Spanish     Language = "es"
	Arabic      Language = "ar"
	Chinese     Language = "zh"
	Hindi       Language = "hi"
	Portuguese  Language = "pt"
	Bengali     Language = "bn"
	Russian     Language = "ru"
	Japanese    Language = "ja"
	German      Language = "de"
	Korean      Language = "ko"
	Turkish     Language = "tr"
	Italian     Language = "it"
	Indonesian  Language = "id"
)

// Default is the language used when nothing valid has been persisted.
const Default = English

// ErrUnsupportedLanguage is returned for codes outside the supported set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Option pairs a language code with its display name.
type Option struct {
	Code Language `json:"code"`
	Name string   `json:"name"`
}

var options = []Option{
	{English, "English"},
	{Kinyarwanda, "Kinyarwanda"},
	{French, "Français"},
	{Swahili, "Kiswahili"},
	{Spanish, "Español"},
	{Arabic, "العربية"},
	{Chinese, "中文"},
	{Hindi, "हिन्दी"},
	{Portuguese, "Português"},
	{Bengali, "বাংলা"},
	{Russian, "Русский"},
	{Japanese, "日本語"},
	{German, "Deutsch"},
	{Korean, "한국어"},
	{Turkish, "Türkçe"},
	{Italian, "Italiano"},
	{Indonesian, "Bahasa Indonesia"},
}

// Languages returns the supported languages in display order.
func Languages() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	for _, o := range options {
		if o.Code == l {
			return true
		}
	}
	return false
}

// Name returns the display name, or the raw code if unsupported.
func (l Language) Name() string {
	for _, o := range options {
		if o.Code == l {
			return o.Name
		}
	}
	return string(l)
}

// Parse validates a language code.
func Parse(code string) (Language, error) {
	l := Language(code)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return l, nil
}

// Next returns the language after l in display order, wrapping around.
func (l Language) Next() Language {
	for i, o := range options {
		if o.Code == l {
			return options[(i+1)%len(options)].Code
		}
	}
	return Default
}

// Prev returns the language before l in display order, wrapping around.
func (l Language) Prev() Language {
	for i, o := range options {
		if o.Code == l {
			return options[(i-1+len(options))%len(options)].Code
		}
	}
	return Default
}
