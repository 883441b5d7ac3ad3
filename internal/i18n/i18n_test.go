package i18n

import (
	"errors"
	"testing"
)

func TestLanguagesCount(t *testing.T) {
	if got := len(Languages()); got != 17 {
		t.Fatalf("expected 17 languages, got %d", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		code    string
		want    Language
		wantErr bool
	}{
		{"en", English, false},
		{"rw", Kinyarwanda, false},
		{"id", Indonesian, false},
		{"xx", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Parse(tt.code)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedLanguage) {
					t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestNextPrevWrap(t *testing.T) {
	if English.Prev() != Indonesian {
		t.Errorf("expected en.Prev() = id, got %q", English.Prev())
	}
	if Indonesian.Next() != English {
		t.Errorf("expected id.Next() = en, got %q", Indonesian.Next())
	}
	if Language("zz").Next() != Default {
		t.Error("unknown language should step to default")
	}
}

func TestTextFallback(t *testing.T) {
	txt := Text{English: "Rome", French: "Rome antique"}
	if got := txt.Get(French); got != "Rome antique" {
		t.Errorf("fr: got %q", got)
	}
	if got := txt.Get(Japanese); got != "Rome" {
		t.Errorf("ja should fall back to en, got %q", got)
	}

	onlyFr := Text{French: "Bonjour"}
	if got := onlyFr.Get(German); got != "Bonjour" {
		t.Errorf("expected any non-empty fallback, got %q", got)
	}
}

func TestUIStringsHaveEnglish(t *testing.T) {
	for key, txt := range ui {
		if txt[English] == "" {
			t.Errorf("key %q has no English text", key)
		}
	}
	if got := T(Swahili, StartChat); got != ui[StartChat][English] {
		t.Errorf("expected English fallback, got %q", got)
	}
}
