// Package appstate is the persisted two-screen state machine: the cover
// screen and the chat screen, with the selected era and UI language.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/prefs"
)

// Screen is a top-level application screen.
type Screen string

const (
	Cover Screen = "cover"
	Chat  Screen = "chat"
)

// Valid reports whether s is a known screen.
func (s Screen) Valid() bool {
	return s == Cover || s == Chat
}

// ErrUnknownEra is returned when selecting an era the catalog does not hold.
var ErrUnknownEra = errors.New("appstate: unknown era")

// Snapshot is a consistent view of the machine's state.
type Snapshot struct {
	Screen   Screen        `json:"screen"`
	Language i18n.Language `json:"language"`
	Era      *catalog.Era  `json:"era"`
}

// Machine holds the current screen, language and era selection and persists
// every change. Safe for concurrent use.
type Machine struct {
	mu      sync.RWMutex
	store   prefs.Store
	catalog *catalog.Catalog

	screen Screen
	lang   i18n.Language
	era    *catalog.Era
}

// Load restores the machine from store. Missing or invalid values fall back
// to the cover screen, the default language and no era.
func Load(ctx context.Context, store prefs.Store, cat *catalog.Catalog) *Machine {
	m := &Machine{store: store, catalog: cat, screen: Cover, lang: i18n.Default}

	if s := Screen(prefs.Get(ctx, store, prefs.KeyAppState, string(Cover))); s.Valid() {
		m.screen = s
	}
	if lang, err := i18n.Parse(prefs.Get(ctx, store, prefs.KeyAppLang, string(i18n.Default))); err == nil {
		m.lang = lang
	}
	if id := prefs.Get[*string](ctx, store, prefs.KeySelectedEra, nil); id != nil {
		if e, ok := cat.Era(*id); ok {
			m.era = &e
		}
	}
	return m
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{Screen: m.screen, Language: m.lang, Era: m.eraCopy()}
}

// Screen returns the current screen.
func (m *Machine) Screen() Screen {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.screen
}

// Language returns the current UI language.
func (m *Machine) Language() i18n.Language {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lang
}

// Era returns the selected era, or nil.
func (m *Machine) Era() *catalog.Era {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.eraCopy()
}

func (m *Machine) eraCopy() *catalog.Era {
	if m.era == nil {
		return nil
	}
	e := *m.era
	return &e
}

// StartChat moves to the chat screen with no era selected.
func (m *Machine) StartChat(ctx context.Context) error {
	return m.transition(ctx, Chat, nil)
}

// SelectEra moves to the chat screen with the era identified by id.
func (m *Machine) SelectEra(ctx context.Context, id string) error {
	e, ok := m.catalog.Era(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEra, id)
	}
	return m.transition(ctx, Chat, &e)
}

// GoHome returns to the cover screen and clears the era.
func (m *Machine) GoHome(ctx context.Context) error {
	return m.transition(ctx, Cover, nil)
}

// SetLanguage changes the UI language.
func (m *Machine) SetLanguage(ctx context.Context, lang i18n.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", i18n.ErrUnsupportedLanguage, lang)
	}
	m.mu.Lock()
	m.lang = lang
	m.mu.Unlock()

	return prefs.Set(ctx, m.store, prefs.KeyAppLang, string(lang))
}

// transition updates the in-memory state first, so a failing store never
// blocks navigation; the persistence error is returned for logging.
func (m *Machine) transition(ctx context.Context, to Screen, era *catalog.Era) error {
	m.mu.Lock()
	m.screen = to
	m.era = era
	m.mu.Unlock()

	var eraID *string
	if era != nil {
		eraID = &era.ID
	}
	return errors.Join(
		prefs.Set(ctx, m.store, prefs.KeyAppState, string(to)),
		prefs.Set(ctx, m.store, prefs.KeySelectedEra, eraID),
	)
}
