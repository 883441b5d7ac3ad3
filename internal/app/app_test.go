package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/llm"
	"github.com/kellen/chronos/internal/prefs"
	"github.com/kellen/chronos/internal/router"
)

func newTestModel(t *testing.T, p prefs.Store) AppModel {
	t.Helper()
	cat := catalog.Default()
	return newAppModel(Options{
		Machine:      appstate.Load(context.Background(), p, cat),
		Catalog:      cat,
		Opener:       llm.NewMockProvider(),
		Prefs:        p,
		QuizDuration: time.Minute,
	})
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func TestStartsOnCover(t *testing.T) {
	m := newTestModel(t, prefs.NewMemory())
	assert.Equal(t, i18n.T(i18n.English, i18n.MainTitle), m.router.Active().Title())
}

func TestRestoresChatScreen(t *testing.T) {
	p := prefs.NewMemory()
	require.NoError(t, prefs.Set(context.Background(), p, prefs.KeyAppState, "chat"))

	m := newTestModel(t, p)
	assert.Equal(t, i18n.T(i18n.English, i18n.AIHistorianTitle), m.router.Active().Title())
}

func TestNavigationPersists(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemory()
	m := newTestModel(t, p)

	m = update(t, m, router.SelectEraMsg{ID: "space-age"})
	assert.Equal(t, appstate.Chat, m.flows.opts.Machine.Screen())
	assert.Equal(t, "chat", prefs.Get(ctx, p, prefs.KeyAppState, ""))
	assert.Equal(t, i18n.T(i18n.English, i18n.AIHistorianTitle), m.router.Active().Title())
	assert.Equal(t, 1, m.router.Depth())

	m = update(t, m, router.GoHomeMsg{})
	assert.Equal(t, appstate.Cover, m.flows.opts.Machine.Screen())
	assert.Nil(t, m.flows.opts.Machine.Era())
	assert.Nil(t, prefs.Get[*string](ctx, p, prefs.KeySelectedEra, nil))

	m = update(t, m, router.StartChatMsg{})
	assert.Equal(t, appstate.Chat, m.flows.opts.Machine.Screen())
	assert.Nil(t, m.flows.opts.Machine.Era())
}

func TestUnknownEraStaysOnCover(t *testing.T) {
	m := newTestModel(t, prefs.NewMemory())
	m = update(t, m, router.SelectEraMsg{ID: "atlantis"})
	assert.Equal(t, appstate.Cover, m.flows.opts.Machine.Screen())
	assert.Equal(t, i18n.T(i18n.English, i18n.MainTitle), m.router.Active().Title())
}

func TestSetLanguage(t *testing.T) {
	p := prefs.NewMemory()
	m := newTestModel(t, p)

	m = update(t, m, router.SetLanguageMsg{Language: i18n.French})
	assert.Equal(t, i18n.French, m.flows.opts.Machine.Language())
	assert.Equal(t, "fr", prefs.Get(context.Background(), p, prefs.KeyAppLang, ""))
	assert.Equal(t, i18n.T(i18n.French, i18n.MainTitle), m.router.Active().Title())

	// Unsupported languages are rejected without changing state.
	m = update(t, m, router.SetLanguageMsg{Language: "xx"})
	assert.Equal(t, i18n.French, m.flows.opts.Machine.Language())
}

func TestQuizFlowAndEscBack(t *testing.T) {
	m := newTestModel(t, prefs.NewMemory())

	m = update(t, m, router.PushScreenMsg{Screen: m.flows.instructions()})
	assert.Equal(t, 2, m.router.Depth())
	assert.Equal(t, i18n.T(i18n.English, i18n.InstructionsTitle), m.router.Active().Title())

	m = update(t, m, router.ReplaceScreenMsg{Screen: m.flows.quiz()})
	assert.Equal(t, i18n.T(i18n.English, i18n.QuizTitle), m.router.Active().Title())

	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = next.(AppModel)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, 1, m.router.Depth())
}

func TestKeyHintsFromActiveScreen(t *testing.T) {
	m := newTestModel(t, prefs.NewMemory())
	hints := m.keyHints(m.router.Active())
	require.NotEmpty(t, hints)

	var keys []string
	for _, h := range hints {
		keys = append(keys, h.Key)
	}
	assert.Contains(t, strings.Join(keys, " "), "/", "cover advertises the filter key")
}
