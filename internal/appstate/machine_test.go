package appstate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/prefs"
	"github.com/kellen/chronos/internal/store"
)

func TestLoadDefaults(t *testing.T) {
	m := Load(context.Background(), prefs.NewMemory(), catalog.Default())
	snap := m.Snapshot()
	assert.Equal(t, Cover, snap.Screen)
	assert.Equal(t, i18n.English, snap.Language)
	assert.Nil(t, snap.Era)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	ctx := context.Background()
	s := prefs.NewMemory()
	require.NoError(t, prefs.Set(ctx, s, prefs.KeyAppState, "results"))
	require.NoError(t, prefs.Set(ctx, s, prefs.KeyAppLang, "xx"))
	require.NoError(t, prefs.Set(ctx, s, prefs.KeySelectedEra, "atlantis"))

	m := Load(ctx, s, catalog.Default())
	assert.Equal(t, Cover, m.Screen())
	assert.Equal(t, i18n.English, m.Language())
	assert.Nil(t, m.Era())
}

func TestTransitions(t *testing.T) {
	ctx := context.Background()
	s := prefs.NewMemory()
	m := Load(ctx, s, catalog.Default())

	require.NoError(t, m.SelectEra(ctx, "mali-empire"))
	assert.Equal(t, Chat, m.Screen())
	require.NotNil(t, m.Era())
	assert.Equal(t, "mali-empire", m.Era().ID)
	assert.Equal(t, "mali-empire", *prefs.Get[*string](ctx, s, prefs.KeySelectedEra, nil))

	require.NoError(t, m.GoHome(ctx))
	assert.Equal(t, Cover, m.Screen())
	assert.Nil(t, m.Era())
	assert.Nil(t, prefs.Get[*string](ctx, s, prefs.KeySelectedEra, nil))

	require.NoError(t, m.SelectEra(ctx, "renaissance"))
	require.NoError(t, m.StartChat(ctx))
	assert.Equal(t, Chat, m.Screen())
	assert.Nil(t, m.Era(), "start chat clears the era")
	assert.Equal(t, "chat", prefs.Get(ctx, s, prefs.KeyAppState, ""))
}

func TestSelectUnknownEra(t *testing.T) {
	ctx := context.Background()
	m := Load(ctx, prefs.NewMemory(), catalog.Default())

	err := m.SelectEra(ctx, "atlantis")
	assert.ErrorIs(t, err, ErrUnknownEra)
	assert.Equal(t, Cover, m.Screen())
	assert.Nil(t, m.Era())
}

func TestSetLanguage(t *testing.T) {
	ctx := context.Background()
	s := prefs.NewMemory()
	m := Load(ctx, s, catalog.Default())

	require.NoError(t, m.SetLanguage(ctx, i18n.Kinyarwanda))
	assert.Equal(t, i18n.Kinyarwanda, m.Language())
	assert.Equal(t, "rw", prefs.Get(ctx, s, prefs.KeyAppLang, ""))

	err := m.SetLanguage(ctx, i18n.Language("klingon"))
	assert.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
	assert.Equal(t, i18n.Kinyarwanda, m.Language())
}

func TestEraIsCopied(t *testing.T) {
	ctx := context.Background()
	m := Load(ctx, prefs.NewMemory(), catalog.Default())
	require.NoError(t, m.SelectEra(ctx, "space-age"))

	e := m.Era()
	e.ID = "mutated"
	assert.Equal(t, "space-age", m.Era().ID)
}

type failingStore struct{ prefs.Memory }

func (*failingStore) Set(context.Context, string, string) error { return errors.New("read-only") }

func TestTransitionSurvivesPersistFailure(t *testing.T) {
	ctx := context.Background()
	m := Load(ctx, &failingStore{}, catalog.Default())

	err := m.SelectEra(ctx, "roman-empire")
	assert.Error(t, err)
	assert.Equal(t, Chat, m.Screen())
	assert.Equal(t, "roman-empire", m.Era().ID)

	assert.Error(t, m.SetLanguage(ctx, i18n.French))
	assert.Equal(t, i18n.French, m.Language())
}

func TestStateSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chronos.db")

	db, err := store.Open(path)
	require.NoError(t, err)
	m := Load(ctx, db.Preferences(), catalog.Default())
	require.NoError(t, m.SetLanguage(ctx, i18n.French))
	require.NoError(t, m.SelectEra(ctx, "kingdom-of-rwanda"))
	require.NoError(t, db.Close())

	db, err = store.Open(path)
	require.NoError(t, err)
	defer db.Close()

	snap := Load(ctx, db.Preferences(), catalog.Default()).Snapshot()
	assert.Equal(t, Chat, snap.Screen)
	assert.Equal(t, i18n.French, snap.Language)
	require.NotNil(t, snap.Era)
	assert.Equal(t, "kingdom-of-rwanda", snap.Era.ID)
}
