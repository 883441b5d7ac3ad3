package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellen/chronos/internal/i18n"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, SupportedMajor, c.Version()[:2])
	assert.Len(t, c.Eras(), 8)
	assert.Len(t, c.Questions(), 10)

	e, ok := c.Era("roman-empire")
	require.True(t, ok)
	assert.Equal(t, "The Roman Empire", e.Title.Get(i18n.English))
	assert.Equal(t, "L'Empire romain", e.Title.Get(i18n.French))
	// Missing translation falls back to English.
	assert.Equal(t, "The Roman Empire", e.Title.Get(i18n.Japanese))

	_, ok = c.Era("atlantis")
	assert.False(t, ok)
}

func TestErasReturnsCopy(t *testing.T) {
	c := Default()
	eras := c.Eras()
	eras[0].ID = "mutated"
	assert.NotEqual(t, "mutated", c.Eras()[0].ID)
}

func TestSearch(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		query string
		lang  i18n.Language
		first string
	}{
		{"partial english", "roman", i18n.English, "roman-empire"},
		{"case insensitive", "EGYPT", i18n.English, "ancient-egypt"},
		{"subsequence", "indrev", i18n.English, "industrial-revolution"},
		{"french title", "grece", i18n.French, "classical-greece"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query, tt.lang)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.first, got[0].ID)
		})
	}

	assert.Len(t, c.Search("", i18n.English), 8)
	assert.Empty(t, c.Search("zzzzqqq", i18n.English))
}

func TestSchemaIsReflected(t *testing.T) {
	raw, err := Schema()
	require.NoError(t, err)

	var s map[string]any
	require.NoError(t, json.Unmarshal(raw, &s))
	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "eras")
	assert.Contains(t, props, "questions")
	assert.Contains(t, props, "version")
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "not json",
			doc:  `{`,
			want: "invalid catalog JSON",
		},
		{
			name: "missing eras",
			doc:  `{"version":"v1.0.0","questions":[]}`,
			want: "schema validation",
		},
		{
			name: "bad version",
			doc:  `{"version":"1.0","eras":[],"questions":[]}`,
			want: "schema validation",
		},
		{
			name: "unsupported major",
			doc:  `{"version":"v2.0.0","eras":[],"questions":[]}`,
			want: "unsupported major",
		},
		{
			name: "duplicate era",
			doc: `{"version":"v1.0.0","questions":[],"eras":[
				{"id":"a","title":{"en":"A"},"period":{},"description":{},"image":""},
				{"id":"a","title":{"en":"B"},"period":{},"description":{},"image":""}]}`,
			want: "duplicate era id",
		},
		{
			name: "answer out of range",
			doc: `{"version":"v1.0.0","eras":[],"questions":[
				{"id":1,"question":{"en":"Q"},"options":[{"en":"a"},{"en":"b"}],"correctAnswerIndex":2,"explanation":{}}]}`,
			want: "out of range",
		},
		{
			name: "too few options",
			doc: `{"version":"v1.0.0","eras":[],"questions":[
				{"id":1,"question":{"en":"Q"},"options":[{"en":"a"}],"correctAnswerIndex":0,"explanation":{}}]}`,
			want: "schema validation",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	doc := `{"version":"v1.3.0","eras":[
		{"id":"only","title":{"en":"Only Era"},"period":{"en":"now"},"description":{"en":"d"},"image":"x.jpg"}],
		"questions":[]}`
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "v1.3.0", c.Version())
	require.Len(t, c.Eras(), 1)
	assert.Empty(t, c.Questions())

	def, err := Load("")
	require.NoError(t, err)
	assert.Len(t, def.Eras(), 8)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadEmbeddedMatchesDefault(t *testing.T) {
	c, err := Read(strings.NewReader(string(embedded)))
	require.NoError(t, err)
	assert.Equal(t, Default().Version(), c.Version())
}
