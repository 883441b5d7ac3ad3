// Package catalog holds the static era and question content.
//
// The catalog ships embedded in the binary and may be replaced at runtime by
// a JSON file with the same shape. Every document is validated against a
// schema reflected from the Go types before use.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"golang.org/x/mod/semver"

	"github.com/kellen/chronos/internal/i18n"
)

// SupportedMajor is the catalog format major version this build understands.
const SupportedMajor = "v1"

//go:embed data/catalog.json
var embedded []byte

// Era is a curated historical period with localized display text.
type Era struct {
	ID          string    `json:"id" jsonschema:"minLength=1,pattern=^[a-z0-9-]+$"`
	Title       i18n.Text `json:"title"`
	Period      i18n.Text `json:"period"`
	Description i18n.Text `json:"description"`
	Image       string    `json:"image"`
}

// Question is a single multiple-choice quiz question.
type Question struct {
	ID                 int         `json:"id" jsonschema:"minimum=1"`
	Question           i18n.Text   `json:"question"`
	Options            []i18n.Text `json:"options" jsonschema:"minItems=2"`
	CorrectAnswerIndex int         `json:"correctAnswerIndex" jsonschema:"minimum=0"`
	Explanation        i18n.Text   `json:"explanation"`
}

// document is the on-disk catalog layout.
type document struct {
	Version   string     `json:"version" jsonschema:"pattern=^v[0-9]+\\.[0-9]+\\.[0-9]+$"`
	Eras      []Era      `json:"eras"`
	Questions []Question `json:"questions"`
}

// Catalog is an immutable set of eras and questions.
type Catalog struct {
	version   string
	eras      []Era
	byID      map[string]Era
	questions []Question
}

// Default returns the embedded catalog. It panics if the embedded document
// is invalid, which only a broken build can cause.
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load resolves the catalog: the file at path when path is non-empty,
// otherwise the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a catalog document from r.
func Read(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	if err := checkContent(&doc); err != nil {
		return nil, err
	}

	return &Catalog{
		version:   doc.Version,
		eras:      doc.Eras,
		byID:      lo.KeyBy(doc.Eras, func(e Era) string { return e.ID }),
		questions: doc.Questions,
	}, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("catalog version %q is not a semantic version", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("catalog version %s: unsupported major %s (want %s)", v, major, SupportedMajor)
	}
	return nil
}

func checkContent(doc *document) error {
	if dups := lo.FindDuplicatesBy(doc.Eras, func(e Era) string { return e.ID }); len(dups) > 0 {
		return fmt.Errorf("duplicate era id %q", dups[0].ID)
	}
	for _, e := range doc.Eras {
		if e.Title.Get(i18n.English) == "" {
			return fmt.Errorf("era %s: missing title", e.ID)
		}
	}

	if dups := lo.FindDuplicatesBy(doc.Questions, func(q Question) int { return q.ID }); len(dups) > 0 {
		return fmt.Errorf("duplicate question id %d", dups[0].ID)
	}
	for _, q := range doc.Questions {
		if q.CorrectAnswerIndex >= len(q.Options) {
			return fmt.Errorf("question %d: correct answer index %d out of range (%d options)",
				q.ID, q.CorrectAnswerIndex, len(q.Options))
		}
	}
	return nil
}

// Version returns the catalog format version.
func (c *Catalog) Version() string { return c.version }

// Eras returns all eras in display order.
func (c *Catalog) Eras() []Era {
	return append([]Era(nil), c.eras...)
}

// Era looks up an era by id.
func (c *Catalog) Era(id string) (Era, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Questions returns the quiz questions in order.
func (c *Catalog) Questions() []Question {
	return append([]Question(nil), c.questions...)
}

// Search returns the eras whose title in lang fuzzy-matches query, best
// match first. An empty query returns every era in display order.
func (c *Catalog) Search(query string, lang i18n.Language) []Era {
	if query == "" {
		return c.Eras()
	}

	titles := lo.Map(c.eras, func(e Era, _ int) string { return e.Title.Get(lang) })
	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) Era { return c.eras[r.OriginalIndex] })
}
