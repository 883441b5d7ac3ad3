package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders model output for the terminal. Renderers are cached per
// wrap width. Not safe for concurrent use; call from the update loop.
type Markdown struct {
	width    int
	renderer *glamour.TermRenderer
}

// Render formats md wrapped at width. If rendering fails the source text is
// returned unchanged.
func (m *Markdown) Render(md string, width int) string {
	if width < 10 {
		width = 10
	}
	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		m.renderer, m.width = r, width
	}

	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
