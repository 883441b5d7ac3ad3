package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/screen"
	"github.com/kellen/chronos/internal/ui/theme"
)

// PlaceholderScreen shows a static notice, for flows that have nothing to
// show yet (for example a catalog without quiz questions).
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title and message.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ " + p.title + " ╌╌\n\n" + p.message)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
