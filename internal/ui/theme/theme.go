package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: parchment and bronze on a night-sky background.
var (
	Primary   = lipgloss.Color("#D4A373") // Bronze
	Secondary = lipgloss.Color("#2A9D8F") // Verdigris
	Accent    = lipgloss.Color("#E9C46A") // Gold leaf
	Success   = lipgloss.Color("#52B788") // Laurel
	Error     = lipgloss.Color("#E76F51") // Terracotta
	Text      = lipgloss.Color("#FAF3E0") // Parchment
	TextDim   = lipgloss.Color("#A8A29E") // Stone
	BgDark    = lipgloss.Color("#111827") // Night
	BgCard    = lipgloss.Color("#1F2937") // Slate
	Border    = lipgloss.Color("#44403C") // Umber
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Chat bubbles
var (
	UserLabel = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	ModelLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
