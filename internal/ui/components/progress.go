package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/ui/theme"
)

// AnswerStrip shows one cell per quiz question: filled when answered, with
// the current question marked underneath.
type AnswerStrip struct {
	Label    string
	Answered []bool
	Current  int
	Width    int
}

// NewAnswerStrip builds a strip from an answer sheet.
func NewAnswerStrip(label string, answers []*int, current, width int) AnswerStrip {
	answered := make([]bool, len(answers))
	for i, a := range answers {
		answered[i] = a != nil
	}
	return AnswerStrip{Label: label, Answered: answered, Current: current, Width: width}
}

// View renders the label, the cells and the current-question marker.
func (s AnswerStrip) View() string {
	n := len(s.Answered)
	if n == 0 {
		return theme.Hint.Render(s.Label)
	}

	// Cells are separated by one column; each is at least one column wide.
	cell := (s.Width - (n - 1)) / n
	if cell < 1 {
		cell = 1
	}
	if cell > 6 {
		cell = 6
	}

	cells := make([]string, n)
	marks := make([]string, n)
	for i, done := range s.Answered {
		style := theme.ProgressEmpty
		if done {
			style = theme.ProgressFilled
		}
		cells[i] = style.Render(strings.Repeat(" ", cell))

		mark := " "
		if i == s.Current {
			mark = "▲"
		}
		marks[i] = lipgloss.NewStyle().Width(cell).Align(lipgloss.Center).Foreground(theme.Accent).Render(mark)
	}

	strip := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(cells, " "),
		strings.Join(marks, " "),
	)
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(s.Label)
	return lipgloss.JoinVertical(lipgloss.Center, label, strip)
}
