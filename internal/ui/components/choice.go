package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/ui/theme"
)

// Choice is a single-answer option list. The cursor moves freely; the
// chosen option is marked separately and can be changed.
type Choice struct {
	Prompt  string
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen
}

// NewChoice creates a choice list. chosen is the previously chosen option
// or -1; the cursor starts on it when set.
func NewChoice(prompt string, options []string, chosen int) Choice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	} else {
		chosen = -1
	}
	return Choice{
		Prompt:  prompt,
		Options: options,
		Cursor:  cursor,
		Chosen:  chosen,
	}
}

// Update handles keyboard navigation. Enter or space chooses the option
// under the cursor; a digit chooses that option directly.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "enter", "space", " ":
		if len(c.Options) > 0 {
			c.Chosen = c.Cursor
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Cursor = i
				c.Chosen = i
			}
		}
	}

	return c, nil
}

// View renders the prompt and options.
func (c Choice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt) + "\n\n"

	for i, opt := range c.Options {
		cursor := "  "
		if i == c.Cursor {
			cursor = "▸ "
		}
		mark := "( )"
		if i == c.Chosen {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %d. %s", cursor, mark, i+1, opt)

		switch {
		case i == c.Chosen:
			s += theme.Selected.Render(line) + "\n"
		case i == c.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Accent).Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}
