package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Chronos styling. A disabled input
// ignores keystrokes and renders dimmed.
type TextInput struct {
	Model    textinput.Model
	Disabled bool
}

// NewTextInput creates a new focused text input. limit caps the number of
// characters; zero means no limit.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if limit > 0 {
		ti.CharLimit = limit
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Disabled {
		if _, ok := msg.(tea.KeyMsg); ok {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	if t.Disabled {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("> " + t.Model.Placeholder)
	}
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

// SetPlaceholder changes the placeholder text.
func (t *TextInput) SetPlaceholder(p string) {
	t.Model.Placeholder = p
}
