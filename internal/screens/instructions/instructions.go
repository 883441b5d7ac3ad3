// Package instructions shows the quiz rules before the timer starts.
package instructions

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/router"
	"github.com/kellen/chronos/internal/screen"
	"github.com/kellen/chronos/internal/ui/components"
	"github.com/kellen/chronos/internal/ui/layout"
	"github.com/kellen/chronos/internal/ui/theme"
)

var instructionKeys = []i18n.Key{
	i18n.Instruction1,
	i18n.Instruction2,
	i18n.Instruction3,
	i18n.Instruction4,
	i18n.Instruction5,
}

// InstructionsScreen lists the rules and hands over to the quiz.
type InstructionsScreen struct {
	machine *appstate.Machine
	next    func() screen.Screen
}

var _ screen.Screen = (*InstructionsScreen)(nil)
var _ screen.KeyHintProvider = (*InstructionsScreen)(nil)

// New creates the screen. next builds the quiz screen that replaces it.
func New(m *appstate.Machine, next func() screen.Screen) *InstructionsScreen {
	return &InstructionsScreen{machine: m, next: next}
}

func (s *InstructionsScreen) Init() tea.Cmd {
	return nil
}

func (s *InstructionsScreen) Title() string {
	return i18n.T(s.machine.Language(), i18n.InstructionsTitle)
}

func (s *InstructionsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "←→", Description: "Language"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InstructionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter":
		quiz := s.next()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: quiz} }
	case "left", "h":
		lang := s.machine.Language().Prev()
		return s, func() tea.Msg { return router.SetLanguageMsg{Language: lang} }
	case "right", "l":
		lang := s.machine.Language().Next()
		return s, func() tea.Msg { return router.SetLanguageMsg{Language: lang} }
	}
	return s, nil
}

func (s *InstructionsScreen) View(width, height int) string {
	lang := s.machine.Language()
	cw := components.ContentWidth(width)

	lines := make([]string, 0, len(instructionKeys))
	for i, k := range instructionKeys {
		lines = append(lines, layout.Wrap(fmt.Sprintf("%d. %s", i+1, i18n.T(lang, k)), cw-4))
	}

	picker := theme.Hint.Render(i18n.T(lang, i18n.LanguageLabel)+": ") +
		theme.Selected.Render("◂ "+lang.Name()+" ▸")

	content := strings.Join([]string{
		theme.Title.Width(cw).Render(i18n.T(lang, i18n.InstructionsTitle)),
		components.Card(theme.Body.Render(strings.Join(lines, "\n")), cw),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(picker),
		components.NewButton(i18n.T(lang, i18n.ContinueToQuiz), true, nil).View(),
	}, "\n\n")

	return components.Frame(content, width, height)
}
