package instructions

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/prefs"
	"github.com/kellen/chronos/internal/router"
	"github.com/kellen/chronos/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "quiz" }
func (s *stubScreen) Title() string                           { return "Quiz" }

func newTestInstructions() (*InstructionsScreen, *int) {
	built := 0
	m := appstate.Load(context.Background(), prefs.NewMemory(), catalog.Default())
	return New(m, func() screen.Screen { built++; return &stubScreen{} }), &built
}

func TestShowsFiveInstructions(t *testing.T) {
	s, _ := newTestInstructions()
	view := s.View(120, 40)
	for i := 1; i <= 5; i++ {
		if !strings.Contains(view, string(rune('0'+i))+". ") {
			t.Errorf("expected instruction %d in view", i)
		}
	}
}

func TestEnterReplacesWithQuiz(t *testing.T) {
	s, built := newTestInstructions()
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if msg.Screen.Title() != "Quiz" || *built != 1 {
		t.Errorf("expected quiz screen built once, got %q (%d)", msg.Screen.Title(), *built)
	}
}

func TestLanguagePicker(t *testing.T) {
	s, _ := newTestInstructions()
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	msg, ok := cmd().(router.SetLanguageMsg)
	if !ok || msg.Language != i18n.Default.Next() {
		t.Errorf("expected SetLanguageMsg(%q), got %#v", i18n.Default.Next(), msg)
	}
}
