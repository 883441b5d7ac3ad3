// Package quiz is the timed question screen.
package quiz

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/i18n"
	qz "github.com/kellen/chronos/internal/quiz"
	"github.com/kellen/chronos/internal/router"
	"github.com/kellen/chronos/internal/screen"
	"github.com/kellen/chronos/internal/ui/components"
	"github.com/kellen/chronos/internal/ui/layout"
	"github.com/kellen/chronos/internal/ui/theme"
)

// DefaultDuration is the quiz time limit when none is configured.
const DefaultDuration = 10 * time.Minute

// tickMsg is one countdown second for the run identified by gen.
type tickMsg struct {
	gen uint64
}

// QuizScreen presents one question at a time under a countdown.
type QuizScreen struct {
	machine   *appstate.Machine
	attempt   *qz.Attempt
	countdown *qz.Countdown
	choice    components.Choice
	results   func(*qz.Attempt) screen.Screen
	timeUp    bool
	done      bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen for attempt. results builds the screen shown
// once the attempt is finished.
func New(m *appstate.Machine, attempt *qz.Attempt, duration time.Duration, results func(*qz.Attempt) screen.Screen) *QuizScreen {
	if duration <= 0 {
		duration = DefaultDuration
	}
	s := &QuizScreen{
		machine: m,
		attempt: attempt,
		results: results,
	}
	s.countdown = qz.NewCountdown(int(duration/time.Second), qz.ListenerFuncs{
		Up: func() { s.timeUp = true },
	})
	s.loadChoice()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	gen := s.countdown.Start()
	if s.timeUp {
		return s.finish(true)
	}
	return tick(gen)
}

func tick(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (s *QuizScreen) Title() string {
	return i18n.T(s.machine.Language(), i18n.QuizTitle)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter", Description: "Choose"},
		{Key: "←→", Description: "Question"},
		{Key: "F", Description: "Finish"},
		{Key: "Esc", Description: "Leave"},
	}
}

// Close stops the countdown so pending ticks are ignored.
func (s *QuizScreen) Close() {
	s.countdown.Stop()
}

// Remaining returns the seconds left on the clock.
func (s *QuizScreen) Remaining() int {
	return s.countdown.Remaining()
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}

	switch msg := msg.(type) {
	case tickMsg:
		if !s.countdown.Tick(msg.gen) {
			return s, nil
		}
		if s.timeUp {
			return s, s.finish(true)
		}
		return s, tick(msg.gen)

	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l", "tab":
			if s.attempt.Next() {
				s.loadChoice()
			}
			return s, nil
		case "left", "h", "shift+tab":
			if s.attempt.Prev() {
				s.loadChoice()
			}
			return s, nil
		case "f":
			return s, s.finish(false)
		}

		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Chosen >= 0 {
			s.attempt.Select(s.choice.Chosen)
		}
		return s, cmd
	}

	return s, nil
}

func (s *QuizScreen) finish(timedOut bool) tea.Cmd {
	s.done = true
	s.countdown.Stop()
	s.attempt.Finish(timedOut)
	next := s.results(s.attempt)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) loadChoice() {
	q := s.attempt.Current()
	if q == nil {
		s.choice = components.NewChoice("", nil, -1)
		return
	}
	lang := s.machine.Language()
	options := make([]string, len(q.Options))
	for i, o := range q.Options {
		options[i] = o.Get(lang)
	}
	chosen := -1
	if sel := s.attempt.Selected(); sel != nil {
		chosen = *sel
	}
	s.choice = components.NewChoice(q.Question.Get(lang), options, chosen)
}

func (s *QuizScreen) View(width, height int) string {
	lang := s.machine.Language()
	cw := components.ContentWidth(width)

	clock := qz.FormatClock(s.countdown.Remaining())
	clockStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	if s.countdown.Remaining() <= 60 {
		clockStyle = clockStyle.Foreground(theme.Error)
	}

	status := fmt.Sprintf(i18n.T(lang, i18n.QuestionProgress), s.attempt.Index()+1, s.attempt.Len()) +
		"   " + theme.Hint.Render(i18n.T(lang, i18n.TimeRemaining)+": ") + clockStyle.Render(clock)

	progress := components.NewAnswerStrip(
		fmt.Sprintf(i18n.T(lang, i18n.Answered), s.attempt.Answered(), s.attempt.Len()),
		s.attempt.Answers(), s.attempt.Index(), cw,
	).View()

	finish := components.NewButton(i18n.T(lang, i18n.FinishQuiz)+" (F)", s.attempt.IsLast(), nil).View()

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(status),
		progress,
		components.Card(layout.Wrap(s.choice.View(), cw-4), cw),
		finish,
	}, "\n\n")

	return components.Frame(content, width, height)
}
