// Package results shows the quiz outcome, the answer review and the
// certificate flow.
package results

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/certificate"
	"github.com/kellen/chronos/internal/i18n"
	qz "github.com/kellen/chronos/internal/quiz"
	"github.com/kellen/chronos/internal/router"
	"github.com/kellen/chronos/internal/screen"
	"github.com/kellen/chronos/internal/store"
	"github.com/kellen/chronos/internal/ui/components"
	"github.com/kellen/chronos/internal/ui/layout"
	"github.com/kellen/chronos/internal/ui/theme"
)

// Deps are the collaborators of the results screen. Downloader and Events
// may be nil.
type Deps struct {
	Identity   *qz.Identity
	Downloader *certificate.Downloader
	Events     store.EventRepo
	Logger     *slog.Logger
	// Restart builds the quiz screen for the restarted attempt.
	Restart func(*qz.Attempt) screen.Screen
	Now     func() time.Time
}

type recordedMsg struct{ err error }

type downloadedMsg struct {
	path string
	err  error
}

const (
	buttonDownload = iota
	buttonChangeName
	buttonRestart
)

// ResultsScreen shows the score and, for a pass, the certificate actions.
type ResultsScreen struct {
	machine     *appstate.Machine
	attempt     *qz.Attempt
	result      qz.Result
	deps        Deps
	nameInput   components.TextInput
	editingName bool
	focus       int
	downloading bool
	status      string
	statusErr   bool
	offset      int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen for a finished attempt.
func New(m *appstate.Machine, attempt *qz.Attempt, deps Deps) *ResultsScreen {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Identity == nil {
		deps.Identity = qz.LoadIdentity(context.Background(), nil)
	}

	r := &ResultsScreen{
		machine:   m,
		attempt:   attempt,
		result:    attempt.Result(),
		deps:      deps,
		nameInput: components.NewTextInput(i18n.T(m.Language(), i18n.EnterFullName), 80),
	}
	r.editingName = r.result.Passed && !deps.Identity.HasName()
	if !r.result.Passed {
		r.focus = buttonRestart
	}
	return r
}

func (r *ResultsScreen) Init() tea.Cmd {
	var cmds []tea.Cmd
	if r.editingName {
		cmds = append(cmds, r.nameInput.Init())
	}
	if r.deps.Events != nil {
		events := r.deps.Events
		data := store.QuizAttemptEventData{
			AttemptID:  r.attempt.ID(),
			Language:   string(r.machine.Language()),
			Questions:  r.attempt.Len(),
			Correct:    r.result.Correct,
			Score:      r.result.Score,
			Passed:     r.result.Passed,
			TimedOut:   r.attempt.TimedOut(),
			HolderName: r.deps.Identity.Name(),
		}
		cmds = append(cmds, func() tea.Msg {
			return recordedMsg{err: events.AppendQuizAttempt(context.Background(), data)}
		})
	}
	return tea.Batch(cmds...)
}

func (r *ResultsScreen) Title() string {
	return i18n.T(r.machine.Language(), i18n.ResultsTitle)
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	if r.editingName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save name"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next button"},
		{Key: "Enter", Description: "Press"},
		{Key: "↑↓", Description: "Scroll review"},
		{Key: "Esc", Description: "Home"},
	}
}

// Result returns the scored outcome shown on this screen.
func (r *ResultsScreen) Result() qz.Result {
	return r.result
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordedMsg:
		if msg.err != nil {
			r.deps.Logger.Warn("record quiz attempt", "error", msg.err)
		}
		return r, nil

	case downloadedMsg:
		r.downloading = false
		lang := r.machine.Language()
		if msg.err != nil {
			r.setStatus(fmt.Sprintf(i18n.T(lang, i18n.CertificateFailed), msg.err), true)
		} else {
			r.setStatus(fmt.Sprintf(i18n.T(lang, i18n.CertificateSaved), msg.path), false)
		}
		return r, nil

	case tea.KeyMsg:
		if r.editingName {
			return r.updateName(msg)
		}
		return r.updateButtons(msg)
	}

	if r.editingName {
		var cmd tea.Cmd
		r.nameInput, cmd = r.nameInput.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r *ResultsScreen) updateName(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		r.nameInput, cmd = r.nameInput.Update(msg)
		return r, cmd
	}

	ok, err := r.deps.Identity.Submit(context.Background(), r.nameInput.Value())
	if err != nil {
		r.deps.Logger.Warn("persist holder name", "error", err)
	}
	if ok {
		r.editingName = false
		r.focus = buttonDownload
		r.status = ""
	}
	return r, nil
}

func (r *ResultsScreen) updateButtons(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "right", "l":
		r.moveFocus(1)
		return r, nil
	case "shift+tab", "left", "h":
		r.moveFocus(-1)
		return r, nil
	case "up", "k":
		if r.offset > 0 {
			r.offset--
		}
		return r, nil
	case "down", "j":
		r.offset++
		return r, nil
	}

	buttons := r.buttons()
	for i := range buttons {
		if buttons[i].Active {
			var cmd tea.Cmd
			buttons[i], cmd = buttons[i].Update(msg)
			return r, cmd
		}
	}
	return r, nil
}

func (r *ResultsScreen) available() []int {
	if !r.result.Passed {
		return []int{buttonRestart}
	}
	return []int{buttonDownload, buttonChangeName, buttonRestart}
}

func (r *ResultsScreen) moveFocus(delta int) {
	ids := r.available()
	pos := 0
	for i, id := range ids {
		if id == r.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(ids)) % len(ids)
	r.focus = ids[pos]
}

func (r *ResultsScreen) buttons() []components.Button {
	lang := r.machine.Language()
	out := make([]components.Button, 0, 3)
	for _, id := range r.available() {
		var b components.Button
		switch id {
		case buttonDownload:
			b = components.NewButton(i18n.T(lang, i18n.DownloadPDF), false, r.download)
			b.Disabled = r.deps.Downloader == nil || r.downloading
		case buttonChangeName:
			b = components.NewButton(i18n.T(lang, i18n.ChangeName), false, r.changeName)
		case buttonRestart:
			b = components.NewButton(i18n.T(lang, i18n.Restart), false, r.restart)
		}
		b.Active = id == r.focus
		out = append(out, b)
	}
	return out
}

func (r *ResultsScreen) download() tea.Cmd {
	req, err := certificate.NewRequest(r.result, r.deps.Identity.Name(), r.deps.Now())
	if err != nil {
		if errors.Is(err, certificate.ErrEmptyName) {
			return r.changeName()
		}
		r.setStatus(err.Error(), true)
		return nil
	}

	r.downloading = true
	r.setStatus(i18n.T(r.machine.Language(), i18n.Downloading), false)
	d := r.deps.Downloader
	return func() tea.Msg {
		path, err := d.Download(context.Background(), req)
		return downloadedMsg{path: path, err: err}
	}
}

func (r *ResultsScreen) changeName() tea.Cmd {
	r.editingName = true
	r.nameInput.SetValue(r.deps.Identity.Name())
	return r.nameInput.Init()
}

func (r *ResultsScreen) restart() tea.Cmd {
	r.attempt.Restart()
	next := r.deps.Restart(r.attempt)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (r *ResultsScreen) setStatus(s string, isErr bool) {
	r.status = s
	r.statusErr = isErr
}

func (r *ResultsScreen) View(width, height int) string {
	lang := r.machine.Language()
	cw := components.ContentWidth(width)

	verdict := theme.Incorrect.Render(i18n.T(lang, i18n.FailMessage))
	if r.result.Passed {
		verdict = theme.Correct.Render(i18n.T(lang, i18n.PassMessage))
	}
	summary := theme.Title.Render(fmt.Sprintf("%s: %d%%", i18n.T(lang, i18n.YourScore), r.result.Score)) +
		"\n" + verdict
	if r.attempt.TimedOut() {
		summary += "\n" + theme.Hint.Render(i18n.T(lang, i18n.TimeUp))
	}

	var sections []string
	sections = append(sections, components.Card(lipgloss.NewStyle().Width(cw-4).Align(lipgloss.Center).Render(summary), cw))

	if r.result.Passed {
		if r.editingName {
			sections = append(sections, theme.Hint.Render(i18n.T(lang, i18n.EnterFullName))+"\n"+r.nameInput.View())
		} else {
			sections = append(sections, theme.Hint.Render(i18n.T(lang, i18n.CertificateFor)+": ")+
				theme.Selected.Render(r.deps.Identity.Name()))
		}
	}

	if !r.editingName {
		views := make([]string, 0, 5)
		for i, b := range r.buttons() {
			if i > 0 {
				views = append(views, "  ")
			}
			views = append(views, b.View())
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center, views...))
	}

	if r.status != "" {
		style := theme.Hint
		if r.statusErr {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		sections = append(sections, style.Render(layout.Wrap(r.status, cw)))
	}

	top := strings.Join(sections, "\n\n")
	reviewHeight := height - lipgloss.Height(top) - 4
	if reviewHeight > 0 {
		review := r.renderReview(cw - 4)
		var window string
		window, r.offset = layout.Window(review, r.offset, reviewHeight)
		top += "\n\n" + theme.Selected.Render(i18n.T(lang, i18n.ReviewAnswers)) + "\n" + window
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, top)
}

func (r *ResultsScreen) renderReview(width int) string {
	lang := r.machine.Language()
	var b strings.Builder

	for i, q := range r.attempt.Questions() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(theme.Body.Bold(true).Render(layout.Wrap(fmt.Sprintf("%d. %s", i+1, q.Question.Get(lang)), width)))
		b.WriteString("\n")

		var answer *int
		if i < len(r.result.Answers) {
			answer = r.result.Answers[i]
		}
		correct := q.Options[q.CorrectAnswerIndex].Get(lang)

		switch {
		case answer == nil:
			b.WriteString(theme.Incorrect.Render("✗ " + i18n.T(lang, i18n.YourAnswer) + ": " + i18n.T(lang, i18n.NotAnswered)))
		case *answer == q.CorrectAnswerIndex:
			b.WriteString(theme.Correct.Render("✓ " + i18n.T(lang, i18n.YourAnswer) + ": " + correct))
		default:
			b.WriteString(theme.Incorrect.Render("✗ " + i18n.T(lang, i18n.YourAnswer) + ": " + q.Options[*answer].Get(lang)))
		}
		if answer == nil || *answer != q.CorrectAnswerIndex {
			b.WriteString("\n" + theme.Correct.Render("  "+i18n.T(lang, i18n.CorrectAnswer)+": "+correct))
		}

		b.WriteString("\n" + theme.Hint.Render(layout.Wrap(i18n.T(lang, i18n.Explanation)+": "+q.Explanation.Get(lang), width)))
	}

	return b.String()
}
