// Package chat is the conversation screen with the AI historian.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/appstate"
	convo "github.com/kellen/chronos/internal/chat"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/router"
	"github.com/kellen/chronos/internal/screen"
	"github.com/kellen/chronos/internal/ui/components"
	"github.com/kellen/chronos/internal/ui/layout"
	"github.com/kellen/chronos/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ChatScreen shows the conversation and the message input. It owns the
// session: leaving the screen closes it and late replies are dropped.
type ChatScreen struct {
	machine  *appstate.Machine
	session  *convo.Session
	input    components.TextInput
	markdown components.Markdown
	ctx      context.Context
	cancel   context.CancelFunc
	ready    bool
	frame    int
	notice   string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.Closer = (*ChatScreen)(nil)

// New creates the chat screen around session.
func New(m *appstate.Machine, session *convo.Session) *ChatScreen {
	ctx, cancel := context.WithCancel(context.Background())
	c := &ChatScreen{
		machine: m,
		session: session,
		input:   components.NewTextInput(i18n.T(m.Language(), i18n.ChatPlaceholder), 2000),
		ctx:     ctx,
		cancel:  cancel,
	}
	c.input.Disabled = true
	return c
}

func (c *ChatScreen) Init() tea.Cmd {
	ctx, session := c.ctx, c.session
	return tea.Batch(
		func() tea.Msg {
			session.Initialize(ctx)
			return sessionReadyMsg{}
		},
		c.input.Init(),
	)
}

func (c *ChatScreen) Title() string {
	return i18n.T(c.machine.Language(), i18n.AIHistorianTitle)
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Home"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Close abandons any in-flight request.
func (c *ChatScreen) Close() {
	c.cancel()
	c.session.Close()
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		c.ready = true
		ex, err := c.session.BeginAutoPrompt(c.machine.Era(), c.machine.Language())
		c.syncInput()
		if err != nil || ex == nil {
			return c, nil
		}
		return c, c.run(ex)

	case replyMsg:
		c.session.Complete(msg.Reply)
		c.syncInput()
		return c, nil

	case spinnerTickMsg:
		if !c.session.Pending() {
			return c, nil
		}
		c.frame = (c.frame + 1) % len(spinnerFrames)
		return c, spinnerTick()

	case router.SetLanguageMsg:
		c.input.SetPlaceholder(i18n.T(msg.Language, i18n.ChatPlaceholder))
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return c, func() tea.Msg { return router.GoHomeMsg{} }
		case "enter":
			return c, c.submit()
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// submit starts an exchange with the current input. Blank input and input
// while pending or degraded are ignored.
func (c *ChatScreen) submit() tea.Cmd {
	ex, err := c.session.Begin(c.input.Value())
	switch {
	case errors.Is(err, convo.ErrEmptyMessage), errors.Is(err, convo.ErrBusy), errors.Is(err, convo.ErrNoDialogue):
		return nil
	case err != nil:
		c.notice = err.Error()
		return nil
	}
	c.notice = ""
	c.input.Reset()
	c.syncInput()
	return c.run(ex)
}

func (c *ChatScreen) run(ex *convo.Exchange) tea.Cmd {
	ctx := c.ctx
	return tea.Batch(
		func() tea.Msg { return replyMsg{Reply: ex.Run(ctx)} },
		spinnerTick(),
	)
}

func (c *ChatScreen) syncInput() {
	c.input.Disabled = !c.session.Ready()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (c *ChatScreen) View(width, height int) string {
	lang := c.machine.Language()
	cw := width - 4
	if cw < 20 {
		cw = 20
	}

	var footer []string
	if c.session.Pending() {
		footer = append(footer, theme.Hint.Render(spinnerFrames[c.frame]+" "+i18n.T(lang, i18n.Thinking)))
	}
	if c.notice != "" {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.Error).Render(c.notice))
	}
	footer = append(footer, components.Card(c.input.View(), cw))
	bottom := strings.Join(footer, "\n")

	historyHeight := height - lipgloss.Height(bottom) - 1
	transcript := ""
	if c.ready {
		transcript = c.renderHistory(cw)
	}
	transcript = layout.Tail(transcript, historyHeight)

	top := lipgloss.NewStyle().
		Width(width).
		Height(historyHeight).
		Padding(0, 2).
		Render(transcript)

	return top + "\n" + lipgloss.NewStyle().Padding(0, 2).Render(bottom)
}

func (c *ChatScreen) renderHistory(width int) string {
	var b strings.Builder
	for i, m := range c.session.History() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch m.Role {
		case convo.RoleUser:
			b.WriteString(theme.UserLabel.Render("You"))
			b.WriteString("\n")
			b.WriteString(theme.Body.Render(layout.Wrap(m.Content, width)))
		default:
			b.WriteString(theme.ModelLabel.Render("Chronos"))
			b.WriteString("\n")
			b.WriteString(c.markdown.Render(m.Content, width))
		}
	}
	return b.String()
}
