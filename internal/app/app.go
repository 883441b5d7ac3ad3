package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/certificate"
	"github.com/kellen/chronos/internal/llm"
	"github.com/kellen/chronos/internal/prefs"
	qz "github.com/kellen/chronos/internal/quiz"
	"github.com/kellen/chronos/internal/router"
	"github.com/kellen/chronos/internal/screen"
	"github.com/kellen/chronos/internal/store"
	"github.com/kellen/chronos/internal/ui/layout"
)

// Options wires the TUI to its collaborators. Opener, Events and
// Downloader may be nil: without an opener the chat runs degraded.
type Options struct {
	Machine      *appstate.Machine
	Catalog      *catalog.Catalog
	Opener       llm.Opener
	Prefs        prefs.Store
	Events       store.EventRepo
	Downloader   *certificate.Downloader
	QuizDuration time.Duration
	Logger       *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	flows  *flows
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the screen the machine was
// restored to.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	f := &flows{
		opts:     opts,
		identity: qz.LoadIdentity(context.Background(), opts.Prefs),
	}
	return AppModel{
		router: router.New(f.root()),
		flows:  f,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	machine := m.flows.opts.Machine
	logger := m.flows.opts.Logger

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

	case router.StartChatMsg:
		if err := machine.StartChat(ctx); err != nil {
			logger.Warn("persist app state", "error", err)
		}
		return m, m.router.Reset(m.flows.root())

	case router.SelectEraMsg:
		if err := machine.SelectEra(ctx, msg.ID); err != nil {
			logger.Warn("select era", "era", msg.ID, "error", err)
			if machine.Screen() != appstate.Chat {
				return m, nil
			}
		}
		return m, m.router.Reset(m.flows.root())

	case router.GoHomeMsg:
		if err := machine.GoHome(ctx); err != nil {
			logger.Warn("persist app state", "error", err)
		}
		return m, m.router.Reset(m.flows.root())

	case router.SetLanguageMsg:
		if err := machine.SetLanguage(ctx, msg.Language); err != nil {
			logger.Warn("set language", "language", msg.Language, "error", err)
		}
		// The active screen relabels itself.
		return m, m.router.Update(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.flows.opts.Machine.Language().Name(), m.width)
	footer := layout.RenderFooter(m.keyHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) keyHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.router.CloseAll()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
