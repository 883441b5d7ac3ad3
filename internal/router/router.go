package router

import (
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Application state transitions. Screens emit these; the root model applies
// them to the persisted state machine and rebuilds the stack.
type (
	StartChatMsg   struct{}
	SelectEraMsg   struct{ ID string }
	GoHomeMsg      struct{}
	SetLanguageMsg struct{ Language i18n.Language }
)

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	closeScreen(top)
	return nil
}

// Replace swaps the top screen for s and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		r.stack = append(r.stack, s)
		return s.Init()
	}
	top := r.stack[len(r.stack)-1]
	r.stack[len(r.stack)-1] = s
	closeScreen(top)
	return s.Init()
}

// Reset closes every screen on the stack and starts over from root.
func (r *Router) Reset(root screen.Screen) tea.Cmd {
	r.CloseAll()
	r.stack = []screen.Screen{root}
	return root.Init()
}

// CloseAll closes every screen on the stack, top first, and empties it.
func (r *Router) CloseAll() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		closeScreen(r.stack[i])
	}
	r.stack = nil
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}
