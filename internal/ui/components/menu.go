package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.firstEnabled()
	return m
}

// SetItems replaces the items, keeping the selection index when it is
// still valid and enabled.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	if m.Selected >= len(items) || m.Selected < 0 || items[m.Selected].Disabled {
		m.Selected = m.firstEnabled()
	}
}

func (m Menu) firstEnabled() int {
	for i, item := range m.Items {
		if !item.Disabled {
			return i
		}
	}
	return 0
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		dim := lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail(item))
		switch {
		case item.Disabled:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+item.Label) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render("  ▸ "+item.Label) + dim + "\n"
		default:
			s += theme.Unselected.Render("    "+item.Label) + dim + "\n"
		}
	}
	return s
}

func detail(item MenuItem) string {
	if item.Detail == "" {
		return ""
	}
	return "  " + item.Detail
}
