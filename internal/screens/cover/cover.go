// Package cover is the landing screen: the era list with fuzzy filtering,
// the language picker and the entry points to chat and quiz.
package cover

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/router"
	"github.com/kellen/chronos/internal/screen"
	"github.com/kellen/chronos/internal/ui/components"
	"github.com/kellen/chronos/internal/ui/layout"
	"github.com/kellen/chronos/internal/ui/theme"
)

// CoverScreen lists the eras and the main actions.
type CoverScreen struct {
	machine   *appstate.Machine
	catalog   *catalog.Catalog
	takeQuiz  func() screen.Screen
	filter    components.TextInput
	filtering bool
	menu      components.Menu
	eras      []catalog.Era
}

var _ screen.Screen = (*CoverScreen)(nil)
var _ screen.KeyHintProvider = (*CoverScreen)(nil)

// New creates the cover screen. takeQuiz builds the first screen of the
// quiz flow; when nil the quiz entry is disabled.
func New(m *appstate.Machine, cat *catalog.Catalog, takeQuiz func() screen.Screen) *CoverScreen {
	c := &CoverScreen{
		machine:  m,
		catalog:  cat,
		takeQuiz: takeQuiz,
		filter:   components.NewTextInput("", 40),
	}
	c.filter.Model.Blur()
	c.refresh()
	return c
}

func (c *CoverScreen) Init() tea.Cmd {
	return nil
}

func (c *CoverScreen) Title() string {
	return i18n.T(c.machine.Language(), i18n.MainTitle)
}

func (c *CoverScreen) KeyHints() []layout.KeyHint {
	if c.filtering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "/", Description: "Filter"},
		{Key: "←→", Description: "Language"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (c *CoverScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.SetLanguageMsg:
		c.refresh()
		return c, nil

	case tea.KeyMsg:
		if c.filtering {
			return c.updateFilter(msg)
		}
		switch msg.String() {
		case "/":
			c.filtering = true
			return c, c.filter.Model.Focus()
		case "left", "h":
			return c, setLanguage(c.machine.Language().Prev())
		case "right", "l":
			return c, setLanguage(c.machine.Language().Next())
		}
	}

	var cmd tea.Cmd
	c.menu, cmd = c.menu.Update(msg)
	return c, cmd
}

func (c *CoverScreen) updateFilter(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "down":
		c.filtering = false
		c.filter.Model.Blur()
		return c, nil
	case "esc":
		c.filtering = false
		c.filter.Reset()
		c.filter.Model.Blur()
		c.refresh()
		return c, nil
	}

	var cmd tea.Cmd
	c.filter, cmd = c.filter.Update(msg)
	c.refresh()
	return c, cmd
}

func setLanguage(lang i18n.Language) tea.Cmd {
	return func() tea.Msg { return router.SetLanguageMsg{Language: lang} }
}

// refresh rebuilds the menu for the current language and filter.
func (c *CoverScreen) refresh() {
	lang := c.machine.Language()
	c.eras = c.catalog.Search(strings.TrimSpace(c.filter.Value()), lang)
	c.filter.SetPlaceholder(i18n.T(lang, i18n.SearchEras))

	items := []components.MenuItem{
		{Label: i18n.T(lang, i18n.StartChat), Action: func() tea.Cmd {
			return func() tea.Msg { return router.StartChatMsg{} }
		}},
		{Label: i18n.T(lang, i18n.TakeQuiz), Disabled: c.takeQuiz == nil, Action: func() tea.Cmd {
			next := c.takeQuiz()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
	}
	for _, e := range c.eras {
		id := e.ID
		items = append(items, components.MenuItem{
			Label:  e.Title.Get(lang),
			Detail: e.Period.Get(lang),
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.SelectEraMsg{ID: id} }
			},
		})
	}
	c.menu.SetItems(items)
}

// SelectedEra returns the era under the cursor, or nil when the cursor is
// on an action.
func (c *CoverScreen) SelectedEra() *catalog.Era {
	i := c.menu.Selected - 2
	if i < 0 || i >= len(c.eras) {
		return nil
	}
	e := c.eras[i]
	return &e
}

func (c *CoverScreen) View(width, height int) string {
	lang := c.machine.Language()
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, theme.Title.Width(cw).Render(i18n.T(lang, i18n.MainTitle)))
	sections = append(sections, theme.Subtitle.Width(cw).Render(i18n.T(lang, i18n.WelcomeMessage)))

	picker := theme.Hint.Render(i18n.T(lang, i18n.LanguageLabel)+": ") +
		theme.Selected.Render("◂ "+lang.Name()+" ▸")
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(picker))

	filterLine := "/ " + c.filter.View()
	if !c.filtering && c.filter.Value() == "" {
		filterLine = theme.Hint.Render("/ " + i18n.T(lang, i18n.SearchEras))
	}
	menu := c.menu.View()
	if len(c.eras) == 0 {
		menu += "\n" + theme.Hint.Render("    "+i18n.T(lang, i18n.NoErasMatch))
	}
	sections = append(sections, components.Card(filterLine+"\n\n"+menu, cw))

	if e := c.SelectedEra(); e != nil && !layout.IsCompact(width, height+8) {
		sections = append(sections, components.Card(
			theme.Selected.Render(e.Title.Get(lang))+"\n"+
				theme.Body.Render(layout.Wrap(e.Description.Get(lang), cw-4)), cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
