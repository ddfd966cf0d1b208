package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/arxivcs/core"
)

// paletteItem adapts a registry match to the bubbles list.
type paletteItem struct{ core.Match }

func (p paletteItem) Title() string {
	if p.Blocked() {
		return p.Name + " (" + p.Reason + ")"
	}
	return p.Name
}

func (p paletteItem) Description() string { return p.Command.Description }
func (p paletteItem) FilterValue() string { return p.Name }

var paletteTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))

// CommandScreen is the command palette. The query is re-run against
// search on every edit and the list shows the results in the order given.
type CommandScreen struct {
	scope    string
	keys     *core.KeyRegistry
	search   func(query string) []core.Match
	onSelect func(id string) tea.Msg
	query    textinput.Model
	results  list.Model
}

func NewCommandScreen(scope string, keys *core.KeyRegistry, search func(query string) []core.Match, onSelect func(id string) tea.Msg) *CommandScreen {
	if keys == nil {
		keys = core.NewKeyRegistry(core.DefaultKeyBindings())
	}
	q := textinput.New()
	q.Prompt = "> "
	q.Placeholder = "Type to filter commands"
	q.Focus()

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	results := list.New(nil, delegate, 60, 12)
	results.SetShowTitle(false)
	results.SetShowHelp(false)
	results.SetShowStatusBar(false)
	results.SetFilteringEnabled(false)

	s := &CommandScreen{scope: scope, keys: keys, search: search, onSelect: onSelect, query: q, results: results}
	s.rerun()
	return s
}

// OpenCommandScreen opens the palette over m's registry for scope.
func OpenCommandScreen(m *core.Model, scope string) core.Screen {
	reg := m.CommandRegistry()
	search := func(query string) []core.Match { return reg.Search(query, scope, m) }
	run := func(id string) tea.Msg { return core.CommandExecuteMsg{CommandID: id} }
	return NewCommandScreen(scope, m.Keys(), search, run)
}

func (s *CommandScreen) Title() string { return "Commands" }
func (s *CommandScreen) Scope() string { return core.ScopeCommand }

func (s *CommandScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	km, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch {
		case s.keys.IsAction(km, "close", s.Scope()):
			return s, nil, true
		case s.keys.IsAction(km, "select", s.Scope()):
			return s.choose()
		case s.keys.IsAction(km, "move-up", s.Scope()):
			s.results.CursorUp()
			return s, nil, false
		case s.keys.IsAction(km, "move-down", s.Scope()):
			s.results.CursorDown()
			return s, nil, false
		}
	}
	before := s.query.Value()
	var cmd tea.Cmd
	s.query, cmd = s.query.Update(msg)
	if s.query.Value() != before {
		s.rerun()
	}
	return s, cmd, false
}

func (s *CommandScreen) choose() (core.Screen, tea.Cmd, bool) {
	hit, ok := s.Selected()
	switch {
	case !ok:
		return s, nil, false
	case hit.Blocked():
		return s, core.StatusCmd(hit.Reason), true
	case s.onSelect == nil:
		return s, nil, true
	}
	id, onSelect := hit.ID, s.onSelect
	return s, func() tea.Msg { return onSelect(id) }, true
}

// Selected returns the highlighted match.
func (s *CommandScreen) Selected() (core.Match, bool) {
	it, ok := s.results.SelectedItem().(paletteItem)
	return it.Match, ok
}

func (s *CommandScreen) rerun() {
	hits := s.search(strings.TrimSpace(s.query.Value()))
	items := make([]list.Item, len(hits))
	for i, h := range hits {
		items[i] = paletteItem{h}
	}
	s.results.SetItems(items)
	s.results.ResetSelected()
}

func (s *CommandScreen) View(width, height int) string {
	s.results.SetSize(width, max(4, height-3))
	if len(s.results.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, paletteTitle.Render(s.Title()), s.query.View(), "", "No matching commands")
	}
	return lipgloss.JoinVertical(lipgloss.Left, paletteTitle.Render(s.Title()), s.query.View(), s.results.View())
}
