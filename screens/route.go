package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arxivcs/core"
)

// RouteScreen prompts for a path and navigates to it on enter.
type RouteScreen struct {
	keys  *core.KeyRegistry
	paths []string
	input textinput.Model
}

func NewRouteScreen(current string, paths []string, keys *core.KeyRegistry) *RouteScreen {
	if keys == nil {
		keys = core.NewKeyRegistry(core.DefaultKeyBindings())
	}
	inp := textinput.New()
	inp.Prompt = "go to: "
	inp.Placeholder = current
	inp.ShowSuggestions = true
	inp.SetSuggestions(paths)
	inp.Focus()
	return &RouteScreen{keys: keys, paths: paths, input: inp}
}

func OpenRouteScreen(m *core.Model) core.Screen {
	return NewRouteScreen(m.Path(), m.Routes().Paths(), m.Keys())
}

func (s *RouteScreen) Title() string { return "Go to" }
func (s *RouteScreen) Scope() string { return core.ScopeRoute }

func (s *RouteScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case s.keys.IsAction(km, "close", s.Scope()):
			return s, nil, true
		case s.keys.IsAction(km, "select", s.Scope()):
			path := strings.TrimSpace(s.input.Value())
			if path == "" {
				return s, nil, false
			}
			return s, core.NavigateCmd(path), true
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

func (s *RouteScreen) View(width, height int) string {
	s.input.Width = max(10, width-len(s.input.Prompt)-2)
	lines := []string{
		s.Title(),
		s.input.View(),
		"",
		"routes: " + strings.Join(s.paths, "  "),
	}
	return core.ClipHeight(strings.Join(lines, "\n"), height)
}
