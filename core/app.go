package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arxivcs/widgets"
)

// Screen is an overlay that receives keys before the active tab. Update
// reports pop=true to be removed from the stack.
type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

// Tab is a routed page. Update sees every non-key message so results reach
// the tab that started them even when it is in the background.
type Tab interface {
	ID() string
	Title() string
	Scope() string
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

type TabInitializer interface {
	InitTab(m *Model) tea.Cmd
}

// BusyReporter is implemented by tabs with a request in flight.
type BusyReporter interface {
	Busy() bool
}

type statusLine struct {
	text string
	err  bool
}

type Model struct {
	Title string
	// OpenCommandModal and OpenRouteModal build the overlays for the
	// palette and route prompt keys. Nil disables the key.
	OpenCommandModal func(m *Model, scope string) Screen
	OpenRouteModal   func(m *Model) Screen

	width, height int
	tabs          []Tab
	activeTab     int
	path          string
	routes        RouteTable
	screens       ScreenStack
	keys          *KeyRegistry
	commands      *CommandRegistry
	status        statusLine
	quitting      bool
}

// NewModel starts on the first tab. Nil registries are replaced by empty
// ones.
func NewModel(tabs []Tab, routes RouteTable, keys *KeyRegistry, commands *CommandRegistry) Model {
	m := Model{
		Title:    "arXiv CS Expert",
		width:    100,
		height:   32,
		tabs:     tabs,
		routes:   routes,
		keys:     keys,
		commands: commands,
		status:   statusLine{text: "Ready"},
	}
	if m.keys == nil {
		m.keys = NewKeyRegistry(nil)
	}
	if m.commands == nil {
		m.commands = NewCommandRegistry(nil)
	}
	if len(tabs) > 0 {
		m.path = routes.PathFor(tabs[0].ID())
	}
	return m
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.tabs {
		if ti, ok := t.(TabInitializer); ok {
			cmds = append(cmds, ti.InitTab(&m))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) SetStatus(text string) { m.status = statusLine{text: text} }

// SetError shows err in the status bar; nil clears it.
func (m *Model) SetError(err error) {
	if err == nil {
		m.status = statusLine{}
		return
	}
	m.status = statusLine{text: err.Error(), err: true}
}

// Status returns the status text and whether it is an error.
func (m Model) Status() (string, bool) { return m.status.text, m.status.err }

// ActiveScope is the scope of the top screen, else of the active tab.
func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if t := m.ActiveTab(); t != nil {
		return t.Scope()
	}
	return "app"
}

func (m Model) ActiveTab() Tab {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.activeTab]
}

// Path is the route of the active tab.
func (m Model) Path() string { return m.path }

func (m Model) activeBusy() bool {
	b, ok := m.ActiveTab().(BusyReporter)
	return ok && b.Busy()
}

func (m Model) Size() (int, int) { return m.width, m.height }

// SwitchTab activates the tab at index and updates the path. Out of range
// indexes are ignored.
func (m *Model) SwitchTab(index int) {
	if index < 0 || index >= len(m.tabs) {
		return
	}
	m.activeTab = index
	m.path = m.routes.PathFor(m.tabs[index].ID())
}

func (m *Model) cycleTab(step int) {
	if n := len(m.tabs); n > 0 {
		m.SwitchTab(((m.activeTab+step)%n + n) % n)
	}
}

func (m *Model) tabIndex(id string) int {
	for i, t := range m.tabs {
		if t.ID() == id {
			return i
		}
	}
	return -1
}

// Navigate resolves path and switches to its tab, closing any open
// screens. Unknown paths redirect to the fallback route.
func (m *Model) Navigate(path string) {
	route, redirected := m.routes.Resolve(path)
	idx := m.tabIndex(route.TabID)
	if idx < 0 {
		m.SetError(errUnroutable(route))
		return
	}
	m.activeTab, m.path = idx, route.Path
	m.screens.Clear()
	if redirected {
		m.SetStatus("No screen at " + NormalizePath(path) + ", redirected to " + route.Path)
		return
	}
	m.SetStatus("Opened " + route.Path)
}

func (m *Model) PushScreen(s Screen) { m.screens.Push(s) }

func (m *Model) CommandRegistry() *CommandRegistry { return m.commands }
func (m *Model) Keys() *KeyRegistry                { return m.keys }
func (m Model) Routes() RouteTable                 { return m.routes }
