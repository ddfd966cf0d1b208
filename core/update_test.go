package core

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arxivcs/widgets"
)

type routerTab struct {
	id     string
	keys   int
	others []tea.Msg
	busy   bool
}

func (t *routerTab) ID() string                    { return t.id }
func (t *routerTab) Title() string                 { return strings.ToUpper(t.id) }
func (t *routerTab) Scope() string                 { return "tab:" + t.id }
func (t *routerTab) Busy() bool                    { return t.busy }
func (t *routerTab) Build(m *Model) widgets.Widget { return widgets.Text("body of " + t.id) }
func (t *routerTab) Update(m *Model, msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.keys++
		return nil
	}
	t.others = append(t.others, msg)
	return nil
}

type fakeScreen struct{ hits int }

func (s *fakeScreen) Title() string        { return "Screen" }
func (s *fakeScreen) Scope() string        { return "screen:test" }
func (s *fakeScreen) View(int, int) string { return "screen" }
func (s *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		s.hits++
		if km.String() == "esc" {
			return s, nil, true
		}
	}
	return s, nil, false
}

type pingMsg struct{}

func testTabs() (*routerTab, *routerTab, *routerTab) {
	return &routerTab{id: "chat"}, &routerTab{id: "search"}, &routerTab{id: "visualize"}
}

func newTestModel(tabs ...Tab) Model {
	return NewModel(tabs, DefaultRoutes(), NewKeyRegistry(DefaultKeyBindings()), NewCommandRegistry(nil))
}

func TestScreenGetsKeyBeforeTab(t *testing.T) {
	chat, _, _ := testTabs()
	m := newTestModel(chat)
	screen := &fakeScreen{}
	m.PushScreen(screen)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	updated := next.(Model)
	if screen.hits != 1 {
		t.Fatalf("screen should handle key first")
	}
	if chat.keys != 0 {
		t.Fatalf("tab should not receive key when screen open")
	}
	if updated.screens.Len() != 1 {
		t.Fatalf("screen should remain open")
	}
}

func TestScreenCanPopItself(t *testing.T) {
	chat, _, _ := testTabs()
	m := newTestModel(chat)
	m.PushScreen(&fakeScreen{})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Model).screens.Len() != 0 {
		t.Fatalf("expected screen to pop on esc")
	}
}

func TestNonKeyMessagesReachEveryTab(t *testing.T) {
	chat, search, vis := testTabs()
	m := newTestModel(chat, search, vis)
	m.SwitchTab(2)

	m.Update(pingMsg{})
	for _, tab := range []*routerTab{chat, search, vis} {
		if len(tab.others) != 1 {
			t.Fatalf("tab %s got %d messages, want 1", tab.id, len(tab.others))
		}
	}
}

func TestKeysGoOnlyToActiveTab(t *testing.T) {
	chat, search, _ := testTabs()
	m := newTestModel(chat, search)
	m.SwitchTab(1)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if chat.keys != 0 || search.keys != 1 {
		t.Fatalf("keys: chat=%d search=%d", chat.keys, search.keys)
	}
}

func TestTabKeysCycleAndSetPath(t *testing.T) {
	chat, search, vis := testTabs()
	m := newTestModel(chat, search, vis)
	if m.Path() != "/chat" {
		t.Fatalf("initial path = %q", m.Path())
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.ActiveTab().ID() != "search" || m.Path() != "/search" {
		t.Fatalf("after tab: %s %s", m.ActiveTab().ID(), m.Path())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	if m.ActiveTab().ID() != "visualize" {
		t.Fatalf("shift+tab should wrap, got %s", m.ActiveTab().ID())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})
	if next.(Model).ActiveTab().ID() != "chat" {
		t.Fatalf("alt+1 should open chat")
	}
}

func TestNavigateMsg(t *testing.T) {
	chat, search, vis := testTabs()
	m := newTestModel(chat, search, vis)
	m.PushScreen(&fakeScreen{})

	next, _ := m.Update(NavigateMsg{Path: "/visualize"})
	m = next.(Model)
	if m.ActiveTab().ID() != "visualize" || m.Path() != "/visualize" {
		t.Fatalf("navigate: %s %s", m.ActiveTab().ID(), m.Path())
	}
	if m.screens.Len() != 0 {
		t.Fatalf("navigate should close overlays")
	}

	next, _ = m.Update(NavigateMsg{Path: "/nowhere"})
	m = next.(Model)
	if m.ActiveTab().ID() != "chat" || m.Path() != "/" {
		t.Fatalf("unknown path should redirect home, got %s %s", m.ActiveTab().ID(), m.Path())
	}
	if status, isErr := m.Status(); isErr || !strings.Contains(status, "redirected to /") {
		t.Fatalf("unexpected status %q err=%v", status, isErr)
	}
}

func TestCommandPaletteOpens(t *testing.T) {
	chat, _, _ := testTabs()
	m := newTestModel(chat)
	var gotScope string
	m.OpenCommandModal = func(m *Model, scope string) Screen {
		gotScope = scope
		return &fakeScreen{}
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	if next.(Model).screens.Len() != 1 || gotScope != "tab:chat" {
		t.Fatalf("palette not opened for tab:chat (scope %q)", gotScope)
	}
	if chat.keys != 0 {
		t.Fatalf("palette key leaked to tab")
	}
}

func TestViewShowsChromeAndBusyStatus(t *testing.T) {
	chat, search, _ := testTabs()
	m := newTestModel(chat, search)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m = next.(Model)
	chat.busy = true
	m.SetStatus("Thinking")

	view := m.View()
	for _, want := range []string{"arXiv CS Expert", "/chat", "1:CHAT", "2:SEARCH", "body of chat", "Thinking", "commands"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if got := len(strings.Split(view, "\n")); got != 20 {
		t.Fatalf("view height = %d, want 20", got)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || next.(Model).View() != "Goodbye\n" {
		t.Fatalf("ctrl+c should quit")
	}
}

func TestStatusBarShowsErrorsAndReady(t *testing.T) {
	chat, _, _ := testTabs()
	m := newTestModel(chat)
	m.SetStatus("")
	if bar := RenderStatusBar(m); !strings.Contains(bar, "Ready") {
		t.Fatalf("empty status should read Ready, got %q", bar)
	}
	m.SetError(errors.New("backend down"))
	if bar := RenderStatusBar(m); !strings.Contains(bar, "backend down") || strings.Contains(bar, "…") {
		t.Fatalf("error status = %q", bar)
	}
	next, _ := m.Update(StatusMsg{Text: "Opened /search"})
	if text, isErr := next.(Model).Status(); text != "Opened /search" || isErr {
		t.Fatalf("status msg = %q err=%v", text, isErr)
	}
}
