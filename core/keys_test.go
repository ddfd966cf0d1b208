package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyRegistryScopeMatch(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"ctrl+k"}, Action: "palette", Scopes: []string{"tab:a"}},
		{Keys: []string{"ctrl+q"}, Action: "quit", Scopes: []string{"*"}},
	})
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "tab:a") {
		t.Fatalf("expected ctrl+k in tab:a")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "tab:b") {
		t.Fatalf("did not expect ctrl+k in tab:b")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlQ}, "quit", "tab:b") {
		t.Fatalf("expected ctrl+q to match wildcard scope")
	}
}

func TestBindingsForScopeListsSpecificFirst(t *testing.T) {
	reg := NewKeyRegistry(DefaultKeyBindings())
	got := reg.BindingsForScope(ScopeSearch)
	if len(got) == 0 || got[0].Action != "submit" || got[0].Description != "search" {
		t.Fatalf("first search binding = %+v", got[0])
	}
	if reg.KeyFor("save-image", ScopeVisualize) != "ctrl+s" {
		t.Fatalf("save-image key missing in visualize scope")
	}
	if reg.KeyFor("save-image", ScopeChat) != "" {
		t.Fatalf("save-image should not exist in chat scope")
	}
}

func TestApplyActionKeybindings(t *testing.T) {
	base := DefaultKeyBindings()
	rebound := ApplyActionKeybindings(base, map[string][]string{"quit": {"ctrl+x"}})
	reg := NewKeyRegistry(rebound)
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlX}, "quit", ScopeChat) {
		t.Fatalf("quit should be rebound to ctrl+x")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlQ}, "quit", ScopeChat) {
		t.Fatalf("old quit key should be gone")
	}
	if DefaultKeybindingsByAction(base)["submit"][0] != "enter" {
		t.Fatalf("submit should default to enter")
	}
}
