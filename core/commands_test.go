package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSearchFiltersByScopeAndGuard(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "a", Name: "Alpha", Scopes: []string{"tab:a"}},
		{ID: "b", Name: "Beta", Scopes: []string{"tab:b"}, Guard: func(*Model) string { return "blocked" }},
	})
	m := NewModel(nil, DefaultRoutes(), NewKeyRegistry(nil), reg)
	resA := reg.Search("", "tab:a", &m)
	if len(resA) != 1 || resA[0].ID != "a" || resA[0].Blocked() {
		t.Fatalf("expected only command a in tab:a, got %+v", resA)
	}
	resB := reg.Search("", "tab:b", &m)
	if len(resB) != 1 || !resB[0].Blocked() || resB[0].Reason != "blocked" {
		t.Fatalf("expected blocked command in tab:b, got %+v", resB)
	}
}

func TestSearchRanksPrefixThenSubstringThenTypo(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "nav:search", Name: "Go to Search"},
		{ID: "search:clear", Name: "Search: clear results"},
		{ID: "chat:new", Name: "Seerch nothing", Description: "typo target"},
		{ID: "other", Name: "Quit"},
	})
	m := NewModel(nil, DefaultRoutes(), nil, reg)
	got := reg.Search("search", "tab:x", &m)
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %+v", got)
	}
	want := []string{"search:clear", "nav:search", "chat:new"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("rank %d = %s, want %s (%+v)", i, got[i].ID, id, got)
		}
	}
}

func TestBlockedCommandsSortLast(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "save", Name: "Save", Guard: func(*Model) string { return "nothing to save" }},
		{ID: "send", Name: "Send"},
	})
	m := NewModel(nil, DefaultRoutes(), nil, reg)
	got := reg.Search("s", "tab:x", &m)
	if len(got) != 2 || got[0].ID != "send" || got[1].ID != "save" {
		t.Fatalf("blocked command should sort last: %+v", got)
	}
}

func TestRegisterReplacesByID(t *testing.T) {
	reg := NewCommandRegistry([]Command{{ID: "x", Name: "Old"}})
	reg.Register(Command{ID: "x", Name: "New"})
	reg.Register(Command{Name: "no id"})
	m := NewModel(nil, DefaultRoutes(), nil, reg)
	got := reg.Search("", "tab:x", &m)
	if len(got) != 1 || got[0].Name != "New" {
		t.Fatalf("got %+v", got)
	}
}

func TestExecuteUnknownAndGuarded(t *testing.T) {
	ran := false
	reg := NewCommandRegistry([]Command{
		{ID: "off", Name: "Off", Guard: func(*Model) string { return "not now" }, Run: func(*Model) tea.Cmd { ran = true; return nil }},
	})
	m := NewModel(nil, DefaultRoutes(), nil, reg)
	msg := reg.Execute("missing", &m)().(StatusMsg)
	if msg.Text != "Unknown command: missing" {
		t.Fatalf("unknown = %q", msg.Text)
	}
	msg = reg.Execute("off", &m)().(StatusMsg)
	if msg.Text != "not now" || ran {
		t.Fatalf("guarded = %q ran=%v", msg.Text, ran)
	}
}
