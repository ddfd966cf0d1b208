package core

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding names an action and the keys that trigger it in Scopes.
// No scopes or "*" makes it global.
type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

// Help converts the binding to a bubbles key.Binding.
func (b KeyBinding) Help() key.Binding {
	if len(b.Keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
}

func (b KeyBinding) global() bool {
	return len(b.Scopes) == 0 || slices.Contains(b.Scopes, "*")
}

func (b KeyBinding) visibleIn(scope string) bool {
	return b.global() || slices.Contains(b.Scopes, scope)
}

type KeyRegistry struct {
	bindings []KeyBinding
	matchers []key.Binding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	r := &KeyRegistry{}
	for _, b := range bindings {
		r.bindings = append(r.bindings, b)
		r.matchers = append(r.matchers, b.Help())
	}
	return r
}

// BindingsForScope lists bindings visible in scope, scoped ones first.
func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	var scoped, global []KeyBinding
	for _, b := range r.bindings {
		switch {
		case b.global():
			global = append(global, b)
		case b.visibleIn(scope):
			scoped = append(scoped, b)
		}
	}
	return append(scoped, global...)
}

// IsAction reports whether msg triggers action in scope.
func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	for i, b := range r.bindings {
		if b.Action == action && b.visibleIn(scope) && key.Matches(msg, r.matchers[i]) {
			return true
		}
	}
	return false
}

// KeyFor returns the first key bound to action in scope, or "".
func (r *KeyRegistry) KeyFor(action, scope string) string {
	i := slices.IndexFunc(r.bindings, func(b KeyBinding) bool {
		return b.Action == action && b.visibleIn(scope) && len(b.Keys) > 0
	})
	if i < 0 {
		return ""
	}
	return r.bindings[i].Keys[0]
}

// scopeMatch reports whether something limited to scopes shows in scope.
func scopeMatch(scope string, scopes []string) bool {
	return KeyBinding{Scopes: scopes}.visibleIn(scope)
}
