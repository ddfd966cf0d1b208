package core

import "slices"

const (
	ScopeChat      = "tab:chat"
	ScopeSearch    = "tab:search"
	ScopeVisualize = "tab:visualize"
	ScopeCommand   = "screen:command"
	ScopeRoute     = "screen:route"
)

func bind(action, desc string, scopes []string, keys ...string) KeyBinding {
	return KeyBinding{Keys: keys, Action: action, Description: desc, Scopes: scopes}
}

func DefaultKeyBindings() []KeyBinding {
	var (
		chat       = []string{ScopeChat}
		search     = []string{ScopeSearch}
		visualize  = []string{ScopeVisualize}
		anyTab     = []string{ScopeChat, ScopeSearch, ScopeVisualize}
		everywhere = []string{"*"}
		palette    = []string{ScopeCommand}
		prompt     = []string{ScopeRoute}
	)
	return []KeyBinding{
		bind("submit", "send", chat, "enter"),
		bind("submit", "search", search, "enter"),
		bind("submit", "generate", visualize, "enter"),
		bind("example", "example", []string{ScopeChat, ScopeVisualize}, "ctrl+e"),
		bind("max-results", "max results", search, "ctrl+n"),
		bind("save-image", "save image", visualize, "ctrl+s"),
		bind("scroll-up", "scroll up", anyTab, "pgup"),
		bind("scroll-down", "scroll down", anyTab, "pgdown"),

		bind("open-command-palette", "commands", everywhere, "ctrl+k"),
		bind("open-route-prompt", "go to", everywhere, "ctrl+g"),
		bind("next-tab", "next tab", everywhere, "tab"),
		bind("prev-tab", "prev tab", everywhere, "shift+tab"),
		bind("switch-tab-1", "chat", everywhere, "alt+1"),
		bind("switch-tab-2", "search", everywhere, "alt+2"),
		bind("switch-tab-3", "visualize", everywhere, "alt+3"),
		bind("quit", "quit", everywhere, "ctrl+q"),

		bind("close", "close", []string{ScopeCommand, ScopeRoute}, "esc"),
		bind("select", "select", palette, "enter"),
		bind("select", "open", prompt, "enter"),
		bind("move-up", "up", palette, "up", "ctrl+p"),
		bind("move-down", "down", palette, "down", "ctrl+n"),
	}
}

// DefaultKeybindingsByAction maps each action to the keys of its first
// binding. It is the shape of the [keys] config table.
func DefaultKeybindingsByAction(bindings []KeyBinding) map[string][]string {
	out := map[string][]string{}
	for _, b := range bindings {
		if _, seen := out[b.Action]; seen || b.Action == "" || len(b.Keys) == 0 {
			continue
		}
		out[b.Action] = slices.Clone(b.Keys)
	}
	return out
}

// ApplyActionKeybindings returns a copy of bindings with the keys of every
// action named in actionKeys replaced. Scopes and descriptions are kept.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := slices.Clone(bindings)
	for i, b := range out {
		keys := b.Keys
		if override := actionKeys[b.Action]; len(override) > 0 {
			keys = override
		}
		out[i].Keys = slices.Clone(keys)
		out[i].Scopes = slices.Clone(b.Scopes)
	}
	return out
}
