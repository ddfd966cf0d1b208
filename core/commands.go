package core

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
)

// Command is a palette entry. Scopes limits where it is listed; none means
// everywhere. Guard returns why the command cannot run right now, or "".
type Command struct {
	ID          string
	Name        string
	Description string
	Scopes      []string
	Run         func(m *Model) tea.Cmd
	Guard       func(m *Model) string
}

// Match is a search hit. Reason is set when the command's guard blocks it.
type Match struct {
	Command
	Reason string
	tier   matchTier
}

func (m Match) Blocked() bool { return m.Reason != "" }

type matchTier int

const (
	tierPrefix matchTier = iota
	tierSubstring
	tierTypo
	tierMiss
)

// CommandRegistry keeps commands in registration order; re-registering an
// id replaces the earlier entry in place.
type CommandRegistry struct {
	order []Command
	index map[string]int
}

func NewCommandRegistry(cmds []Command) *CommandRegistry {
	r := &CommandRegistry{index: map[string]int{}}
	for _, c := range cmds {
		r.Register(c)
	}
	return r
}

func (r *CommandRegistry) Register(c Command) {
	if c.ID == "" {
		return
	}
	if i, ok := r.index[c.ID]; ok {
		r.order[i] = c
		return
	}
	r.index[c.ID] = len(r.order)
	r.order = append(r.order, c)
}

func (r *CommandRegistry) lookup(id string) (Command, bool) {
	i, ok := r.index[id]
	if !ok {
		return Command{}, false
	}
	return r.order[i], true
}

// tierOf grades how well q matches c. Typos are tolerated per name word,
// comparing only as many runes of the word as the query has.
func tierOf(c Command, q string) matchTier {
	name := strings.ToLower(c.Name)
	switch {
	case q == "", strings.HasPrefix(name, q):
		return tierPrefix
	case strings.Contains(strings.ToLower(strings.Join([]string{c.Name, c.Description, c.ID}, " ")), q):
		return tierSubstring
	}
	budget := max(1, len(q)/3)
	for _, word := range strings.Fields(name) {
		head := []rune(word)
		if n := len([]rune(q)); len(head) > n {
			head = head[:n]
		}
		if levenshtein.ComputeDistance(string(head), q) <= budget {
			return tierTypo
		}
	}
	return tierMiss
}

// Search lists the commands visible in scope that match query. Runnable
// commands come first, then better tiers, then names alphabetically.
func (r *CommandRegistry) Search(query, scope string, m *Model) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Match
	for _, c := range r.order {
		if !scopeMatch(scope, c.Scopes) {
			continue
		}
		tier := tierOf(c, q)
		if tier == tierMiss {
			continue
		}
		hit := Match{Command: c, tier: tier}
		if c.Guard != nil {
			hit.Reason = c.Guard(m)
		}
		out = append(out, hit)
	}
	slices.SortStableFunc(out, func(a, b Match) int {
		if a.Blocked() != b.Blocked() {
			if a.Blocked() {
				return 1
			}
			return -1
		}
		return cmp.Or(cmp.Compare(a.tier, b.tier), cmp.Compare(a.Name, b.Name))
	})
	return out
}

// Execute runs the command with id, or reports why it cannot.
func (r *CommandRegistry) Execute(id string, m *Model) tea.Cmd {
	c, ok := r.lookup(id)
	if !ok {
		return StatusCmd("Unknown command: " + id)
	}
	if c.Guard != nil {
		if reason := c.Guard(m); reason != "" {
			return StatusCmd(reason)
		}
	}
	if c.Run == nil {
		return nil
	}
	return c.Run(m)
}
