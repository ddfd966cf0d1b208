package tabs

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arxivcs/core"
)

// Commands returns the palette entries for the three tabs. Navigation
// commands go through the route table like the route prompt does.
func Commands(chat *ChatTab, search *SearchTab, vis *VisualizeTab) []core.Command {
	nav := func(id, name, path string) core.Command {
		return core.Command{
			ID:          id,
			Name:        name,
			Description: "open " + path,
			Run:         func(*core.Model) tea.Cmd { return core.NavigateCmd(path) },
		}
	}
	return []core.Command{
		nav("nav:chat", "Go to Chat", "/chat"),
		nav("nav:search", "Go to Search", "/search"),
		nav("nav:visualize", "Go to Visualize", "/visualize"),
		{
			ID:          "chat:example",
			Name:        "Chat: use example question",
			Description: "fill the input with the next example",
			Scopes:      []string{core.ScopeChat},
			Run: func(*core.Model) tea.Cmd {
				chat.NextExample()
				return nil
			},
		},
		{
			ID:          "search:max-results",
			Name:        "Search: change max results",
			Description: "cycle 5, 10, 20, 50",
			Scopes:      []string{core.ScopeSearch},
			Run: func(*core.Model) tea.Cmd {
				return core.StatusCmd(fmt.Sprintf("Max results: %d", search.CycleMaxResults()))
			},
		},
		{
			ID:          "visualize:example",
			Name:        "Visualize: use example concept",
			Description: "fill the input with the next example",
			Scopes:      []string{core.ScopeVisualize},
			Run: func(*core.Model) tea.Cmd {
				vis.NextExample()
				return nil
			},
		},
		{
			ID:          "visualize:save",
			Name:        "Visualize: save image",
			Description: "download the current image",
			Scopes:      []string{core.ScopeVisualize},
			Run:         vis.Save,
			Guard: func(*core.Model) string {
				if !vis.HasImage() {
					return NoImageNotice
				}
				return ""
			},
		},
	}
}
