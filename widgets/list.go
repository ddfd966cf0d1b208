package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// List is a titled bullet list; Active marks one item, -1 for none.
type List struct {
	Title  string
	Items  []string
	Active int
}

func (l List) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	rows := make([]string, 0, len(l.Items)+1)
	if l.Title != "" {
		rows = append(rows, lipgloss.NewStyle().Bold(true).Render(l.Title))
	}
	for i, item := range l.Items {
		if i == l.Active {
			rows = append(rows, activeStyle.Render("› "+item))
			continue
		}
		rows = append(rows, "- "+item)
	}
	if len(rows) > height {
		rows = rows[:height]
	}
	return Text(strings.Join(rows, "\n")).Render(width, height)
}
