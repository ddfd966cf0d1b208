package core

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/arxivcs/widgets"
)

// View stacks header, status bar, body and footer. An open screen is drawn
// as a popup over the body.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	width := max(1, m.width)
	header, status, footer := renderHeader(m), RenderStatusBar(m), RenderFooter(m)
	bodyHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))

	body := ""
	if tab := m.ActiveTab(); tab != nil && bodyHeight > 0 {
		body = tab.Build(&m).Render(max(1, width-2), bodyHeight)
		if top := m.screens.Top(); top != nil {
			card := top.View(max(20, width-12), max(8, m.height-8))
			body = widgets.RenderPopup(body, card, max(1, width-2), bodyHeight)
		}
	}
	rows := []string{header, status, padLines(body, bodyHeight), footer}
	out := padLines(strings.Join(rows, "\n"), max(1, m.height))
	return ui.base.Width(width).MaxWidth(width).Render(out)
}

func renderHeader(m Model) string {
	labels := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		style := ui.tabOff
		if i == m.activeTab {
			style = ui.tabOn
		}
		labels[i] = style.Render(fmt.Sprintf("%d:%s", i+1, t.Title()))
	}
	left := ui.title.Render(m.Title) + ui.path.Render("  "+m.path)
	right := ui.divider.Render(" ") + strings.Join(labels, ui.divider.Render("│"))
	gap := max(1, m.width-ansi.StringWidth(left)-ansi.StringWidth(right))
	return fillBar(ui.header, m.width, left+ui.header.Render(strings.Repeat(" ", gap))+right)
}

// padLines returns exactly height lines, cutting or padding s.
func padLines(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(ClipHeight(s, height), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
