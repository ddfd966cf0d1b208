package core

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderFooter lists the key hints for the active scope, one per action.
func RenderFooter(m Model) string {
	var hints []string
	shown := map[string]bool{}
	for _, b := range m.keys.BindingsForScope(m.ActiveScope()) {
		if shown[b.Action] || len(b.Keys) == 0 {
			continue
		}
		shown[b.Action] = true
		h := b.Help().Help()
		hints = append(hints, ui.footerKey.Render(h.Key)+ui.footer.Render(" ")+ui.footerDesc.Render(h.Desc))
	}
	if len(hints) == 0 {
		return fillBar(ui.footer, m.width, ui.footerDesc.Render("No shortcuts"))
	}
	return fillBar(ui.footer, m.width, strings.Join(hints, ui.footer.Render("  ")))
}

// RenderStatusBar shows the last status, in red for errors and with a
// busy marker while the active tab has a request pending.
func RenderStatusBar(m Model) string {
	text := strings.TrimSpace(m.status.text)
	if text == "" {
		text = "Ready"
	}
	switch {
	case m.status.err:
		return fillBar(ui.statusErr, m.width, text)
	case m.activeBusy():
		return fillBar(ui.statusBusy, m.width, "… "+text)
	default:
		return fillBar(ui.statusOK, m.width, text)
	}
}

// fillBar renders a single row exactly width columns wide.
func fillBar(style lipgloss.Style, width int, text string) string {
	width = max(1, width)
	row := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "")
	if pad := width - ansi.StringWidth(row); pad > 0 {
		row += strings.Repeat(" ", pad)
	}
	return style.Width(width).MaxWidth(width).Render(row)
}

// ClipHeight keeps at most height lines of s.
func ClipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.SplitN(s, "\n", height+1)
	return strings.Join(lines[:min(len(lines), height)], "\n")
}
