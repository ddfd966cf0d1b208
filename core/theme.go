package core

import "github.com/charmbracelet/lipgloss"

// palette is Catppuccin Mocha.
type palette struct {
	text, muted, border lipgloss.Color
	bar, panel          lipgloss.Color
	accent, tabOff      lipgloss.Color
	ok, busy, failure   lipgloss.Color
}

var mocha = palette{
	text:    "#cdd6f4",
	muted:   "#a6adc8",
	border:  "#585b70",
	bar:     "#181825",
	panel:   "#313244",
	accent:  "#89b4fa",
	tabOff:  "#7f849c",
	ok:      "#a6e3a1",
	busy:    "#f9e2af",
	failure: "#f38ba8",
}

type theme struct {
	base                  lipgloss.Style
	title, path, divider  lipgloss.Style
	tabOn, tabOff         lipgloss.Style
	header, footer        lipgloss.Style
	footerKey, footerDesc lipgloss.Style
	statusOK, statusBusy  lipgloss.Style
	statusErr             lipgloss.Style
}

func newTheme(p palette) theme {
	on := func(bg lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Background(bg) }
	return theme{
		base:       lipgloss.NewStyle().Foreground(p.text),
		title:      on(p.bar).Foreground(p.accent).Bold(true),
		path:       on(p.bar).Foreground(p.muted),
		divider:    on(p.bar).Foreground(p.border),
		tabOn:      on(p.panel).Foreground(p.accent).Bold(true).Padding(0, 1),
		tabOff:     on(p.bar).Foreground(p.tabOff).Padding(0, 1),
		header:     on(p.bar).Foreground(p.text),
		footer:     on(p.bar),
		footerKey:  on(p.bar).Foreground(p.accent).Bold(true),
		footerDesc: on(p.bar).Foreground(p.muted),
		statusOK:   on(p.panel).Foreground(p.ok),
		statusBusy: on(p.panel).Foreground(p.busy),
		statusErr:  on(p.panel).Foreground(p.failure),
	}
}

var ui = newTheme(mocha)
