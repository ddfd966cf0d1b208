package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var popupFrame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#89b4fa")).
	Padding(1, 2)

// RenderPopup frames popup and draws it centred on a width x height canvas
// built from base. Rows and columns outside the card keep the base text.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := canvasRows(base, width, height)
	card := strings.Split(popupFrame.Render(popup), "\n")
	cardW := 0
	for _, row := range card {
		cardW = max(cardW, ansi.StringWidth(row))
	}
	if cardW == 0 {
		return strings.Join(canvas, "\n")
	}
	left := max(0, (width-cardW)/2)
	top := max(0, (height-len(card))/2)
	for i, row := range card {
		y := top + i
		if y >= height {
			break
		}
		canvas[y] = splice(canvas[y], row, left, cardW, width)
	}
	return strings.Join(canvas, "\n")
}

// splice replaces columns [at, at+span) of line with insert.
func splice(line, insert string, at, span, width int) string {
	insert = padRightANSI(insert, min(span, width-at))
	end := at + ansi.StringWidth(insert)
	return ansi.Cut(line, 0, at) + insert + ansi.Cut(line, end, width)
}

// canvasRows returns exactly height rows, each padded or clipped to width.
func canvasRows(s string, width, height int) []string {
	rows := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		if i < len(rows) {
			out[i] = padRightANSI(rows[i], width)
		} else {
			out[i] = strings.Repeat(" ", width)
		}
	}
	return out
}

func padRightANSI(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
