package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Tone picks the border colour of a pane.
type Tone int

const (
	ToneNormal Tone = iota
	ToneBusy
	ToneOK
	ToneError
)

func (t Tone) color() lipgloss.Color {
	switch t {
	case ToneBusy:
		return lipgloss.Color("#f9e2af")
	case ToneOK:
		return lipgloss.Color("#a6e3a1")
	case ToneError:
		return lipgloss.Color("#f38ba8")
	default:
		return lipgloss.Color("#6c7086")
	}
}

// Pane draws a rounded border with the title set into the top edge.
type Pane struct {
	Title   string
	Content string
	Tone    Tone
	// Height caps the pane; zero fills the offered height.
	Height int
}

func (p Pane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	h := height
	if p.Height > 0 && p.Height < h {
		h = p.Height
	}
	if h < 3 {
		h = 3
	}
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(p.Tone.color())
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)

	innerWidth := width - 2
	contentWidth := innerWidth - 2

	titleText := ""
	if t := strings.TrimSpace(p.Title); t != "" {
		titleText = " " + t + " "
		if ansi.StringWidth(titleText) > innerWidth {
			titleText = " " + ansi.Truncate(t, max(1, innerWidth-2), "") + " "
		}
	}
	dashes := max(0, innerWidth-ansi.StringWidth(titleText))
	leftDash := min(1, dashes)
	rightDash := dashes - leftDash

	v := borderStyle.Render("│")
	top := borderStyle.Render("╭"+strings.Repeat("─", leftDash)) +
		titleStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", rightDash)+"╮")

	innerHeight := h - 2
	lines := strings.Split(p.Content, "\n")
	rows := make([]string, 0, h)
	rows = append(rows, top)
	for i := 0; i < innerHeight; i++ {
		line := ""
		if i < len(lines) {
			line = ansi.Truncate(lines[i], contentWidth, "")
		}
		rows = append(rows, v+" "+padRightANSI(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}

// InnerSize is the content area a pane of the given size offers.
func InnerSize(width, height int) (int, int) {
	return max(1, width-4), max(1, height-2)
}
