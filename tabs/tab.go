package tabs

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/request"
	"github.com/jask/arxivcs/widgets"
)

type Chatter interface {
	Chat(ctx context.Context, query string) (api.ChatResponse, error)
	ImageURL(name string) string
}

type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]api.Paper, error)
}

type Visualizer interface {
	Visualize(ctx context.Context, concept string) (api.VisualizeResponse, error)
	ImageURL(name string) string
}

type ImageFetcher = api.ImageFetcher

// Options carries the settings shared by all tabs.
type Options struct {
	// DiscardStale drops results of superseded requests instead of letting
	// the last response to arrive win.
	DiscardStale bool
	MaxResults   int
	ImageDir     string
	Now          func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) requestOptions(failure string) []request.Option {
	return []request.Option{
		request.WithDiscardStale(o.DiscardStale),
		request.WithFailureMessage(failure),
	}
}

var (
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#74c7ec")).Underline(true)
)

func newInput(prompt, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = 500
	in.Focus()
	return in
}

func newSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))
}

// tickWhile advances sp on its own tick messages while busy. Dropping the
// tick when idle stops the loop until the next submit restarts it.
func tickWhile(sp *spinner.Model, busy bool, msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || tick.ID != sp.ID() || !busy {
		return nil
	}
	var cmd tea.Cmd
	*sp, cmd = sp.Update(msg)
	return cmd
}

func toneFor(s request.Status) widgets.Tone {
	switch s {
	case request.Pending:
		return widgets.ToneBusy
	case request.Success:
		return widgets.ToneOK
	case request.Failure:
		return widgets.ToneError
	default:
		return widgets.ToneNormal
	}
}

// inputPane renders a single-line input box sized to the offered width.
func inputPane(title string, in *textinput.Model, tone widgets.Tone) widgets.Widget {
	return widgets.Func(func(width, height int) string {
		inner, _ := widgets.InnerSize(width, height)
		in.Width = max(1, inner-lipgloss.Width(in.Prompt)-1)
		return widgets.Pane{Title: title, Content: in.View(), Tone: tone, Height: 3}.Render(width, height)
	})
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
