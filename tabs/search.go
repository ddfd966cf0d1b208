package tabs

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/jask/arxivcs/core"
	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/request"
	"github.com/jask/arxivcs/widgets"
)

const (
	EmptySearchNotice = "Please enter a search query"
	NoPapersNotice    = "No papers found matching your query"
	SearchFailure     = "Error searching papers. Please try again later."
)

var maxResultChoices = []int{5, 10, 20, 50}

type SearchTab struct {
	client Searcher
	ctrl   *request.Controller[[]api.Paper]
	// notice is a local validation message; it never touches ctrl.
	notice     string
	maxResults int
	lastQuery  string

	input   textinput.Model
	view    viewport.Model
	spinner spinner.Model
	top     bool
}

func NewSearchTab(client Searcher, opts Options) *SearchTab {
	n := opts.MaxResults
	if n <= 0 {
		n = 10
	}
	return &SearchTab{
		client:     client,
		ctrl:       request.New[[]api.Paper]("search", opts.requestOptions(SearchFailure)...),
		maxResults: n,
		input:      newInput("› ", "Search for papers (e.g. neural networks, graph algorithms)"),
		view:       viewport.New(80, 10),
		spinner:    newSpinner(),
	}
}

func (t *SearchTab) ID() string    { return "search" }
func (t *SearchTab) Title() string { return "Search" }
func (t *SearchTab) Scope() string { return core.ScopeSearch }
func (t *SearchTab) Busy() bool    { return t.ctrl.Pending() }

func (t *SearchTab) Controller() *request.Controller[[]api.Paper] { return t.ctrl }
func (t *SearchTab) MaxResults() int                              { return t.maxResults }

func (t *SearchTab) SetInput(v string) {
	t.input.SetValue(v)
	t.input.CursorEnd()
}

// Results are only shown for a successful search.
func (t *SearchTab) Results() []api.Paper {
	if t.ctrl.Status() != request.Success {
		return []api.Paper{}
	}
	return slices.Clone(t.ctrl.State().Data)
}

// Message is the single line shown above the results: a local notice, the
// failure text, or the empty-result notice.
func (t *SearchTab) Message() string {
	if t.notice != "" {
		return t.notice
	}
	s := t.ctrl.State()
	switch s.Status {
	case request.Failure:
		return s.Err
	case request.Success:
		if len(s.Data) == 0 {
			return NoPapersNotice
		}
	}
	return ""
}

// CycleMaxResults advances to the next preset, wrapping around.
func (t *SearchTab) CycleMaxResults() int {
	next := maxResultChoices[0]
	for _, n := range maxResultChoices {
		if n > t.maxResults {
			next = n
			break
		}
	}
	t.maxResults = next
	return next
}

func (t *SearchTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	if t.ctrl.Handle(msg) {
		switch s := t.ctrl.State(); s.Status {
		case request.Failure:
			m.SetStatus("Search failed")
		case request.Success:
			m.SetStatus(fmt.Sprintf("Found %d papers", len(s.Data)))
		}
		t.top = true
		return nil
	}
	if cmd := tickWhile(&t.spinner, t.ctrl.Pending(), msg); cmd != nil {
		return cmd
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd
	}
	keys := m.Keys()
	switch {
	case keys.IsAction(km, "submit", t.Scope()):
		return t.Submit(m)
	case keys.IsAction(km, "max-results", t.Scope()):
		m.SetStatus(fmt.Sprintf("Max results: %d", t.CycleMaxResults()))
		return nil
	case keys.IsAction(km, "scroll-up", t.Scope()), keys.IsAction(km, "scroll-down", t.Scope()):
		var cmd tea.Cmd
		t.view, cmd = t.view.Update(km)
		return cmd
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *SearchTab) Submit(m *core.Model) tea.Cmd {
	query := strings.TrimSpace(t.input.Value())
	if query == "" {
		t.notice = EmptySearchNotice
		return nil
	}
	t.notice = ""
	t.lastQuery = query
	limit := t.maxResults
	log.Info().Str("tab", t.ID()).Str("query", query).Int("max_results", limit).Msg("searching papers")
	run := t.ctrl.Run(func(ctx context.Context) ([]api.Paper, error) {
		return t.client.Search(ctx, query, limit)
	})
	m.SetStatus("Searching arXiv...")
	return tea.Batch(run, t.spinner.Tick)
}

func (t *SearchTab) Build(m *core.Model) widgets.Widget {
	form := widgets.HStack{
		Widgets: []widgets.Widget{
			inputPane("Search arXiv CS papers", &t.input, widgets.ToneNormal),
			widgets.Pane{Title: "Max", Content: fmt.Sprintf("%d results", t.maxResults), Height: 3},
		},
		Sizes: []int{0, 16},
		Gap:   1,
	}
	results := widgets.Func(func(width, height int) string {
		inner, innerH := widgets.InnerSize(width, height)
		t.view.Width, t.view.Height = inner, innerH
		t.view.SetContent(t.renderResults(inner))
		if t.top {
			t.view.GotoTop()
			t.top = false
		}
		return widgets.Pane{Title: "Results", Content: t.view.View(), Tone: toneFor(t.ctrl.Status())}.Render(width, height)
	})
	return widgets.VStack{Widgets: []widgets.Widget{form, results}, Sizes: []int{3, 0}}
}

func (t *SearchTab) renderResults(width int) string {
	lines := make([]string, 0, 8)
	if msg := t.Message(); msg != "" {
		style := mutedStyle
		if t.notice != "" || t.ctrl.Status() == request.Failure {
			style = errStyle
		}
		lines = append(lines, style.Render(msg), "")
	}
	switch t.ctrl.Status() {
	case request.Idle:
		if t.notice == "" {
			lines = append(lines, mutedStyle.Render("Search arXiv computer science papers. ctrl+n changes how many results come back."))
		}
	case request.Pending:
		lines = append(lines, t.spinner.View()+" Searching for "+accentStyle.Render(t.lastQuery)+"...")
	case request.Success:
		papers := t.ctrl.State().Data
		if len(papers) > 0 {
			lines = append(lines, okStyle.Render(fmt.Sprintf("Found %d papers", len(papers))), "")
		}
		for i, p := range papers {
			lines = append(lines, renderPaper(i+1, p, width), "")
		}
	}
	return joinLines(lines...)
}

func renderPaper(n int, p api.Paper, width int) string {
	meta := "arXiv:" + p.ID
	if p.Published != "" {
		meta += " · " + p.Published
	}
	lines := []string{
		accentStyle.Render(fmt.Sprintf("%d. %s", n, p.Title)),
		mutedStyle.Render(meta),
	}
	if len(p.Authors) > 0 {
		lines = append(lines, ansi.Truncate(strings.Join(p.Authors, ", "), width, "…"))
	}
	if abstract := strings.TrimSpace(p.Abstract); abstract != "" {
		lines = append(lines, wrap(abstract, width))
	}
	lines = append(lines, linkStyle.Render(p.AbsURL()))
	return joinLines(lines...)
}
