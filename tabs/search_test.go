package tabs

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/request"
)

func TestSearchNetworkFailureLeavesResultsEmpty(t *testing.T) {
	be := &fakeBackend{err: errors.New("dial tcp: connection refused")}
	tab := NewSearchTab(be, Options{})
	m := newModel(tab)
	tab.SetInput("neural networks")
	deliver(m, tab, results(tab.Update(m, enter)))

	if tab.Controller().Status() != request.Failure {
		t.Fatalf("status = %s", tab.Controller().Status())
	}
	if tab.Message() != SearchFailure {
		t.Fatalf("message = %q", tab.Message())
	}
	if got := tab.Results(); got == nil || len(got) != 0 {
		t.Fatalf("results = %+v", got)
	}
}

func TestSearchBlankQueryIsLocal(t *testing.T) {
	be := &fakeBackend{}
	tab := NewSearchTab(be, Options{})
	m := newModel(tab)
	tab.SetInput(" \t ")
	if cmd := tab.Update(m, enter); cmd != nil {
		t.Fatalf("blank query should not run")
	}
	if tab.Message() != EmptySearchNotice || be.calls != 0 {
		t.Fatalf("message=%q calls=%d", tab.Message(), be.calls)
	}
	if tab.Controller().Status() != request.Idle {
		t.Fatalf("controller should stay idle")
	}
}

func TestSearchEmptyResult(t *testing.T) {
	tab := NewSearchTab(&fakeBackend{papers: []api.Paper{}}, Options{})
	m := newModel(tab)
	tab.SetInput("zzzz")
	deliver(m, tab, results(tab.Update(m, enter)))
	if tab.Message() != NoPapersNotice {
		t.Fatalf("message = %q", tab.Message())
	}
	if !strings.Contains(tab.Build(m).Render(90, 20), NoPapersNotice) {
		t.Fatalf("empty notice not rendered")
	}
}

func TestSearchRendersPapersAndClearsWhilePending(t *testing.T) {
	be := &fakeBackend{papers: []api.Paper{{
		ID:        "1706.03762",
		Title:     "Attention Is All You Need",
		Authors:   []string{"Vaswani", "Shazeer"},
		Abstract:  "The dominant sequence transduction models.",
		Published: "2017-06-12",
	}}}
	tab := NewSearchTab(be, Options{MaxResults: 20})
	m := newModel(tab)
	tab.SetInput("attention")
	deliver(m, tab, results(tab.Update(m, enter)))

	if be.limits[0] != 20 {
		t.Fatalf("max_results sent = %d", be.limits[0])
	}
	view := tab.Build(m).Render(100, 30)
	for _, want := range []string{"Found 1 papers", "Attention Is All You Need", "arXiv:1706.03762", "https://arxiv.org/abs/1706.03762"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	tab.SetInput("transformers")
	tab.Update(m, enter)
	if len(tab.Results()) != 0 {
		t.Fatalf("results should be hidden while the next search is pending")
	}
}

func TestSearchCyclesMaxResults(t *testing.T) {
	be := &fakeBackend{}
	tab := NewSearchTab(be, Options{})
	m := newModel(tab)
	want := []int{20, 50, 5, 10}
	for _, n := range want {
		tab.Update(m, tea.KeyMsg{Type: tea.KeyCtrlN})
		if tab.MaxResults() != n {
			t.Fatalf("max results = %d, want %d", tab.MaxResults(), n)
		}
	}
}
