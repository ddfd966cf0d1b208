package tabs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arxivcs/core"
	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/request"
	"github.com/jask/arxivcs/internal/stub"
)

func TestVisualizeResolvesImageAndClearsOnNextRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"image":"foo.png","message":"ok"}`))
	}))
	defer srv.Close()
	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	tab := NewVisualizeTab(client, client, Options{})
	m := newModel(tab)
	tab.SetInput("Binary Tree")
	deliver(m, tab, results(tab.Update(m, enter)))

	if got, want := tab.ImageURL(), srv.URL+"/images/foo.png"; got != want {
		t.Fatalf("image url = %q, want %q", got, want)
	}
	if tab.Message() != "ok" {
		t.Fatalf("message = %q", tab.Message())
	}

	cmd := tab.Update(m, enter)
	if tab.ImageURL() != "" {
		t.Fatalf("previous image should be cleared when the request starts")
	}
	deliver(m, tab, results(cmd))
	if tab.ImageURL() == "" {
		t.Fatalf("image should be back after the second run")
	}
}

func TestVisualizeBlankConcept(t *testing.T) {
	be := &fakeBackend{}
	tab := NewVisualizeTab(be, nil, Options{})
	m := newModel(tab)
	if cmd := tab.Submit(m); cmd != nil {
		t.Fatalf("blank concept should not run")
	}
	if tab.Message() != EmptyConceptNotice || be.calls != 0 {
		t.Fatalf("message=%q calls=%d", tab.Message(), be.calls)
	}
}

func TestVisualizeFailure(t *testing.T) {
	tab := NewVisualizeTab(&fakeBackend{err: errors.New("500")}, nil, Options{})
	m := newModel(tab)
	tab.SetInput("Hash Table")
	deliver(m, tab, results(tab.Update(m, enter)))
	if tab.Message() != VisualizeFailure || tab.HasImage() {
		t.Fatalf("message=%q image=%v", tab.Message(), tab.HasImage())
	}
}

func TestVisualizeSaveDownloadsImage(t *testing.T) {
	srv := httptest.NewServer(stub.New(stub.Options{}).Router())
	defer srv.Close()
	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "images")
	tab := NewVisualizeTab(client, client, Options{ImageDir: dir})
	m := newModel(tab)

	if cmd := tab.Update(m, tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Fatalf("save without image should not run")
	}
	if status, _ := m.Status(); status != NoImageNotice {
		t.Fatalf("status = %q", status)
	}

	tab.NextExample()
	deliver(m, tab, results(tab.Update(m, enter)))
	if !tab.HasImage() {
		t.Fatalf("expected an image, got %+v", tab.Controller().State())
	}
	deliver(m, tab, results(tab.Update(m, tea.KeyMsg{Type: tea.KeyCtrlS})))

	path := tab.SavedPath()
	if filepath.Dir(path) != dir {
		t.Fatalf("saved to %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved image: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("saved file is not a png")
	}
}

func TestVisualizeLastResultWinsByDefault(t *testing.T) {
	be := &fakeBackend{}
	tab := NewVisualizeTab(be, nil, Options{})
	m := newModel(tab)

	be.vis = api.VisualizeResponse{Image: "first.png"}
	tab.SetInput("first")
	first := tab.Update(m, enter)
	firstMsgs := results(first)

	be.vis = api.VisualizeResponse{Image: "second.png"}
	tab.SetInput("second")
	secondMsgs := results(tab.Update(m, enter))

	deliver(m, tab, secondMsgs)
	deliver(m, tab, firstMsgs)
	if tab.ImageURL() != "http://backend/images/first.png" {
		t.Fatalf("late result should win, got %q", tab.ImageURL())
	}
}

func TestVisualizeDiscardStale(t *testing.T) {
	be := &fakeBackend{}
	tab := NewVisualizeTab(be, nil, Options{DiscardStale: true})
	m := newModel(tab)

	be.vis = api.VisualizeResponse{Image: "first.png"}
	tab.SetInput("first")
	firstMsgs := results(tab.Update(m, enter))

	be.vis = api.VisualizeResponse{Image: "second.png"}
	tab.SetInput("second")
	secondMsgs := results(tab.Update(m, enter))

	deliver(m, tab, secondMsgs)
	deliver(m, tab, firstMsgs)
	if tab.ImageURL() != "http://backend/images/second.png" {
		t.Fatalf("stale result overwrote newer one: %q", tab.ImageURL())
	}
	if tab.Controller().Status() != request.Success {
		t.Fatalf("status = %s", tab.Controller().Status())
	}
}

func TestSaveCommandDisabledWithoutImage(t *testing.T) {
	be := &fakeBackend{}
	chat := NewChatTab(be, Options{})
	search := NewSearchTab(be, Options{})
	vis := NewVisualizeTab(be, nil, Options{})
	reg := core.NewCommandRegistry(Commands(chat, search, vis))
	m := newModel(chat, search, vis)

	res := reg.Search("save", core.ScopeVisualize, m)
	if len(res) != 1 || !res[0].Blocked() || res[0].Reason != NoImageNotice {
		t.Fatalf("save command = %+v", res)
	}
	if got := reg.Search("save", core.ScopeChat, m); len(got) != 0 {
		t.Fatalf("save command should be scoped to visualize, got %+v", got)
	}
	msg := reg.Execute("nav:search", m)()
	if nav, ok := msg.(core.NavigateMsg); !ok || nav.Path != "/search" {
		t.Fatalf("nav command emitted %#v", msg)
	}
}

type fakeFetcher struct{ fetched []string }

func (f *fakeFetcher) FetchImage(_ context.Context, name string, w io.Writer) (int64, error) {
	f.fetched = append(f.fetched, name)
	n, err := w.Write([]byte("\x89PNG" + name))
	return int64(n), err
}

func TestSaveOfReplacedImageIsDropped(t *testing.T) {
	be := &fakeBackend{}
	fetch := &fakeFetcher{}
	dir := t.TempDir()
	tab := NewVisualizeTab(be, fetch, Options{ImageDir: dir})
	m := newModel(tab)

	be.vis = api.VisualizeResponse{Image: "old.png"}
	tab.SetInput("Binary Tree")
	deliver(m, tab, results(tab.Update(m, enter)))
	oldSave := results(tab.Save(m))

	be.vis = api.VisualizeResponse{Image: "new.png"}
	tab.SetInput("Hash Table")
	deliver(m, tab, results(tab.Update(m, enter)))
	deliver(m, tab, oldSave)

	if tab.ImageURL() != "http://backend/images/new.png" {
		t.Fatalf("image = %q", tab.ImageURL())
	}
	if tab.SavedPath() != "" {
		t.Fatalf("save of the old image shown under the new one: %q", tab.SavedPath())
	}
	if status, _ := m.Status(); strings.Contains(status, "Saved") {
		t.Fatalf("status = %q", status)
	}

	deliver(m, tab, results(tab.Save(m)))
	if got, want := tab.SavedPath(), filepath.Join(dir, "new.png"); got != want {
		t.Fatalf("saved path = %q, want %q", got, want)
	}
	if len(fetch.fetched) != 2 || fetch.fetched[1] != "new.png" {
		t.Fatalf("fetched %v", fetch.fetched)
	}
}

func TestVisualizeExamplesCycle(t *testing.T) {
	tab := NewVisualizeTab(&fakeBackend{}, nil, Options{})
	for _, want := range append(VisualizeExamples, VisualizeExamples[0]) {
		if got := tab.NextExample(); got != want {
			t.Fatalf("example = %q, want %q", got, want)
		}
	}
}
