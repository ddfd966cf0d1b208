package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/config"
	"github.com/jask/arxivcs/internal/stub"
	"github.com/jask/arxivcs/tabs"
)

func stubClient(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(stub.New(stub.Options{FailToken: stub.DefaultFailToken}).Router())
	t.Cleanup(srv.Close)
	c, err := api.New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestRunSearchPrintsPapers(t *testing.T) {
	client := stubClient(t)
	var out, errOut bytes.Buffer

	require.NoError(t, runSearch(context.Background(), client, "neural networks", 2, &out, &errOut))
	require.Contains(t, out.String(), "Found 2 papers")
	require.Contains(t, out.String(), "https://arxiv.org/abs/")
	require.Empty(t, errOut.String())

	out.Reset()
	require.NoError(t, runSearch(context.Background(), client, "zzzz qqqq", 5, &out, &errOut))
	require.Contains(t, out.String(), tabs.NoPapersNotice)
}

func TestRunSearchFailurePrintsGenericMessage(t *testing.T) {
	client := stubClient(t)
	var out, errOut bytes.Buffer

	err := runSearch(context.Background(), client, "graphs #fail", 5, &out, &errOut)
	require.ErrorIs(t, err, errFailed)
	require.Equal(t, tabs.SearchFailure+"\n", errOut.String())
	require.Empty(t, out.String())
}

func TestRunAskRaw(t *testing.T) {
	client := stubClient(t)
	var out, errOut bytes.Buffer

	require.NoError(t, runAsk(context.Background(), client, "draw a diagram of attention", true, &out, &errOut))
	require.Contains(t, out.String(), "**You asked:** draw a diagram of attention")
	require.Contains(t, out.String(), "Image: "+client.BaseURL()+"/images/")
	require.Contains(t, out.String(), "Sources:")

	err := runAsk(context.Background(), client, "  ", true, &out, &errOut)
	require.EqualError(t, err, tabs.EmptyQueryNotice)
}

func TestRunVisualizeSaves(t *testing.T) {
	client := stubClient(t)
	dir := filepath.Join(t.TempDir(), "img")
	var out, errOut bytes.Buffer

	require.NoError(t, runVisualize(context.Background(), client, "Binary Tree", dir, &out, &errOut))
	require.Contains(t, out.String(), "Visualization of Binary Tree created successfully")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	err = runVisualize(context.Background(), client, "Tree #fail", "", &out, &errOut)
	require.ErrorIs(t, err, errFailed)
	require.Contains(t, errOut.String(), tabs.VisualizeFailure)
}

func TestBuildModelAppliesConfig(t *testing.T) {
	client, err := api.New("")
	require.NoError(t, err)
	cfg := config.Config{
		Search: config.SearchConfig{MaxResults: 20},
		UI:     config.UIConfig{StartRoute: "/visualize"},
		Keys:   map[string][]string{"open-route-prompt": {"ctrl+o"}},
	}
	m := buildModel(cfg, client)
	m.Navigate(cfg.UI.StartRoute)
	require.Equal(t, "visualize", m.ActiveTab().ID())
	require.Equal(t, "ctrl+o", m.Keys().KeyFor("open-route-prompt", "tab:visualize"))

	m.Navigate("/unknown")
	require.Equal(t, "/", m.Path())
	require.Equal(t, "chat", m.ActiveTab().ID())
}

func TestDescribeConfigReportsRedirect(t *testing.T) {
	got := describeConfig(config.Config{
		Backend: config.BackendConfig{BaseURL: "http://localhost:8000"},
		UI:      config.UIConfig{StartRoute: "/papers"},
	})
	require.Contains(t, got, "start=/ (redirected from /papers)")
	require.Contains(t, got, "timeout=none")
}

func TestRunSearchRejectsOutOfRangeMaxResults(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL)
	require.NoError(t, err)

	for _, n := range []int{0, -3, 101} {
		var out, errOut bytes.Buffer
		err := runSearch(context.Background(), client, "graphs", n, &out, &errOut)
		require.ErrorContains(t, err, "between 1 and 100")
		require.NotErrorIs(t, err, errFailed)
		require.Empty(t, out.String())
	}
	require.Zero(t, calls.Load())
}

func TestStubOptionsPapersReplaceCorpus(t *testing.T) {
	require.Nil(t, stubOptions(0, "", 0, 1).Papers)

	opts := stubOptions(0, stub.DefaultFailToken, 5, 42)
	require.Len(t, opts.Papers, 5)
	require.Equal(t, stub.DefaultFailToken, opts.FailToken)
	require.Equal(t, opts.Papers, stubOptions(0, "", 5, 42).Papers)
}
