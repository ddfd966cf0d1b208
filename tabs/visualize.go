package tabs

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jask/arxivcs/core"
	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/request"
	"github.com/jask/arxivcs/widgets"
)

const (
	EmptyConceptNotice = "Please enter a concept to visualize"
	VisualizeFailure   = "Error generating visualization. Please try again later."
	SaveFailure        = "Could not save the image."
	NoImageNotice      = "Generate a visualization first"
)

var VisualizeExamples = []string{
	"Binary Tree",
	"Neural Network",
	"Sorting Algorithm",
	"Hash Table",
	"TCP/IP Protocol",
	"Blockchain",
}

type VisualizeTab struct {
	client  Visualizer
	fetcher ImageFetcher
	dir     string
	ctrl    *request.Controller[api.VisualizeResponse]
	saver   *request.Controller[string]
	notice  string
	example int

	input   textinput.Model
	spinner spinner.Model
}

// NewVisualizeTab builds the tab. A nil fetcher disables saving images.
func NewVisualizeTab(client Visualizer, fetcher ImageFetcher, opts Options) *VisualizeTab {
	return &VisualizeTab{
		client:  client,
		fetcher: fetcher,
		dir:     opts.ImageDir,
		ctrl:    request.New[api.VisualizeResponse]("visualize", opts.requestOptions(VisualizeFailure)...),
		// saves of a replaced image are dropped on Reset
		saver: request.New[string]("visualize:save",
			request.WithOverlap(request.OverlapReject),
			request.WithDiscardStale(true),
			request.WithFailureMessage(SaveFailure),
		),
		input:   newInput("› ", "Enter a CS concept (e.g. Binary Tree, Neural Network)"),
		spinner: newSpinner(),
	}
}

func (t *VisualizeTab) ID() string    { return "visualize" }
func (t *VisualizeTab) Title() string { return "Visualize" }
func (t *VisualizeTab) Scope() string { return core.ScopeVisualize }
func (t *VisualizeTab) Busy() bool    { return t.ctrl.Pending() || t.saver.Pending() }

func (t *VisualizeTab) Controller() *request.Controller[api.VisualizeResponse] { return t.ctrl }

func (t *VisualizeTab) SetInput(v string) {
	t.input.SetValue(v)
	t.input.CursorEnd()
}

// ImageURL is the resolved URL of the current image, empty unless the last
// request succeeded.
func (t *VisualizeTab) ImageURL() string {
	s := t.ctrl.State()
	if s.Status != request.Success {
		return ""
	}
	return t.client.ImageURL(s.Data.Image)
}

func (t *VisualizeTab) HasImage() bool { return t.ImageURL() != "" }

func (t *VisualizeTab) Message() string {
	if t.notice != "" {
		return t.notice
	}
	s := t.ctrl.State()
	switch s.Status {
	case request.Failure:
		return s.Err
	case request.Success:
		return s.Data.Message
	}
	return ""
}

// SavedPath is where the last save wrote the image.
func (t *VisualizeTab) SavedPath() string {
	if t.saver.Status() != request.Success {
		return ""
	}
	return t.saver.State().Data
}

func (t *VisualizeTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	if t.ctrl.Handle(msg) {
		switch t.ctrl.Status() {
		case request.Success:
			m.SetStatus("Visualization ready")
		case request.Failure:
			m.SetStatus("Visualization failed")
		}
		return nil
	}
	if t.saver.Handle(msg) {
		switch s := t.saver.State(); s.Status {
		case request.Success:
			m.SetStatus("Saved image to " + s.Data)
		case request.Failure:
			m.SetError(errors.New(s.Err))
		}
		return nil
	}
	if cmd := tickWhile(&t.spinner, t.Busy(), msg); cmd != nil {
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
	case keys.IsAction(km, "example", t.Scope()):
		t.NextExample()
		return nil
	case keys.IsAction(km, "save-image", t.Scope()):
		return t.Save(m)
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

// NextExample puts the next example concept into the input.
func (t *VisualizeTab) NextExample() string {
	ex := VisualizeExamples[t.example%len(VisualizeExamples)]
	t.example++
	t.SetInput(ex)
	return ex
}

// Submit clears the previous image before the new request starts.
func (t *VisualizeTab) Submit(m *core.Model) tea.Cmd {
	concept := strings.TrimSpace(t.input.Value())
	if concept == "" {
		t.notice = EmptyConceptNotice
		return nil
	}
	t.notice = ""
	t.ctrl.Reset()
	t.saver.Reset()
	log.Info().Str("tab", t.ID()).Str("concept", concept).Msg("requesting visualization")
	run := t.ctrl.Run(func(ctx context.Context) (api.VisualizeResponse, error) {
		return t.client.Visualize(ctx, concept)
	})
	m.SetStatus("Generating visualization...")
	return tea.Batch(run, t.spinner.Tick)
}

// Save downloads the current image into the image directory.
func (t *VisualizeTab) Save(m *core.Model) tea.Cmd {
	if !t.HasImage() {
		m.SetStatus(NoImageNotice)
		return nil
	}
	if t.fetcher == nil || strings.TrimSpace(t.dir) == "" {
		m.SetStatus("Saving images is not configured")
		return nil
	}
	image := t.ctrl.State().Data.Image
	path := filepath.Join(t.dir, filepath.Base(image))
	fetcher := t.fetcher
	run := t.saver.Run(func(ctx context.Context) (string, error) {
		if err := api.SaveImage(ctx, fetcher, image, path); err != nil {
			return "", err
		}
		return path, nil
	})
	if run == nil {
		return nil
	}
	m.SetStatus("Saving image...")
	return tea.Batch(run, t.spinner.Tick)
}

func (t *VisualizeTab) Build(m *core.Model) widgets.Widget {
	examples := widgets.Func(func(width, height int) string {
		next := t.example % len(VisualizeExamples)
		inner, innerH := widgets.InnerSize(width, height)
		content := widgets.List{Title: "ctrl+e fills in:", Items: VisualizeExamples, Active: next}.Render(inner, innerH)
		return widgets.Pane{Title: "Examples", Content: content}.Render(width, height)
	})
	result := widgets.Func(func(width, height int) string {
		inner, _ := widgets.InnerSize(width, height)
		return widgets.Pane{Title: "Visualization", Content: t.renderResult(inner), Tone: toneFor(t.ctrl.Status())}.Render(width, height)
	})
	body := widgets.HStack{Widgets: []widgets.Widget{result, examples}, Sizes: []int{0, 28}, Gap: 1}
	return widgets.VStack{
		Widgets: []widgets.Widget{inputPane("Concept", &t.input, widgets.ToneNormal), body},
		Sizes:   []int{3, 0},
	}
}

func (t *VisualizeTab) renderResult(width int) string {
	lines := make([]string, 0, 6)
	s := t.ctrl.State()
	if t.notice != "" {
		lines = append(lines, errStyle.Render(t.notice), "")
	}
	switch s.Status {
	case request.Idle:
		if t.notice == "" {
			lines = append(lines, mutedStyle.Render(wrap("Generate a diagram for a computer science concept. The backend renders it and the image can be saved locally with ctrl+s.", width)))
		}
	case request.Pending:
		lines = append(lines, t.spinner.View()+" Generating visualization...")
	case request.Failure:
		lines = append(lines, errStyle.Render(wrap(s.Err, width)))
	case request.Success:
		if s.Data.Message != "" {
			lines = append(lines, okStyle.Render(wrap(s.Data.Message, width)), "")
		}
		lines = append(lines, "Image: "+linkStyle.Render(t.ImageURL()))
		switch t.saver.Status() {
		case request.Pending:
			lines = append(lines, t.spinner.View()+" Saving...")
		case request.Success:
			lines = append(lines, okStyle.Render("Saved to "+t.SavedPath()))
		case request.Failure:
			lines = append(lines, errStyle.Render(t.saver.State().Err))
		}
	}
	return joinLines(lines...)
}
