package tabs

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/jask/arxivcs/core"
	"github.com/jask/arxivcs/internal/api"
	"github.com/jask/arxivcs/internal/conversation"
	"github.com/jask/arxivcs/internal/request"
	"github.com/jask/arxivcs/widgets"
)

const EmptyQueryNotice = "Type a question first"

var ChatExamples = []string{
	"Explain neural networks and their applications",
	"What is the difference between TCP and UDP protocols?",
	"How does blockchain technology work?",
	"Explain Big O notation with examples",
}

type ChatTab struct {
	client     Chatter
	opts       Options
	ctrl       *request.Controller[api.ChatResponse]
	transcript conversation.Transcript

	input   textinput.Model
	view    viewport.Model
	spinner spinner.Model
	example int
	// follow is set on every transcript change so the next render
	// scrolls to the newest message.
	follow bool

	renderer      *glamour.TermRenderer
	rendererWidth int
	rendered      map[string]string
}

func NewChatTab(client Chatter, opts Options) *ChatTab {
	t := &ChatTab{
		client:   client,
		opts:     opts,
		ctrl:     request.New[api.ChatResponse]("chat", opts.requestOptions(conversation.ErrorReply)...),
		input:    newInput("› ", "Ask a question about computer science..."),
		view:     viewport.New(80, 10),
		spinner:  newSpinner(),
		rendered: map[string]string{},
	}
	t.ctrl.Subscribe(t.onState)
	return t
}

func (t *ChatTab) ID() string    { return "chat" }
func (t *ChatTab) Title() string { return "Chat" }
func (t *ChatTab) Scope() string { return core.ScopeChat }
func (t *ChatTab) Busy() bool    { return t.ctrl.Pending() }

func (t *ChatTab) InitTab(m *core.Model) tea.Cmd { return textinput.Blink }

// Controller exposes the request state for inspection.
func (t *ChatTab) Controller() *request.Controller[api.ChatResponse] { return t.ctrl }

func (t *ChatTab) Messages() []conversation.Message { return t.transcript.Messages() }

func (t *ChatTab) Input() string { return t.input.Value() }

func (t *ChatTab) SetInput(v string) {
	t.input.SetValue(v)
	t.input.CursorEnd()
}

// NextExample puts the next example question into the input.
func (t *ChatTab) NextExample() string {
	ex := ChatExamples[t.example%len(ChatExamples)]
	t.example++
	t.SetInput(ex)
	return ex
}

// onState appends the reply for each settled request.
func (t *ChatTab) onState(s request.State[api.ChatResponse]) {
	switch s.Status {
	case request.Success:
		t.transcript.Append(conversation.NewBotMessage(s.Data, t.client.ImageURL, t.opts.now()))
	case request.Failure:
		t.transcript.Append(conversation.NewErrorMessage(t.opts.now()))
	}
	t.follow = true
}

func (t *ChatTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	if t.ctrl.Handle(msg) {
		switch s := t.ctrl.State(); s.Status {
		case request.Failure:
			m.SetError(errors.New(s.Err))
		case request.Success:
			m.SetStatus("Answer received")
		}
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
	case keys.IsAction(km, "example", t.Scope()):
		t.NextExample()
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

// Submit sends the input as a question. Blank input only sets a notice.
func (t *ChatTab) Submit(m *core.Model) tea.Cmd {
	query := strings.TrimSpace(t.input.Value())
	if query == "" {
		m.SetStatus(EmptyQueryNotice)
		return nil
	}
	t.transcript.Append(conversation.NewUserMessage(query, t.opts.now()))
	t.input.Reset()
	t.follow = true
	log.Info().Str("tab", t.ID()).Int("len", len(query)).Msg("sending question")
	run := t.ctrl.Run(func(ctx context.Context) (api.ChatResponse, error) {
		return t.client.Chat(ctx, query)
	})
	m.SetStatus("Thinking...")
	return tea.Batch(run, t.spinner.Tick)
}

func (t *ChatTab) Build(m *core.Model) widgets.Widget {
	transcript := widgets.Func(func(width, height int) string {
		inner, innerH := widgets.InnerSize(width, height)
		t.view.Width, t.view.Height = inner, innerH
		t.view.SetContent(t.renderTranscript(inner))
		if t.follow {
			t.view.GotoBottom()
			t.follow = false
		}
		return widgets.Pane{Title: "Conversation", Content: t.view.View(), Tone: toneFor(t.ctrl.Status())}.Render(width, height)
	})
	return widgets.VStack{
		Widgets: []widgets.Widget{transcript, inputPane("Ask", &t.input, widgets.ToneNormal)},
		Sizes:   []int{0, 3},
	}
}

func (t *ChatTab) renderTranscript(width int) string {
	msgs := t.transcript.Messages()
	if len(msgs) == 0 && !t.ctrl.Pending() {
		return t.welcome(width)
	}
	blocks := make([]string, 0, len(msgs)+1)
	for _, msg := range msgs {
		blocks = append(blocks, t.renderMessage(msg, width))
	}
	if t.ctrl.Pending() {
		blocks = append(blocks, accentStyle.Render("arXiv CS Expert")+" "+t.spinner.View()+mutedStyle.Render(" typing"))
	}
	return strings.Join(blocks, "\n\n")
}

func (t *ChatTab) welcome(width int) string {
	lines := []string{
		accentStyle.Render("Welcome to the arXiv CS Expert Chatbot"),
		wrap("Ask me anything about computer science research, concepts, or algorithms. I can provide explanations, code examples, and visualizations.", width),
		"",
		mutedStyle.Render("Try asking (ctrl+e cycles):"),
	}
	for _, ex := range ChatExamples {
		lines = append(lines, "  • "+ex)
	}
	return joinLines(lines...)
}

func (t *ChatTab) renderMessage(msg conversation.Message, width int) string {
	stamp := mutedStyle.Render(" · " + msg.Timestamp.Format("15:04"))
	if msg.Role == conversation.RoleUser {
		return joinLines(okStyle.Render("You")+stamp, wrap(msg.Content, width))
	}
	head := accentStyle.Render("arXiv CS Expert") + stamp
	if msg.IsError {
		return joinLines(head, errStyle.Render(wrap(msg.Content, width)))
	}
	lines := []string{head, t.markdown(msg, width)}
	if msg.Image != "" {
		lines = append(lines, "Image: "+linkStyle.Render(msg.Image))
	}
	if len(msg.Sources) > 0 {
		lines = append(lines, mutedStyle.Render("Sources:"))
		for _, src := range msg.Sources {
			line := "  • " + conversation.SourceLabel(src)
			if src.URL != "" {
				line += " " + linkStyle.Render(src.URL)
			}
			lines = append(lines, line, mutedStyle.Render(wrap("    "+conversation.SourceDetail(src), width)))
		}
	}
	return joinLines(lines...)
}

// markdown renders bot content, caching per message and width. Content is
// shown raw if the renderer cannot be built.
func (t *ChatTab) markdown(msg conversation.Message, width int) string {
	if t.renderer == nil || t.rendererWidth != width {
		r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(max(20, width)))
		if err != nil {
			log.Warn().Err(err).Msg("markdown renderer unavailable")
			return wrap(msg.Content, width)
		}
		t.renderer, t.rendererWidth = r, width
		clear(t.rendered)
	}
	if out, ok := t.rendered[msg.ID]; ok {
		return out
	}
	out, err := t.renderer.Render(msg.Content)
	if err != nil {
		log.Warn().Err(err).Str("message", msg.ID).Msg("markdown render failed")
		return wrap(msg.Content, width)
	}
	out = strings.Trim(out, "\n")
	t.rendered[msg.ID] = out
	return out
}
