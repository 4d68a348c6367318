// Package tui is the terminal input surface: a transcript view above a
// multi-line code box, driven by a session.Controller.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/user/docgenius/internal/session"
	"github.com/user/docgenius/internal/types"
)

const (
	Placeholder = "Insira o seu código..."
	EmptyHint   = "Insira seu código ou faça o upload de um arquivo"

	maxInputRows = 5
)

// Model is the bubbletea model for the chat screen.
type Model struct {
	ctx     context.Context
	ctrl    *session.Controller
	updates *Updates
	logger  *slog.Logger
	clip    func(string) error

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	style    string
	rendered map[types.MessageID]string

	state  session.State
	status string
	width  int
	height int
	ready  bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithStyle sets the glamour style: "auto", "dark", "light", "notty" or
// any other standard style name.
func WithStyle(style string) Option {
	return func(m *Model) { m.style = style }
}

// WithContext sets the context requests are dispatched with.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.clip = fn }
}

// New creates the chat model. updates must be the Updates whose Send was
// registered with ctrl.
func New(ctrl *session.Controller, updates *Updates, opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(1)
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:      context.Background(),
		ctrl:     ctrl,
		updates:  updates,
		logger:   slog.Default(),
		clip:     clipboard.WriteAll,
		textarea: ta,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		style:    "auto",
		rendered: make(map[types.MessageID]string),
		state:    ctrl.State(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.updates.wait())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.renderer = newRenderer(m.style, m.bubbleWidth())
		m.rendered = make(map[types.MessageID]string)
		m.textarea.SetWidth(max(msg.Width-4, 10))
		m.layout()
		m.refresh()
		return m, nil

	case stateMsg:
		m.state = session.State(msg)
		if m.state.RequestInFlight {
			m.textarea.Blur()
			cmds = append(cmds, m.spinner.Tick)
		} else {
			cmds = append(cmds, m.textarea.Focus())
		}
		m.layout()
		m.refresh()
		cmds = append(cmds, m.updates.wait())
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.state.RequestInFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.reportScroll()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.updates.Close()
		return m, tea.Quit
	case "ctrl+y":
		m.copyLatest()
		return m, nil
	}

	if isScrollKey(msg) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.reportScroll()
		return m, cmd
	}

	// The input is disabled while a request is outstanding.
	if m.state.RequestInFlight {
		return m, nil
	}
	m.status = ""

	if ev, ok := keyEvent(msg); ok {
		m.syncDraft()
		eff, err := m.ctrl.Handle(m.ctx, ev)
		if err != nil {
			if errors.Is(err, session.ErrRequestInFlight) {
				return m, nil
			}
			m.logger.Error("handle key", "error", err)
			return m, nil
		}
		if eff.Submitted {
			m.textarea.Reset()
			m.state = m.ctrl.State()
			m.textarea.Blur()
			m.layout()
			m.refresh()
			return m, m.spinner.Tick
		}
		if eff.Insert != "" {
			m.textarea.InsertString(eff.Insert)
			m.syncDraft()
			m.layout()
		}
		if eff.Handled {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.syncDraft()
	m.layout()
	return m, cmd
}

// syncDraft reports the textarea's text and caret to the controller.
func (m *Model) syncDraft() {
	caret := caretOffset(&m.textarea)
	if _, err := m.ctrl.Handle(m.ctx, session.TextChanged{
		Text:  m.textarea.Value(),
		Start: caret,
		End:   caret,
	}); err != nil {
		m.logger.Error("sync draft", "error", err)
	}
}

func (m *Model) reportScroll() {
	if _, err := m.ctrl.Handle(m.ctx, session.Scrolled{
		Offset:        m.viewport.YOffset,
		ContentHeight: m.viewport.TotalLineCount(),
		ViewHeight:    m.viewport.Height,
	}); err != nil {
		m.logger.Error("report scroll", "error", err)
	}
}

func (m *Model) copyLatest() {
	doc, ok := latestDocumentation(m.state.Transcript)
	if !ok {
		m.status = "Nada para copiar"
		return
	}
	if err := m.clip(doc); err != nil {
		m.logger.Warn("copy to clipboard", "error", err)
		m.status = "Não foi possível copiar"
		return
	}
	m.status = "Documentação copiada"
}

// latestDocumentation returns the newest settled system message that is not
// a fallback.
func latestDocumentation(transcript []types.Message) (string, bool) {
	for i := len(transcript) - 1; i >= 0; i-- {
		msg := transcript[i]
		if msg.Sender != types.SenderSystem || msg.Pending || isFallback(msg.Text) {
			continue
		}
		return msg.Text, true
	}
	return "", false
}

func isFallback(text string) bool {
	return text == session.FallbackFailure || text == session.FallbackNoContent
}

// inputRows is the textarea height: one row per line, up to maxInputRows.
func inputRows(lineCount int) int {
	return min(max(lineCount, 1), maxInputRows)
}

// layout sizes the textarea and the viewport to the window.
func (m *Model) layout() {
	m.textarea.SetHeight(inputRows(m.textarea.LineCount()))
	if !m.ready {
		return
	}
	h := m.height - m.headerHeight() - (m.textarea.Height() + 2) - 1
	m.viewport.Width = m.width
	m.viewport.Height = max(h, 1)
}

// refresh re-renders the transcript and pins the view to the bottom when
// the controller is following the tail.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	if m.ctrl.ShouldScrollToBottom() {
		m.viewport.GotoBottom()
	}
}

func newRenderer(style string, width int) *glamour.TermRenderer {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	return r
}
