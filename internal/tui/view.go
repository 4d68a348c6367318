package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/docgenius/internal/session"
	"github.com/user/docgenius/internal/types"
)

const appTitle = "DocGenius"

func (m Model) View() string {
	if !m.ready {
		return "\n  Carregando..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(inputStyle.Width(max(m.width-2, 10)).Render(m.textarea.View()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) headerHeight() int {
	return lipgloss.Height(m.renderHeader()) + 1
}

// The title is large on an empty transcript and compact once a conversation
// has started.
func (m Model) renderHeader() string {
	if len(m.state.Transcript) == 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleLargeStyle.Render(appTitle))
	}
	return titleStyle.Render(appTitle)
}

func (m Model) renderFooter() string {
	send := sendStyle.Render("Enviar")
	if m.state.RequestInFlight {
		send = statusStyle.Render("Enviando...")
	}
	help := statusStyle.Render("enter enviar · alt+enter nova linha · tab indentar · ctrl+y copiar · esc sair")
	if m.status != "" {
		help = statusStyle.Render(m.status)
	}
	gap := max(m.width-lipgloss.Width(help)-lipgloss.Width(send), 1)
	return help + strings.Repeat(" ", gap) + send
}

func (m *Model) renderTranscript() string {
	if len(m.state.Transcript) == 0 {
		return lipgloss.Place(m.width, max(m.viewport.Height, 1),
			lipgloss.Center, lipgloss.Center, hintStyle.Render(EmptyHint))
	}

	blocks := make([]string, 0, len(m.state.Transcript))
	for _, msg := range m.state.Transcript {
		blocks = append(blocks, m.renderMessage(msg))
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderMessage(msg types.Message) string {
	switch {
	case msg.Sender == types.SenderUser:
		box := userStyle.MaxWidth(m.bubbleWidth() + 4).Render(wrap(msg.Text, m.bubbleWidth()))
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, box)
	case msg.Pending:
		return pendingStyle.Render(m.spinner.View() + " " + session.PendingText)
	case isFallback(msg.Text):
		return fallbackStyle.Render(msg.Text)
	}

	if out, ok := m.rendered[msg.ID]; ok {
		return out
	}
	out := systemStyle.Render(wrap(msg.Text, m.bubbleWidth()))
	if m.renderer != nil {
		if md, err := m.renderer.Render(msg.Text); err == nil {
			out = strings.TrimRight(md, "\n")
		} else {
			m.logger.Warn("render markdown", "message_id", uint64(msg.ID), "error", err)
		}
	}
	m.rendered[msg.ID] = out
	return out
}

func (m Model) bubbleWidth() int {
	return max(m.width*3/4, 20)
}

func wrap(text string, width int) string {
	if lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
