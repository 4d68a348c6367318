package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/docgenius/internal/session"
)

// keyEvent maps the keys the controller owns. Most terminals cannot tell
// shift+enter from enter, so alt+enter and ctrl+j also break the line.
func keyEvent(msg tea.KeyMsg) (session.KeyPressed, bool) {
	switch msg.String() {
	case "tab":
		return session.KeyPressed{Key: session.KeyTab}, true
	case "shift+enter", "alt+enter", "ctrl+j":
		return session.KeyPressed{Key: session.KeyEnter, Shift: true}, true
	case "enter":
		return session.KeyPressed{Key: session.KeyEnter}, true
	}
	return session.KeyPressed{}, false
}

// caretOffset returns the textarea cursor as a rune offset into its value.
func caretOffset(ta *textarea.Model) int {
	lines := strings.Split(ta.Value(), "\n")
	row := ta.Line()
	if row >= len(lines) {
		row = len(lines) - 1
	}
	offset := 0
	for _, l := range lines[:row] {
		offset += utf8.RuneCountInString(l) + 1
	}
	info := ta.LineInfo()
	col := info.StartColumn + info.ColumnOffset
	if n := utf8.RuneCountInString(lines[row]); col > n {
		col = n
	}
	return offset + col
}

func isScrollKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "pgup", "pgdown":
		return true
	}
	return false
}
