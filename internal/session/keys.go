package session

import "unicode/utf8"

// Indent is what Tab inserts at the caret.
const Indent = "    "

// Key is a key the controller assigns behavior to.
type Key int

const (
	KeyOther Key = iota
	KeyTab
	KeyEnter
)

// Draft is the text being edited plus a selection in rune offsets. The caret
// sits at End; Start == End means no selection.
type Draft struct {
	Text  string
	Start int
	End   int
}

// Caret returns the caret offset.
func (d Draft) Caret() int { return d.End }

func (d Draft) normalized() Draft {
	n := utf8.RuneCountInString(d.Text)
	d.Start = clamp(d.Start, 0, n)
	d.End = clamp(d.End, 0, n)
	if d.Start > d.End {
		d.Start, d.End = d.End, d.Start
	}
	return d
}

// Action tells the input surface what a key press amounted to.
type Action int

const (
	// ActionNone leaves the key to the surface's default handling.
	ActionNone Action = iota
	// ActionEdit replaced the selection with KeyResult.Insert.
	ActionEdit
	// ActionSubmit asks for the draft to be submitted; the default newline is suppressed.
	ActionSubmit
)

// KeyResult is the outcome of ApplyKey.
type KeyResult struct {
	Draft  Draft
	Insert string
	Action Action
}

// ApplyKey applies the keyboard policy: Tab indents, Shift+Enter breaks the
// line, Enter submits. Every other key passes through untouched.
func ApplyKey(d Draft, k KeyPressed) KeyResult {
	switch {
	case k.Key == KeyTab:
		return insertAt(d, Indent)
	case k.Key == KeyEnter && k.Shift:
		return insertAt(d, "\n")
	case k.Key == KeyEnter:
		return KeyResult{Draft: d, Action: ActionSubmit}
	}
	return KeyResult{Draft: d, Action: ActionNone}
}

func insertAt(d Draft, s string) KeyResult {
	d = d.normalized()
	runes := []rune(d.Text)
	text := string(runes[:d.Start]) + s + string(runes[d.End:])
	caret := d.Start + utf8.RuneCountInString(s)
	return KeyResult{
		Draft:  Draft{Text: text, Start: caret, End: caret},
		Insert: s,
		Action: ActionEdit,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
