package types

import (
	"strings"
	"unicode"
)

// Sender identifies who authored a transcript message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderSystem Sender = "system"
)

// Message is one entry of the transcript. Pending marks the transient
// placeholder shown while a request is outstanding.
type Message struct {
	ID      MessageID `json:"id"`
	Text    string    `json:"text"`
	Sender  Sender    `json:"sender"`
	Pending bool      `json:"pending,omitempty"`
}

// IsBlank reports whether text has nothing but whitespace. The byte order
// mark counts as whitespace; U+0085 (NEL) does not.
func IsBlank(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return !isSpace(r) }) < 0
}

func isSpace(r rune) bool {
	return r == '\uFEFF' || (unicode.IsSpace(r) && r != '\u0085')
}
