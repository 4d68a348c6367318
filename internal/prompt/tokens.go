package prompt

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates how many tokens a text costs.
type Counter interface {
	Count(text string) int
	// Approx reports whether counts are a heuristic rather than a tokenizer result.
	Approx() bool
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter returns a cl100k_base counter. When the encoding cannot
// be loaded (it is fetched on first use) the heuristic counter is returned.
func NewTiktokenCounter() Counter {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return HeuristicCounter{}
	}
	return tiktokenCounter{enc: enc}
}

func (c tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

func (tiktokenCounter) Approx() bool { return false }

// HeuristicCounter approximates tokens as len(text)/4.
type HeuristicCounter struct{}

func (HeuristicCounter) Count(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	n := len(text) / 4
	if n < 1 {
		n = 1
	}
	return n
}

func (HeuristicCounter) Approx() bool { return true }
