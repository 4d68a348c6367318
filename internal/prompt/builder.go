// Package prompt holds the fixed documentation prompt contract and builds
// generation requests from user input.
package prompt

import (
	"github.com/user/docgenius/pkg/llm"
)

// Builder assembles generation requests and estimates their size.
type Builder struct {
	counter        Counter
	maxInputTokens int
}

// Estimate describes the token cost of one request.
type Estimate struct {
	InputTokens  int
	SystemTokens int
	Approx       bool
	// OverBudget is set when InputTokens+SystemTokens exceeds the configured
	// budget. The request is still sent.
	OverBudget bool
}

// NewBuilder creates a Builder. maxInputTokens <= 0 disables the budget check.
// A nil counter falls back to the heuristic.
func NewBuilder(counter Counter, maxInputTokens int) *Builder {
	if counter == nil {
		counter = HeuristicCounter{}
	}
	return &Builder{counter: counter, maxInputTokens: maxInputTokens}
}

// Build returns a fresh request for input. Each request stands alone; no
// earlier turns are included.
func (b *Builder) Build(input string) *llm.Request {
	return &llm.Request{
		Input:             input,
		SystemInstruction: SystemInstruction,
		Config:            llm.DefaultGenerationConfig(),
	}
}

// Estimate counts the tokens req will consume on the input side.
func (b *Builder) Estimate(req *llm.Request) Estimate {
	est := Estimate{
		InputTokens:  b.counter.Count(req.Input),
		SystemTokens: b.counter.Count(req.SystemInstruction),
		Approx:       b.counter.Approx(),
	}
	if b.maxInputTokens > 0 && est.InputTokens+est.SystemTokens > b.maxInputTokens {
		est.OverBudget = true
	}
	return est
}
