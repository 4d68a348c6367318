package llm

import (
	"context"
	"errors"
	"time"
)

// Generator turns one documentation request into generated text.
// Implementations handle protocol-specific details such as request formatting,
// authentication, and response parsing.
type Generator interface {
	// Generate sends a single stateless request and returns the generated text.
	// A response that parses but carries no text yields an error matching
	// ErrNoContent; every other error is a transport or parse failure.
	Generate(ctx context.Context, req *Request) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req *Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req *Request) (string, error) {
	return f(ctx, req)
}

// ErrNoContent reports a well-formed response without generated text.
var ErrNoContent = errors.New("response carried no generated text")

// Config holds common configuration for generator backends.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	// Timeout bounds a whole request. Zero leaves timing to the network layer.
	Timeout time.Duration
}

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "learnlm-2.0-flash-experimental"
)
