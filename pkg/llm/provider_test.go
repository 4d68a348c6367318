package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestGeneratorFunc(t *testing.T) {
	var gen Generator = GeneratorFunc(func(_ context.Context, req *Request) (string, error) {
		return "doc for " + req.Input, nil
	})
	out, err := gen.Generate(context.Background(), &Request{Input: "x := 1"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "doc for x := 1" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDefaultGenerationConfig(t *testing.T) {
	cfg := DefaultGenerationConfig()
	if cfg.Temperature != 1 {
		t.Errorf("expected temperature 1, got %v", cfg.Temperature)
	}
	if cfg.TopP != 0.95 {
		t.Errorf("expected topP 0.95, got %v", cfg.TopP)
	}
	if cfg.TopK != 64 {
		t.Errorf("expected topK 64, got %d", cfg.TopK)
	}
	if cfg.MaxOutputTokens != 32768 {
		t.Errorf("expected maxOutputTokens 32768, got %d", cfg.MaxOutputTokens)
	}
	if cfg.ResponseMIMEType != "text/plain" {
		t.Errorf("expected text/plain, got %q", cfg.ResponseMIMEType)
	}
}

func TestErrNoContentWrapped(t *testing.T) {
	err := fmt.Errorf("generate: %w", ErrNoContent)
	if !errors.Is(err, ErrNoContent) {
		t.Error("expected wrapped error to match ErrNoContent")
	}
}
