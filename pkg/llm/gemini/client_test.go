package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/user/docgenius/pkg/llm"
)

func testRequest(input string) *llm.Request {
	return &llm.Request{
		Input:             input,
		SystemInstruction: "document the code",
		Config:            llm.DefaultGenerationConfig(),
	}
}

func writeText(w http.ResponseWriter, text string) {
	resp := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
			},
		},
	}
	json.NewEncoder(w).Encode(resp)
}

func TestGeminiClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("missing or invalid key query parameter")
		}
		writeText(w, "# Documentação")
	}))
	defer server.Close()

	client := New(&llm.Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "learnlm-2.0-flash-experimental",
	})

	text, err := client.Generate(context.Background(), testRequest("x := 1"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "# Documentação" {
		t.Errorf("expected '# Documentação', got %q", text)
	}
}

func TestGeminiClientRequestFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/learnlm-2.0-flash-experimental:generateContent" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type 'application/json', got %q", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		var reqBody map[string]any
		if err := json.Unmarshal(body, &reqBody); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}

		gc, ok := reqBody["generationConfig"].(map[string]any)
		if !ok {
			t.Fatalf("missing generationConfig: %s", body)
		}
		want := map[string]any{
			"temperature":      float64(1),
			"topP":             0.95,
			"topK":             float64(64),
			"maxOutputTokens":  float64(32768),
			"responseMimeType": "text/plain",
		}
		for k, v := range want {
			if gc[k] != v {
				t.Errorf("generationConfig.%s = %v, want %v", k, gc[k], v)
			}
		}
		if len(gc) != len(want) {
			t.Errorf("unexpected generationConfig fields: %v", gc)
		}

		contents, ok := reqBody["contents"].([]any)
		if !ok || len(contents) != 1 {
			t.Fatalf("expected 1 content, got %v", reqBody["contents"])
		}
		first := contents[0].(map[string]any)
		if first["role"] != "user" {
			t.Errorf("expected role user, got %v", first["role"])
		}
		parts := first["parts"].([]any)
		if parts[0].(map[string]any)["text"] != "print('hi')" {
			t.Errorf("unexpected user text %v", parts[0])
		}

		sys, ok := reqBody["systemInstruction"].(map[string]any)
		if !ok {
			t.Fatalf("missing systemInstruction")
		}
		if sys["role"] != "user" {
			t.Errorf("expected systemInstruction role user, got %v", sys["role"])
		}
		sysParts := sys["parts"].([]any)
		if sysParts[0].(map[string]any)["text"] != "document the code" {
			t.Errorf("unexpected system text %v", sysParts[0])
		}

		writeText(w, "ok")
	}))
	defer server.Close()

	client := New(&llm.Config{
		BaseURL: server.URL + "/v1beta",
		APIKey:  "key",
	})

	if _, err := client.Generate(context.Background(), testRequest("print('hi')")); err != nil {
		t.Fatal(err)
	}
}

func TestGeminiClientMissingText(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"candidates":[]}`,
		`{"candidates":[{"finishReason":"SAFETY"}]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":42}]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":{"value":"x"}}]}}]}`,
		`{"candidates":{"first":{}}}`,
		`[]`,
		`[{"candidates":[]}]`,
		`"just a string"`,
		`42`,
		`true`,
	}
	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		client := New(&llm.Config{BaseURL: server.URL, APIKey: "key"})
		_, err := client.Generate(context.Background(), testRequest("x"))
		server.Close()

		if !errors.Is(err, llm.ErrNoContent) {
			t.Errorf("body %s: expected ErrNoContent, got %v", body, err)
		}
	}
}

func TestGeminiClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client := New(&llm.Config{BaseURL: server.URL, APIKey: "bad-key"})
	_, err := client.Generate(context.Background(), testRequest("x"))
	if err == nil {
		t.Fatal("expected error for 400 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "API key not valid." {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if !errors.Is(err, llm.ErrNoContent) {
		t.Error("expected JSON error body to count as missing content")
	}
}

func TestGeminiClientNullBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	client := New(&llm.Config{BaseURL: server.URL, APIKey: "key"})
	_, err := client.Generate(context.Background(), testRequest("x"))
	if err == nil {
		t.Fatal("expected error for a null body")
	}
	if errors.Is(err, llm.ErrNoContent) {
		t.Error("a null body has nothing to read and is a hard failure")
	}
}

func TestLookup(t *testing.T) {
	var doc any
	if err := json.Unmarshal([]byte(`{"candidates":[{"content":{"parts":[{"text":"a"}]}}],"keyed":{"0":{"text":"b"}}}`), &doc); err != nil {
		t.Fatal(err)
	}
	if got := firstText(doc); got != "a" {
		t.Errorf("expected a, got %q", got)
	}
	if got := lookup(doc, "keyed", "0", "text"); got != "b" {
		t.Errorf("numeric segment should match object key, got %v", got)
	}
	if got := lookup(doc, "candidates", "1"); got != nil {
		t.Errorf("out of range index should be nil, got %v", got)
	}
	if got := lookup(doc, "candidates", "0", "content", "parts", "0", "text", "deeper"); got != nil {
		t.Errorf("path through a string should be nil, got %v", got)
	}
}

func TestGeminiClientNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer server.Close()

	client := New(&llm.Config{BaseURL: server.URL, APIKey: "key"})
	_, err := client.Generate(context.Background(), testRequest("x"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, llm.ErrNoContent) {
		t.Error("a non-JSON body is a parse failure, not missing content")
	}
}

func TestGeminiClientTransportErrorRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(&llm.Config{BaseURL: url, APIKey: "super-secret"})
	_, err := client.Generate(context.Background(), testRequest("x"))
	if err == nil {
		t.Fatal("expected transport error")
	}
	if errors.Is(err, llm.ErrNoContent) {
		t.Error("transport failure must not match ErrNoContent")
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Errorf("API key leaked in error: %v", err)
	}
}

func TestGeminiClientDefaults(t *testing.T) {
	client := New(&llm.Config{APIKey: "k"})
	got := client.endpoint()
	want := "https://generativelanguage.googleapis.com/v1beta/models/learnlm-2.0-flash-experimental:generateContent?key=k"
	if got != want {
		t.Errorf("endpoint = %q, want %q", got, want)
	}
}

func TestGeminiClientGeneratorInterface(t *testing.T) {
	// Verify Client satisfies the llm.Generator interface at compile time.
	var _ llm.Generator = (*Client)(nil)
}
