package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/docgenius/pkg/llm"
)

// Client implements llm.Generator for the generateContent REST endpoint.
type Client struct {
	config     *llm.Config
	httpClient *http.Client
}

// New creates a new generateContent client with the given configuration.
func New(config *llm.Config) *Client {
	cfg := *config
	if cfg.BaseURL == "" {
		cfg.BaseURL = llm.DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel
	}
	return &Client{
		config: &cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// generateRequest is the generateContent request body.
type generateRequest struct {
	GenerationConfig  generationConfig `json:"generationConfig"`
	Contents          []content        `json:"contents"`
	SystemInstruction content          `json:"systemInstruction"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	TopK             int     `json:"topK"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// APIError is a non-2xx answer whose body was still valid JSON. It carries no
// generated text, so it matches llm.ErrNoContent.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("API error (status %d, %s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return llm.ErrNoContent }

func newRequestBody(req *llm.Request) generateRequest {
	return generateRequest{
		GenerationConfig: generationConfig{
			Temperature:      req.Config.Temperature,
			TopP:             req.Config.TopP,
			TopK:             req.Config.TopK,
			MaxOutputTokens:  req.Config.MaxOutputTokens,
			ResponseMIMEType: req.Config.ResponseMIMEType,
		},
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: req.Input}},
		}},
		SystemInstruction: content{
			Role:  "user",
			Parts: []part{{Text: req.SystemInstruction}},
		},
	}
}

func (c *Client) endpoint() string {
	base := strings.TrimRight(c.config.BaseURL, "/")
	return base + "/models/" + url.PathEscape(c.config.Model) + ":generateContent?key=" + url.QueryEscape(c.config.APIKey)
}

// Generate posts the request and extracts candidates[0].content.parts[0].text.
func (c *Client) Generate(ctx context.Context, req *llm.Request) (string, error) {
	body, err := json.Marshal(newRequestBody(req))
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", c.redact(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", c.redact(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	// Any JSON value is accepted; only null, which has no fields to read,
	// fails like a body that is not JSON at all.
	var doc any
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return "", fmt.Errorf("parsing response (status %d): %w", resp.StatusCode, err)
	}
	if doc == nil {
		return "", fmt.Errorf("parsing response (status %d): null body", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		if msg, ok := lookup(doc, "error", "message").(string); ok {
			apiErr.Message = msg
			apiErr.Status, _ = lookup(doc, "error", "status").(string)
		}
		return "", apiErr
	}

	text := firstText(doc)
	if text == "" {
		return "", fmt.Errorf("generate content: %w", llm.ErrNoContent)
	}
	return text, nil
}

// firstText reads candidates[0].content.parts[0].text. Any other shape, a
// non-string text included, yields "".
func firstText(doc any) string {
	text, _ := lookup(doc, "candidates", "0", "content", "parts", "0", "text").(string)
	return text
}

// lookup follows path through a decoded JSON document. Numeric segments
// index arrays and also match object keys. A segment that does not resolve
// yields nil.
func lookup(v any, path ...string) any {
	for _, seg := range path {
		switch node := v.(type) {
		case map[string]any:
			v = node[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			v = node[i]
		default:
			return nil
		}
	}
	return v
}

// redact strips the API key from URLs embedded in transport errors.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if c.config.APIKey == "" || !errors.As(err, &urlErr) {
		return err
	}
	urlErr.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(c.config.APIKey), "REDACTED")
	return urlErr
}
