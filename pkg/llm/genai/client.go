// Package genai adapts the google.golang.org/genai SDK to llm.Generator.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/user/docgenius/pkg/llm"
)

// Client implements llm.Generator on top of the Gemini API SDK.
type Client struct {
	client    *genai.Client
	modelName string
}

// New creates an SDK-backed generator. The API key travels in a request
// header here, unlike the REST adapter which sends it as a query parameter.
func New(ctx context.Context, config *llm.Config) (*Client, error) {
	modelName := config.Model
	if modelName == "" {
		modelName = llm.DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      config.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: config.Timeout},
		HTTPOptions: httpOptions(config.BaseURL),
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Client{
		client:    client,
		modelName: modelName,
	}, nil
}

// Generate implements llm.Generator.
func (c *Client) Generate(ctx context.Context, req *llm.Request) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(req.Input, genai.RoleUser)}

	res, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, contentConfig(req))
	if err != nil {
		if isJSONError(err) {
			return "", fmt.Errorf("genai generate content: %w: %w", llm.ErrNoContent, err)
		}
		return "", fmt.Errorf("genai generate content: %w", err)
	}

	text := firstText(res)
	if text == "" {
		return "", fmt.Errorf("genai generate content: %w", llm.ErrNoContent)
	}
	return text, nil
}

// httpOptions splits a base URL such as
// https://generativelanguage.googleapis.com/v1beta into the SDK's base URL
// and API version. An empty base leaves the SDK defaults.
func httpOptions(baseURL string) genai.HTTPOptions {
	base := strings.TrimRight(baseURL, "/")
	if base == "" || base == strings.TrimRight(llm.DefaultBaseURL, "/") {
		return genai.HTTPOptions{}
	}
	i := strings.LastIndex(base, "/")
	if last := base[i+1:]; i > len("https://") && strings.HasPrefix(last, "v1") {
		return genai.HTTPOptions{BaseURL: base[:i+1], APIVersion: last}
	}
	return genai.HTTPOptions{BaseURL: base + "/"}
}

// isJSONError reports whether err is an API error decoded from a JSON body.
// The SDK fills Status with the HTTP status line ("502 Bad Gateway") when the
// body is not JSON, and with the API status ("PERMISSION_DENIED") otherwise.
// A JSON error body carries no text path, so it is a soft failure like in the
// REST adapter.
func isJSONError(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var ptr *genai.APIError
		if !errors.As(err, &ptr) || ptr == nil {
			return false
		}
		apiErr = *ptr
	}
	return !strings.HasPrefix(apiErr.Status, strconv.Itoa(apiErr.Code))
}

func contentConfig(req *llm.Request) *genai.GenerateContentConfig {
	temp := float32(req.Config.Temperature)
	topP := float32(req.Config.TopP)
	topK := float32(req.Config.TopK)

	return &genai.GenerateContentConfig{
		// The system instruction goes out with the user role, matching the REST contract.
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		TopK:              &topK,
		MaxOutputTokens:   int32(req.Config.MaxOutputTokens),
		ResponseMIMEType:  req.Config.ResponseMIMEType,
	}
}

// firstText reads candidates[0].content.parts[0].text only; later parts are ignored.
func firstText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 {
		return ""
	}
	cand := res.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return ""
	}
	return cand.Content.Parts[0].Text
}
