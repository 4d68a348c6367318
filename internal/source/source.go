// Package source loads the code to document from a file, a reader or a URL.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MaxChars caps content fetched from a URL, in characters. Files and stdin
// are read whole.
const MaxChars = 200000

// TruncatedMarker is appended to content cut at MaxChars.
const TruncatedMarker = "\n\n[Conteúdo truncado]"

// Loader fetches source text.
type Loader struct {
	client   *http.Client
	maxChars int
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for URLs.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithMaxChars overrides MaxChars.
func WithMaxChars(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxChars = n
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:   &http.Client{Timeout: 30 * time.Second},
		maxChars: MaxChars,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// File reads path. "-" reads stdin.
func (l *Loader) File(path string) (string, error) {
	if path == "-" {
		return l.Reader(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer f.Close()
	return l.Reader(f)
}

// Reader reads all of r.
func (l *Loader) Reader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

// URL fetches rawURL. HTML pages are converted to Markdown; any other content
// type is returned as is.
func (l *Loader) URL(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "DocGenius/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := string(body)
	if isHTML(resp.Header.Get("Content-Type")) {
		text, err = htmltomarkdown.ConvertString(text)
		if err != nil {
			return "", fmt.Errorf("convert to markdown: %w", err)
		}
	}
	text, cut := l.truncate(text)
	if cut {
		l.logger.Warn("fetched page truncated",
			"url", rawURL,
			"max_chars", l.maxChars,
		)
	}
	return text, nil
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}

func (l *Loader) truncate(s string) (string, bool) {
	if len(s) <= l.maxChars {
		return s, false
	}
	runes := []rune(s)
	if len(runes) <= l.maxChars {
		return s, false
	}
	return strings.TrimRight(string(runes[:l.maxChars]), " ") + TruncatedMarker, true
}
