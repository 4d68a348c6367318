package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Key describes one dotted setting that `docgenius config` can read and write.
type Key struct {
	Name   string
	Help   string
	Secret bool

	parse func(string) (any, error)
}

var registry = []Key{
	{Name: "log_level", Help: "debug, info, warn or error", parse: oneOf("debug", "info", "warn", "error")},
	{Name: "log_file", Help: "log destination for the chat screen", parse: nonEmpty},
	{Name: "gemini.provider", Help: "rest (generateContent over HTTPS) or genai (Go SDK)", parse: oneOf(ProviderREST, ProviderGenAI)},
	{Name: "gemini.base_url", Help: "API root, e.g. https://generativelanguage.googleapis.com/v1beta", parse: httpURL},
	{Name: "gemini.api_key", Help: "Gemini API key", Secret: true, parse: anyString},
	{Name: "gemini.model", Help: "model name", parse: nonEmpty},
	{Name: "gemini.timeout_seconds", Help: "request timeout, 0 for none", parse: intAtLeast(0)},
	{Name: "gemini.max_input_tokens", Help: "warn when a request exceeds this many tokens", parse: intAtLeast(1)},
	{Name: "ui.scroll_threshold", Help: "lines from the bottom that still follow new output", parse: intAtLeast(1)},
	{Name: "ui.style", Help: "glamour style: auto, dark, light, notty, ...", parse: nonEmpty},
}

func init() {
	sort.Slice(registry, func(i, j int) bool { return registry[i].Name < registry[j].Name })
}

// Keys returns every settable key, sorted by name.
func Keys() []Key {
	return append([]Key(nil), registry...)
}

// LookupKey finds a key by its dotted name.
func LookupKey(name string) (Key, bool) {
	i := sort.Search(len(registry), func(i int) bool { return registry[i].Name >= name })
	if i < len(registry) && registry[i].Name == name {
		return registry[i], true
	}
	return Key{}, false
}

// IsSecretKey reports whether the value of name must be masked on display.
func IsSecretKey(name string) bool {
	k, ok := LookupKey(name)
	return ok && k.Secret
}

// ParseValue converts raw into the stored form of key name, rejecting
// unknown keys and values the key does not accept.
func ParseValue(name, raw string) (any, error) {
	k, ok := LookupKey(name)
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", name)
	}
	v, err := k.parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	return v, nil
}

// Validate checks every setting of cfg against its key's rules.
func (c *Config) Validate() error {
	m, err := ToMap(c)
	if err != nil {
		return err
	}
	flat := flatten(m)
	var errs []error
	for _, k := range registry {
		v, ok := flat[k.Name]
		if !ok {
			continue
		}
		if _, err := k.parse(formatValue(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k.Name, err))
		}
	}
	return errors.Join(errs...)
}

// formatValue renders a decoded JSON value the way it would be typed on the
// command line; numbers never use exponent notation.
func formatValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// MaskSecret hides all but the last four characters of s.
func MaskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 4:
		return "***" + s
	default:
		return "***" + s[len(s)-4:]
	}
}

func anyString(s string) (any, error) { return s, nil }

func nonEmpty(s string) (any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("must not be empty")
	}
	return s, nil
}

func oneOf(allowed ...string) func(string) (any, error) {
	return func(s string) (any, error) {
		for _, a := range allowed {
			if s == a {
				return s, nil
			}
		}
		return nil, fmt.Errorf("%q is not one of %s", s, strings.Join(allowed, ", "))
	}
}

func intAtLeast(lo int) func(string) (any, error) {
	return func(s string) (any, error) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", s)
		}
		if n < lo {
			return nil, fmt.Errorf("must be at least %d", lo)
		}
		return n, nil
	}
}

func httpURL(s string) (any, error) {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%q is not an http(s) URL", s)
	}
	return s, nil
}

// flatten turns the nested JSON form of the config into dotted keys.
func flatten(m map[string]any) map[string]any {
	out := make(map[string]any)
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			if prefix != "" {
				k = prefix + "." + k
			}
			if child, ok := v.(map[string]any); ok {
				walk(k, child)
				continue
			}
			out[k] = v
		}
	}
	walk("", m)
	return out
}

// setPath stores v at the dotted key name inside m, creating sections as needed.
func setPath(m map[string]any, name string, v any) {
	parts := strings.Split(name, ".")
	for _, section := range parts[:len(parts)-1] {
		child, ok := m[section].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[section] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = v
}
