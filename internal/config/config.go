package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/user/docgenius/pkg/llm"
)

type Config struct {
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
	Gemini   struct {
		Provider       string `json:"provider"`
		BaseURL        string `json:"base_url"`
		APIKey         string `json:"api_key"`
		Model          string `json:"model"`
		TimeoutSeconds int    `json:"timeout_seconds"`
		MaxInputTokens int    `json:"max_input_tokens"`
	} `json:"gemini"`
	UI struct {
		ScrollThreshold int    `json:"scroll_threshold"`
		Style           string `json:"style"`
	} `json:"ui"`
}

// Providers accepted by gemini.provider.
const (
	ProviderREST  = "rest"
	ProviderGenAI = "genai"
)

// Dir is the default directory for the config file and log.
func Dir() string {
	return filepath.Join(os.Getenv("HOME"), ".docgenius")
}

// DefaultPath is where the config file lives unless --config says otherwise.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Timeout returns the request timeout. Zero means none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Gemini.TimeoutSeconds) * time.Second
}

// LLMConfig returns the generator settings.
func (c *Config) LLMConfig() *llm.Config {
	return &llm.Config{
		BaseURL: c.Gemini.BaseURL,
		APIKey:  c.Gemini.APIKey,
		Model:   c.Gemini.Model,
		Timeout: c.Timeout(),
	}
}

func defaults() *Config {
	cfg := &Config{
		LogLevel: "info",
		LogFile:  filepath.Join(Dir(), "docgenius.log"),
	}
	cfg.Gemini.Provider = ProviderREST
	cfg.Gemini.BaseURL = llm.DefaultBaseURL
	cfg.Gemini.Model = llm.DefaultModel
	cfg.Gemini.MaxInputTokens = 1000000
	cfg.UI.ScrollThreshold = 3
	cfg.UI.Style = "auto"
	return cfg
}

func Load(path string) (*Config, error) {
	cfg := defaults()

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if apiKey := os.Getenv("NEXT_PUBLIC_GEMINI_API_KEY"); apiKey != "" {
		cfg.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		cfg.Gemini.APIKey = apiKey
	}
	if baseURL := os.Getenv("GEMINI_BASE_URL"); baseURL != "" {
		cfg.Gemini.BaseURL = baseURL
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Gemini.Model = model
	}

	return cfg, nil
}

// Save writes cfg to path atomically, creating the directory if needed.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// ToMap converts cfg to its nested JSON form.
func ToMap(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return m, nil
}

// ListValues returns cfg as dotted keys, optionally with secrets masked.
func ListValues(cfg *Config, mask bool) (map[string]any, error) {
	m, err := ToMap(cfg)
	if err != nil {
		return nil, err
	}
	flat := flatten(m)
	if mask {
		for name, v := range flat {
			if s, ok := v.(string); ok && IsSecretKey(name) {
				flat[name] = MaskSecret(s)
			}
		}
	}
	return flat, nil
}

// GetValue reads one dotted key from the file at path, creating the file
// with defaults when missing. Keys absent from the file report their default.
func GetValue(path, key string) (any, error) {
	if _, ok := LookupKey(key); !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
	if _, err := Load(path); err != nil {
		return nil, err
	}
	m, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	if v, ok := flatten(m)[key]; ok {
		return v, nil
	}
	d, err := ListValues(defaults(), false)
	if err != nil {
		return nil, err
	}
	return d[key], nil
}

// SetValue validates value for key and writes it into the existing file at
// path. Other entries of the file are kept as they are.
func SetValue(path, key, value string) error {
	parsed, err := ParseValue(key, value)
	if err != nil {
		return err
	}
	m, err := readRaw(path)
	if err != nil {
		return err
	}
	setPath(m, key, parsed)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeFile(path, data)
}

func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	m := make(map[string]any)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return m, nil
}
