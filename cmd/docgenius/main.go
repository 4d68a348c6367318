package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/docgenius/internal/config"
	"github.com/user/docgenius/internal/prompt"
	"github.com/user/docgenius/internal/session"
	"github.com/user/docgenius/pkg/llm"
	"github.com/user/docgenius/pkg/llm/gemini"
	"github.com/user/docgenius/pkg/llm/genai"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "docgenius",
	Short:         "Generate documentation for source code",
	Long:          "DocGenius sends pasted source code to a Gemini model and shows the generated Markdown documentation.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config %s: %v\n", cfgPath, err)
		os.Exit(1)
	}
	return cfg
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogging installs the default logger writing to w.
func setupLogging(cfg *config.Config, w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	return logger
}

func buildGenerator(ctx context.Context, cfg *config.Config) (llm.Generator, error) {
	switch cfg.Gemini.Provider {
	case "", config.ProviderREST:
		return gemini.New(cfg.LLMConfig()), nil
	case config.ProviderGenAI:
		return genai.New(ctx, cfg.LLMConfig())
	default:
		return nil, fmt.Errorf("unknown gemini.provider %q (want %q or %q)", cfg.Gemini.Provider, config.ProviderREST, config.ProviderGenAI)
	}
}

func newController(gen llm.Generator, cfg *config.Config, logger *slog.Logger, opts ...session.Option) *session.Controller {
	opts = append([]session.Option{
		session.WithLogger(logger),
		session.WithBuilder(prompt.NewBuilder(prompt.NewTiktokenCounter(), cfg.Gemini.MaxInputTokens)),
	}, opts...)
	return session.New(gen, opts...)
}
