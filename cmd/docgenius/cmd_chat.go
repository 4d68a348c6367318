package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/user/docgenius/internal/session"
	"github.com/user/docgenius/internal/tui"
)

func init() {
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive documentation chat (default)",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	// The terminal belongs to the UI; logs go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := setupLogging(cfg, logFile)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	gen, err := buildGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	updates := tui.NewUpdates()
	defer updates.Close()
	ctrl := newController(gen, cfg, logger,
		session.WithNotify(updates.Send),
		session.WithScrollThreshold(cfg.UI.ScrollThreshold),
	)

	slog.Info("docgenius chat started",
		"session_id", string(ctrl.State().SessionID),
		"provider", cfg.Gemini.Provider,
		"model", cfg.Gemini.Model,
		"log_level", cfg.LogLevel,
	)

	model := tui.New(ctrl, updates,
		tui.WithContext(ctx),
		tui.WithLogger(logger),
		tui.WithStyle(cfg.UI.Style),
	)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	slog.Info("docgenius chat stopped")
	return nil
}
