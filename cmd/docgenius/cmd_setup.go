package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/docgenius/internal/config"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		scanner := bufio.NewScanner(os.Stdin)

		fmt.Println("DocGenius Setup Wizard")
		fmt.Println("Press Enter to accept the default value shown in brackets.")
		fmt.Println()

		cfg.Gemini.APIKey = askSecret(scanner, "Gemini API key", cfg.Gemini.APIKey)
		cfg.Gemini.Model = ask(scanner, "Model", cfg.Gemini.Model)

		switch p := ask(scanner, "Provider (rest or genai)", cfg.Gemini.Provider); p {
		case config.ProviderREST, config.ProviderGenAI:
			cfg.Gemini.Provider = p
		default:
			fmt.Printf("Unknown provider %q, keeping %q.\n", p, cfg.Gemini.Provider)
		}

		timeoutStr := ask(scanner, "Request timeout in seconds (0 for none)", strconv.Itoa(cfg.Gemini.TimeoutSeconds))
		if n, err := strconv.Atoi(timeoutStr); err == nil && n >= 0 {
			cfg.Gemini.TimeoutSeconds = n
		}

		cfg.UI.Style = ask(scanner, "Markdown style (auto, dark, light)", cfg.UI.Style)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if err := config.Save(cfgPath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Println()
		fmt.Println("Configuration saved to", cfgPath)
		return nil
	},
}

// ask displays a labeled prompt with a default value and reads user input.
// If the user enters nothing, the default is returned.
func ask(scanner *bufio.Scanner, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("%s: ", label)
	}
	if scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input != "" {
			return input
		}
	}
	return defaultVal
}

// askSecret is ask with the current value masked.
func askSecret(scanner *bufio.Scanner, label, current string) string {
	shown := ""
	if current != "" {
		shown = config.MaskSecret(current)
	}
	fmt.Printf("%s [%s]: ", label, shown)
	if scanner.Scan() {
		if input := strings.TrimSpace(scanner.Text()); input != "" {
			return input
		}
	}
	return current
}
