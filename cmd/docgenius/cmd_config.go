package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/docgenius/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configListCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print the API key unmasked")
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configKeysCmd, configPathCmd)
}

var showSecrets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change DocGenius settings",
	Long: `Read and change the settings in the config file.

Environment variables (GEMINI_API_KEY, GEMINI_BASE_URL, GEMINI_MODEL) take
precedence over the file; "config list" shows the effective values.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the effective value of every setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		values, err := config.ListValues(cfg, !showSecrets)
		if err != nil {
			return fmt.Errorf("list config: %w", err)
		}
		for _, k := range config.Keys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", k.Name, values[k.Name])
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting as stored in the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		val, err := config.GetValue(cfgPath, args[0])
		if err != nil {
			return err
		}
		if s, ok := val.(string); ok && config.IsSecretKey(args[0]) {
			val = config.MaskSecret(s)
		}
		fmt.Fprintln(cmd.OutOrStdout(), val)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Validate and store one setting",
	Example: `  docgenius config set gemini.provider genai
  docgenius config set ui.scroll_threshold 5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Creates the file with defaults on first use.
		if _, err := config.Load(cfgPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := config.SetValue(cfgPath, args[0], args[1]); err != nil {
			return err
		}
		display := args[1]
		if config.IsSecretKey(args[0]) {
			display = config.MaskSecret(display)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], display)
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Describe the settable keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, k := range config.Keys() {
			fmt.Fprintf(w, "%s\t%s\n", k.Name, k.Help)
		}
		return w.Flush()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), cfgPath)
	},
}
