package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/user/docgenius/internal/session"
	"github.com/user/docgenius/internal/source"
	"github.com/user/docgenius/internal/types"
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("url", "", "fetch the code to document from a URL")
	generateCmd.Flags().Bool("raw", false, "print Markdown without terminal rendering")
}

var generateCmd = &cobra.Command{
	Use:   "generate [file|-]",
	Short: "Document one file, stdin or URL and print the result",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

// errFallback signals that the printed result is a fallback message.
var errFallback = errors.New("documentation was not generated")

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := setupLogging(cfg, os.Stderr)

	url, _ := cmd.Flags().GetString("url")
	raw, _ := cmd.Flags().GetBool("raw")

	ctx := cmd.Context()

	input, err := readInput(ctx, source.NewLoader(source.WithLogger(logger)), url, args)
	if err != nil {
		return err
	}

	gen, err := buildGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	ctrl := newController(gen, cfg, logger)

	if err := ctrl.Submit(ctx, input); err != nil {
		if errors.Is(err, session.ErrEmptyInput) {
			return fmt.Errorf("no code to document")
		}
		return err
	}
	ctrl.Wait()

	st := ctrl.State()
	reply := lastReply(st.Transcript)

	out := cmd.OutOrStdout()
	if err := printReply(out, reply, !raw && isTerminal(out), cfg.UI.Style); err != nil {
		return err
	}
	if st.LastOutcome.Failed() {
		return errFallback
	}
	return nil
}

func readInput(ctx context.Context, loader *source.Loader, url string, args []string) (string, error) {
	switch {
	case url != "" && len(args) > 0:
		return "", fmt.Errorf("pass either a file or --url, not both")
	case url != "":
		return loader.URL(ctx, url)
	case len(args) == 1:
		return loader.File(args[0])
	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		return loader.File("-")
	}
	return "", fmt.Errorf("no input: pass a file, '-', or --url")
}

func lastReply(transcript []types.Message) string {
	for i := len(transcript) - 1; i >= 0; i-- {
		if m := transcript[i]; m.Sender == types.SenderSystem && !m.Pending {
			return m.Text
		}
	}
	return ""
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printReply(w io.Writer, reply string, render bool, style string) error {
	if render {
		if style == "" || style == "auto" {
			style = "dark"
		}
		styled, err := glamour.Render(reply, style)
		if err == nil {
			_, err = io.WriteString(w, styled)
			return err
		}
	}
	_, err := fmt.Fprintln(w, reply)
	return err
}
