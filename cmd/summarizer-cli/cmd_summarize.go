package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-summarizer/pkg/client"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file|-]",
	Short: "Summarize a file or stdin",
	Long: `Send text to the server and print the summary.

With no argument, or "-", the text is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().Int("max-length", 0, "Maximum summary length in tokens (20-200, server default 130)")
	summarizeCmd.Flags().Int("num-beams", 0, "Beam width (1-6, server default 4)")
	summarizeCmd.Flags().StringP("output", "o", formatText, "Output format: text, json, yaml")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	maxLength, _ := cmd.Flags().GetInt("max-length")
	numBeams, _ := cmd.Flags().GetInt("num-beams")
	format, _ := cmd.Flags().GetString("output")

	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("no text to summarize")
	}

	result, err := newClient(cmd).Summarize(cmd.Context(), client.SummarizeRequest{
		Text:      text,
		MaxLength: maxLength,
		NumBeams:  numBeams,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, format, result); handled {
		return err
	}
	fmt.Fprintln(out, result.Summary)
	fmt.Fprintf(cmd.ErrOrStderr(), "%d -> %d characters, %d input tokens, %dms%s\n",
		result.InputLength, result.OutputLength, result.InputTokens, result.DurationMs, cachedSuffix(result.Cached))
	return nil
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func cachedSuffix(cached bool) string {
	if cached {
		return " (cached)"
	}
	return ""
}
