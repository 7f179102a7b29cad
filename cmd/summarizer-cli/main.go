package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-summarizer/pkg/client"
)

var version = "1.0.0"

const defaultServer = "http://localhost:5000"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "summarizer-cli",
	Short: "Command-line client for the Jan summarizer service",
	Long: `summarizer-cli talks to a running summarizer server.

Examples:
  # Summarize a file, or stdin with "-"
  summarizer-cli summarize article.txt --max-length 80
  cat article.txt | summarizer-cli summarize - --output json

  # Model lifecycle
  summarizer-cli status
  summarizer-cli load

  # Recent summaries
  summarizer-cli history --limit 5`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(unloadCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(schemaCmd)

	rootCmd.PersistentFlags().String("server", "", "Server URL (default $SUMMARIZER_URL or "+defaultServer+")")
	rootCmd.PersistentFlags().String("token", "", "Bearer token (default $SUMMARIZER_TOKEN)")
	rootCmd.PersistentFlags().Duration("timeout", 2*time.Minute, "Request timeout")
}

func serverURL(cmd *cobra.Command) string {
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		return server
	}
	if server := os.Getenv("SUMMARIZER_URL"); server != "" {
		return server
	}
	return defaultServer
}

func newClient(cmd *cobra.Command) *client.Client {
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = os.Getenv("SUMMARIZER_TOKEN")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return client.New(serverURL(cmd),
		client.WithToken(token),
		client.WithTimeout(timeout),
		client.WithUserAgent("summarizer-cli/"+version),
	)
}
