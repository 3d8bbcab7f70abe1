package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// errReplyFailed marks a turn that ended in an advisory. The advisory has
// already been printed.
var errReplyFailed = errors.New("reply was an error advisory")

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: .env file not found: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReplyFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	chatCmd := newChatCmd()
	rootCmd := &cobra.Command{
		Use:   "uplink",
		Short: "Chat with a portfolio persona backed by an LLM",
		Long: `uplink runs a single chat session against the configured LLM provider.

Without a subcommand it starts the interactive terminal chat.
Configuration comes from the environment (and .env); see LLM_PROVIDER,
GEMINI_API_KEY, OPENAI_API_KEY, YANDEX_OAUTH_TOKEN.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          chatCmd.RunE,
	}
	rootCmd.AddCommand(chatCmd, newAskCmd(), newStatsCmd(), newReportCmd())
	return rootCmd
}
