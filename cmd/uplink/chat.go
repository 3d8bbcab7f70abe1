package main

import (
	"io"

	"github.com/spf13/cobra"

	"neural-uplink/internal/tui"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive terminal chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// the TUI owns the terminal, so logs without a file are dropped
			a, err := newApp(cmd.Context(), io.Discard)
			if err != nil {
				return err
			}
			defer a.Close()

			relay := tui.NewRelay()
			ctrl := a.newSession(relay.Observe, 0)
			return tui.Run(ctrl, relay, a.cfg.AssistantName)
		},
	}
}
