package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ask",
		Short: "Terminal chat client for Claude",
		Long:  "Chat with Claude from the terminal. Conversations can be saved, replayed and fed files, web pages or video transcripts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (default ~/.ask/config.yaml)")
	root.PersistentFlags().Bool("debug", false, "log at debug level")

	root.AddCommand(
		replCmd(),
		doctorCmd(),
	)
	return root
}
