package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ehrlich-b/ask/internal/config"
	"github.com/ehrlich-b/ask/internal/replay"
	"github.com/ehrlich-b/ask/internal/ui"
)

var wellKnownEnvKeys = []struct {
	envVar string
	note   string
}{
	{config.EnvAPIKey, "preferred"},
	{config.EnvAnthropicAPIKey, "fallback"},
	{config.EnvModel, "model override"},
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check API keys, config and local files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			fmt.Println("ask doctor")
			fmt.Println()

			// Environment
			fmt.Println("Environment:")
			for _, k := range wellKnownEnvKeys {
				if os.Getenv(k.envVar) != "" {
					fmt.Printf("  %-20s set (%s)\n", k.envVar, k.note)
				} else {
					fmt.Printf("  %-20s not set\n", k.envVar)
				}
			}
			if cfg.APIKey == "" {
				fmt.Println("  no API key: chat turns will fail until one is set")
			}
			fmt.Println()

			// Files
			fmt.Println("Files:")
			printFile("replay", cfg.ReplayFile)
			printFile("history", cfg.HistoryFile)
			printFile("log", cfg.Logging.File)
			fmt.Println()

			// Saved conversations
			entries, err := replay.NewStore(cfg.ReplayFile).List()
			switch {
			case err != nil:
				fmt.Printf("Replay file unreadable: %v\n", err)
			case len(entries) == 0:
				fmt.Println("No saved conversations.")
			default:
				fmt.Println("Saved conversations:")
				for _, e := range entries {
					fmt.Printf("  %-20s %3d messages  %s\n", e.Tag, e.Messages, humanize.Time(e.SavedAt))
				}
			}
			fmt.Println()

			// Clipboard
			if ui.ClipboardAvailable() {
				fmt.Println("Clipboard: available")
			} else {
				fmt.Println("Clipboard: unavailable (install xclip, xsel or wl-clipboard)")
			}
			fmt.Println()

			// Config
			fmt.Println("Config:")
			fmt.Printf("  model:      %s\n", cfg.Model)
			fmt.Printf("  max_tokens: %d\n", cfg.MaxTokens)
			fmt.Printf("  timeout:    %s\n", cfg.TimeoutDuration())
			if cfg.BaseURL != "" {
				fmt.Printf("  base_url:   %s\n", cfg.BaseURL)
			}
			return nil
		},
	}
}

func printFile(label, path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("  %-8s %s (missing)\n", label, path)
		return
	}
	fmt.Printf("  %-8s %s (%s, modified %s)\n", label, path,
		humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
}
