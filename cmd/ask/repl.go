package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ehrlich-b/ask/internal/config"
	"github.com/ehrlich-b/ask/internal/extract"
	"github.com/ehrlich-b/ask/internal/history"
	"github.com/ehrlich-b/ask/internal/llm"
	"github.com/ehrlich-b/ask/internal/logger"
	"github.com/ehrlich-b/ask/internal/replay"
	"github.com/ehrlich-b/ask/internal/session"
	"github.com/ehrlich-b/ask/internal/ui"
)

func replCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-repl",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			debug, _ := cmd.Flags().GetBool("debug")
			offline, _ := cmd.Flags().GetBool("offline")

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			level := cfg.Logging.Level
			if debug {
				level = "debug"
			}
			if err := logger.Init(level, cfg.Logging.File, "session", uuid.NewString()); err != nil {
				fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
			}
			defer logger.Close()
			logger.Info("starting repl", "model", cfg.Model, "offline", offline, "replay_file", cfg.ReplayFile)

			store := replay.NewStore(cfg.ReplayFile)
			var watcher session.ChangeDetector
			if w, err := replay.Watch(store); err != nil {
				logger.Warn("replay file watch disabled", "error", err)
			} else {
				defer w.Close()
				watcher = w
			}

			var hist term.History
			if !cfg.HistoryEnabled() {
				logger.Info("input history off", "history_size", cfg.HistorySize)
			} else if h, err := openHistory(cfg); err != nil {
				logger.Warn("input history disabled", "path", cfg.HistoryFile, "error", err)
			} else {
				defer h.Close()
				hist = h
			}

			renderer, err := ui.NewRenderer(ui.DefaultTheme(), cfg.Render.Width, cfg.Render.Style)
			if err != nil {
				return fmt.Errorf("create renderer: %w", err)
			}
			console := ui.NewConsole(os.Stdout, renderer)

			s := session.New(session.Options{
				Provider:  llm.NewProvider(cfg, offline),
				Store:     store,
				Extractor: extract.New(cfg.TimeoutDuration()),
				Clipboard: ui.SystemClipboard{},
				Display:   console,
				Input:     ui.NewLineReader(os.Stdin, os.Stdout, hist),
				Watcher:   watcher,
				Timeout:   cfg.TimeoutDuration(),
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err = s.Run(ctx)
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			logger.Info("repl finished", "messages", len(s.Conversation()), "error", err)
			return err
		},
	}
	cmd.Flags().Bool("offline", false, "answer with a scripted local provider instead of the API")
	return cmd
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.HistoryFile), 0o755); err != nil {
		return nil, err
	}
	return history.Open(cfg.HistoryFile, cfg.HistorySize)
}
