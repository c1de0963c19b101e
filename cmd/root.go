package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "React quizzes in your terminal",
	Long:  "quizdeck — terminal quiz app for practicing React, with per-question feedback and a persisted history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, playFlags{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDECK_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(loginURLCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZDECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// cliLogger is the logger for non-interactive commands.
func cliLogger(cfg config.Config) *slog.Logger {
	return config.NewLogger(os.Stderr, cfg.LogLevel)
}

// newController builds a controller over st with the bundled bank, then
// swaps in any newer dataset cached by an earlier refresh.
func newController(ctx context.Context, st *store.Store, explainer quiz.Explainer, logger *slog.Logger) (*quiz.Controller, error) {
	ds, err := question.Bundled()
	if err != nil {
		return nil, fmt.Errorf("load bundled questions: %w", err)
	}
	bank, err := question.NewBank(ds)
	if err != nil {
		return nil, fmt.Errorf("load bundled questions: %w", err)
	}

	ctl, err := quiz.New(quiz.Options{
		Bank:         bank,
		Storage:      st,
		DatasetCache: st,
		Logger:       logger,
		Explainer:    explainer,
	})
	if err != nil {
		return nil, err
	}
	ctl.RestoreBank(ctx)
	return ctl, nil
}
