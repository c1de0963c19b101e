package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/explain"
	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/quiz"
)

// playFlags selects how the TUI signs in before it starts.
type playFlags struct {
	Guest bool
	Code  string
	State string
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, flags playFlags) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, closer, err := config.OpenLogFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	var explainer quiz.Explainer
	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), st, logger)
	switch {
	case errors.Is(err, llm.ErrDisabled):
		logger.Info("AI explanations disabled", slog.Any("reason", err))
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI explanations will be unavailable.")
	default:
		explainer = explain.NewService(provider, st, explain.DefaultConfig(), logger)
	}

	ctl, err := newController(ctx, st, explainer, logger)
	if err != nil {
		return err
	}

	opts := app.Options{
		Controller:     ctl,
		AuthTimeout:    cfg.AuthTimeout,
		BankTimeout:    cfg.BankTimeout,
		ExplainTimeout: llm.ConfigFromEnv().Timeout,
		Logger:         logger,
	}
	if cfg.BankURL != "" {
		opts.BankSource = question.NewHTTPSource(cfg.BankURL)
	}

	var casdoor *auth.Casdoor
	if cfg.Casdoor.Configured() {
		casdoor = auth.NewCasdoor(cfg.Casdoor)
		opts.Signer = casdoor
	}

	switch {
	case flags.Code != "":
		if casdoor == nil {
			return errors.New("--code needs QUIZDECK_CASDOOR_ENDPOINT, _CLIENT_ID and _CLIENT_SECRET")
		}
		if _, err := ctl.Login(ctx, casdoor.WithCode(flags.Code, flags.State)); err != nil {
			return errors.New(auth.Message(err))
		}
	case flags.Guest:
		ctl.LoginGuest(ctx)
	}

	return app.Run(opts)
}
