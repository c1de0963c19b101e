package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/scoring"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the saved profile and quiz totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		ctl, err := newController(ctx, s, nil, cliLogger(cfg))
		if err != nil {
			return err
		}

		p, err := s.Profile(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Println("Profile:    none saved (guests are not saved)")
		} else {
			fmt.Printf("Profile:    %s (%s)\n", p.Name, p.Login)
			fmt.Printf("Answered:   %d\n", p.Answered)
			fmt.Printf("Correct:    %d (%d%%)\n", p.Correct, scoring.Percent(p.Correct, p.Answered))
			fmt.Printf("Streak:     %d\n", p.Streak)
			fmt.Printf("Last quiz:  %.0f%%\n", p.Completion*100)
		}

		n, err := s.AttemptCount(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Attempts:   %d\n", n)

		version, size := ctl.BankInfo()
		fmt.Printf("Questions:  %d (dataset %s)\n", size, version)

		u, err := s.LLMUsage(ctx)
		if err != nil {
			return err
		}
		if u.Requests > 0 {
			fmt.Printf("AI calls:   %d (%d failed, %d in / %d out tokens)\n",
				u.Requests, u.Failures, u.InputTokens, u.OutputTokens)
		}
		return nil
	},
}
