package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/question"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and refresh the question bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions in the active bank (optionally filtered by topic or type)",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		typ, _ := cmd.Flags().GetString("type")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctl, err := newController(cmd.Context(), s, nil, cliLogger(cfg))
		if err != nil {
			return err
		}

		var qs []question.Question
		for _, q := range ctl.Questions() {
			if topic != "" && !strings.EqualFold(q.TopicOrDefault(), topic) {
				continue
			}
			if typ != "" && string(q.Type) != typ {
				continue
			}
			qs = append(qs, q)
		}
		if len(qs) == 0 {
			return fmt.Errorf("no questions match")
		}

		// Header.
		fmt.Printf("%-16s  %-15s  %-14s  %s\n", "ID", "Type", "Topic", "Prompt")
		fmt.Println(strings.Repeat("─", 100))

		for _, q := range qs {
			prompt := q.Prompt
			if len(prompt) > 60 {
				prompt = prompt[:57] + "..."
			}
			fmt.Printf("%-16s  %-15s  %-14s  %s\n", q.ID, q.Type, q.TopicOrDefault(), prompt)
		}

		version, _ := ctl.BankInfo()
		fmt.Printf("\n%d questions (dataset %s)\n", len(qs), version)
		return nil
	},
}

var bankRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the remote dataset and cache it when it is newer",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			url = cfg.BankURL
		}
		if url == "" {
			return fmt.Errorf("no bank URL configured (QUIZDECK_BANK_URL is off)")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.BankTimeout)
		defer cancel()

		ctl, err := newController(ctx, s, nil, cliLogger(cfg))
		if err != nil {
			return err
		}
		before, _ := ctl.BankInfo()

		changed, err := ctl.RefreshBank(ctx, question.NewHTTPSource(url))
		if err != nil {
			return fmt.Errorf("refresh from %s: %w", url, err)
		}
		version, size := ctl.BankInfo()
		if !changed {
			fmt.Printf("Bank is up to date (dataset %s, %d questions).\n", version, size)
			return nil
		}
		fmt.Printf("Bank updated %s → %s (%d questions).\n", before, version, size)
		return nil
	},
}

var bankCheckCmd = &cobra.Command{
	Use:   "check <file-or-url>",
	Short: "Validate a dataset file or URL without installing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd.Context(), args[0], cfg)
		if err != nil {
			return err
		}

		topics := map[string]int{}
		for _, q := range ds.Questions {
			topics[q.TopicOrDefault()]++
		}
		names := make([]string, 0, len(topics))
		for name := range topics {
			names = append(names, name)
		}
		sort.Strings(names)

		version := ds.Version
		if version == "" {
			version = "(none)"
		}
		fmt.Printf("Dataset:    %s\n", version)
		fmt.Printf("Questions:  %d\n", len(ds.Questions))
		for _, name := range names {
			fmt.Printf("  %-16s %d\n", name, topics[name])
		}

		bundled, err := question.Bundled()
		if err != nil {
			return err
		}
		if question.Supersedes(bundled.Version, ds.Version) {
			fmt.Printf("Would replace the bundled dataset (%s).\n", bundled.Version)
		} else {
			fmt.Printf("Older than the bundled dataset (%s); would be ignored.\n", bundled.Version)
		}
		return nil
	},
}

// loadDataset reads and validates a dataset from a local file or an
// http(s) URL.
func loadDataset(ctx context.Context, src string, cfg config.Config) (question.Dataset, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		ctx, cancel := context.WithTimeout(ctx, cfg.BankTimeout)
		defer cancel()
		return question.NewHTTPSource(src,
			question.WithHTTPClient(&http.Client{Timeout: cfg.BankTimeout}),
		).Fetch(ctx)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return question.Dataset{}, err
	}
	return question.Parse(data)
}

func init() {
	bankListCmd.Flags().String("topic", "", "Filter by topic (e.g. hooks)")
	bankListCmd.Flags().String("type", "", "Filter by type (multiple-choice, boolean or code)")
	bankRefreshCmd.Flags().String("url", "", "Dataset URL (overrides QUIZDECK_BANK_URL)")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankRefreshCmd)
	bankCmd.AddCommand(bankCheckCmd)
}
