package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/export"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, clear or export past quiz attempts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		topics, _ := cmd.Flags().GetBool("topics")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.RecentAttempts(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-6s  %-7s  %4s  %-14s  %s\n",
			"ID", "Time", "Level", "Score", "%", "User", "Streak")
		fmt.Println(strings.Repeat("─", 100))

		for _, a := range attempts {
			fmt.Printf("%-36s  %-16s  %-6s  %3d/%-3d  %3d%%  %-14s  %d\n",
				a.ID,
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				a.Difficulty.DisplayName(),
				a.Score.Correct, a.Score.Total,
				a.Percent(),
				truncate(a.UserLogin, 14),
				a.Streak,
			)
			if topics {
				for _, t := range a.Topics() {
					fmt.Printf("    %-20s  %d/%d  %d%%\n", t.Topic, t.Correct, t.Total, t.Percent())
				}
			}
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded attempt",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("Delete all recorded attempts?") {
			fmt.Println("Aborted.")
			return nil
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.ClearAttempts(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export attempts to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.Attempts(cmd.Context())
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if err := export.WriteFile(out, attempts); err != nil {
			return err
		}
		fmt.Printf("Exported %d attempts to %s\n", len(attempts), out)
		return nil
	},
}

// confirm asks a yes/no question on stdin. Anything but y/yes is no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyListCmd.Flags().Bool("topics", false, "Show the per-topic breakdown")
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	historyExportCmd.Flags().StringP("out", "o", "quizdeck-history.xlsx", "Output .xlsx file")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
}
