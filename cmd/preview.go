package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/explain"
	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/scoring"
	"github.com/abhisek/quizdeck/internal/selector"
	"github.com/abhisek/quizdeck/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Walk a quiz in plain text (no database)",
	Long: `Play a quiz with line-based input instead of the full-screen app.

This is a stateless developer tool — no sign-in, no history, no profile.
Useful for reviewing a dataset before publishing it.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("difficulty", "easy", "Difficulty: easy, medium or hard")
	previewCmd.Flags().Int("count", 0, "Number of questions (default: the difficulty's count)")
	previewCmd.Flags().String("file", "", "Dataset file to preview instead of the bundled one")
	previewCmd.Flags().Bool("explain", false, "Ask the configured LLM to explain questions that have no explanation")
}

func runPreview(cmd *cobra.Command, args []string) error {
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	file, _ := cmd.Flags().GetString("file")
	withExplain, _ := cmd.Flags().GetBool("explain")

	d, err := question.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}

	ds, err := previewDataset(file)
	if err != nil {
		return err
	}

	qs := selector.PickForDifficulty(d, ds.Questions, selector.Default())
	if count > 0 && count < len(qs) {
		qs = qs[:count]
	}
	s, err := session.New(qs)
	if err != nil {
		return selector.ErrSelectionEmpty
	}

	// Explanation service (no cache, no event logging).
	ctx := cmd.Context()
	var explainer *explain.Service
	if withExplain {
		provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), nil, nil)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		explainer = explain.NewService(provider, nil, explain.DefaultConfig(), nil)
	}

	fmt.Printf("%s quiz — %d questions. Enter an option number, s to skip, b to go back, q to quit.\n\n",
		d.DisplayName(), s.Len())

	scanner := bufio.NewScanner(os.Stdin)
	for s.Phase() == session.PhaseInProgress {
		printQuestion(s)

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			return nil
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "q":
			fmt.Println("Quiz abandoned. Nothing was recorded.")
			return nil
		case "b":
			if s.Retreat() == session.StepExit {
				fmt.Println("Quiz abandoned. Nothing was recorded.")
				return nil
			}
			fmt.Println()
			continue
		case "", "s":
			if step, _ := s.Advance(); step == session.StepNone {
				fmt.Println("Answer the last question to finish.")
			}
			fmt.Println()
			continue
		}

		n, err := strconv.Atoi(input)
		if err != nil || s.SelectOption(n-1) != nil {
			fmt.Printf("Pick a number from 1 to %d.\n\n", len(s.Current().Options))
			continue
		}
		s.Submit()
		printFeedback(ctx, s, explainer)
		s.Advance()
		fmt.Println()
	}

	// Summary.
	score := scoring.Overall(s.Questions(), s.Answers())
	fmt.Printf("── Summary: %d/%d correct (%d%%) ──\n", score.Correct, score.Total, score.Percent())
	for _, t := range scoring.ByTopic(s.Questions(), s.Answers()) {
		fmt.Printf("  %-16s %d/%d\n", t.Topic, t.Correct, t.Total)
	}
	return nil
}

func previewDataset(file string) (question.Dataset, error) {
	if file == "" {
		return question.Bundled()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return question.Dataset{}, err
	}
	return question.Parse(data)
}

func printQuestion(s *session.Session) {
	q := s.Current()
	fmt.Printf("── Question %d/%d · %s ──\n", s.Index()+1, s.Len(), q.TopicOrDefault())
	fmt.Println(q.Prompt)
	if q.Description != "" {
		fmt.Println(q.Description)
	}
	if q.Code != "" {
		fmt.Println()
		for _, line := range strings.Split(q.Code, "\n") {
			fmt.Println("    " + line)
		}
		fmt.Println()
	}
	for j, opt := range q.Options {
		fmt.Printf("  %d) %s\n", j+1, opt)
	}
	if rec, ok := s.Record(q.ID); ok {
		fmt.Printf("(previously answered %d)\n", rec.SelectedIndex+1)
	}
}

func printFeedback(ctx context.Context, s *session.Session, explainer *explain.Service) {
	q := s.Current()
	rec, ok := s.Record(q.ID)
	if !ok {
		return
	}
	if rec.IsCorrect {
		fmt.Println("\033[32m✓ Correct!\033[0m")
	} else {
		fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %d) %s\n", q.AnswerIndex+1, q.Options[q.AnswerIndex])
	}

	text := q.Explanation
	if text == "" && explainer.Enabled() {
		generated, err := explainer.Explain(ctx, q, rec.SelectedIndex)
		if err != nil {
			fmt.Printf("(explanation failed: %v)\n", err)
		}
		text = generated
	}
	if text != "" {
		fmt.Printf("Explanation: %s\n", text)
	}
}
