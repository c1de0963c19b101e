package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	result quiz.Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result quiz.Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	cw := components.ContentWidth(width)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(cw - 8).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline(res.Score.Percent())))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(cw - 8).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("%s · %d/%d correct · %d%%",
			res.Attempt.Difficulty.DisplayName(),
			res.Score.Correct, res.Score.Total, res.Score.Percent())))
	b.WriteString("\n\n")

	if len(res.Topics) > 0 {
		labelWidth := 0
		for _, t := range res.Topics {
			labelWidth = max(labelWidth, lipgloss.Width(t.Topic))
		}
		b.WriteString(theme.Muted.Render("Topics"))
		b.WriteString("\n")
		barWidth := cw - 20
		for _, t := range res.Topics {
			bar := components.NewProgressBar(t.Topic, t.Percent(), barWidth)
			bar.LabelWidth = labelWidth
			b.WriteString(bar.View())
			b.WriteString(theme.Muted.Render(fmt.Sprintf("  %d/%d", t.Correct, t.Total)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	p := res.Profile
	totals := fmt.Sprintf("All time: %d answered · %d correct · %.0f%% accuracy",
		p.Answered, p.Correct, p.Accuracy()*100)
	b.WriteString(theme.Muted.Render(totals))
	if p.IsGuest() {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Guest progress is kept for this run only."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(b.String(), cw))
}

func headline(percent int) string {
	switch {
	case percent == 100:
		return "Perfect score!"
	case percent >= 80:
		return "Great work!"
	case percent >= 50:
		return "Quiz complete"
	default:
		return "Keep practicing"
	}
}
