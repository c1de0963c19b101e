// Package history lists past quiz attempts, newest first.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/attempt"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type historyClearedMsg struct{}

// HistoryScreen displays past attempts with an optional topic breakdown.
type HistoryScreen struct {
	ctl          *quiz.Controller
	attempts     []attempt.Attempt
	selected     int
	expanded     map[string]bool
	confirmClear bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctl *quiz.Controller) *HistoryScreen {
	return &HistoryScreen{
		ctl:      ctl,
		attempts: ctl.History(),
		expanded: make(map[string]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear all"},
			{Key: "N", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Topics"},
		{Key: "↑↓", Description: "Navigate"},
	}
	if len(s.attempts) > 0 {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Clear"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyClearedMsg:
		s.attempts = s.ctl.History()
		s.selected = 0
		clear(s.expanded)
		return s, nil

	case tea.KeyPressMsg:
		if s.confirmClear {
			switch msg.String() {
			case "y", "Y":
				s.confirmClear = false
				ctl := s.ctl
				return s, func() tea.Msg {
					ctl.ClearHistory(context.Background())
					return historyClearedMsg{}
				}
			case "n", "N", "esc":
				s.confirmClear = false
			}
			return s, nil
		}

		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			if len(s.attempts) > 0 {
				id := s.attempts[s.selected].ID
				s.expanded[id] = !s.expanded[id]
			}
		case "c":
			s.confirmClear = len(s.attempts) > 0
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.confirmClear {
		body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Clear all history?") + "\n" +
			theme.Muted.Render(fmt.Sprintf("%d attempts will be removed.", len(s.attempts))) + "\n\n" +
			theme.Hint.Render("y to clear · n to cancel")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(body, 44))
	}

	if len(s.attempts) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No quizzes yet. Play one from the home screen!"))
	}

	var b strings.Builder
	for i, a := range s.visible(height) {
		idx := s.offset(height) + i
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if idx == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %-6s  %3d/%-3d  %3d%%",
			prefix,
			a.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			a.Difficulty.DisplayName(),
			a.Score.Correct, a.Score.Total, a.Percent())
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[a.ID] {
			for _, t := range a.Topics() {
				b.WriteString(theme.Muted.Render(fmt.Sprintf("      %-16s %d/%d  %d%%",
					t.Topic, t.Correct, t.Total, t.Percent())))
				b.WriteString("\n")
			}
		}
	}

	footer := theme.Muted.Render(fmt.Sprintf("%d attempts", len(s.attempts)))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(strings.TrimRight(b.String(), "\n")+"\n\n"+footer, cw))
}

// pageSize is how many attempt rows fit in the given height.
func pageSize(height int) int {
	return max(height-8, 3)
}

func (s *HistoryScreen) offset(height int) int {
	n := pageSize(height)
	if s.selected < n {
		return 0
	}
	return s.selected - n + 1
}

func (s *HistoryScreen) visible(height int) []attempt.Attempt {
	start := s.offset(height)
	end := min(start+pageSize(height), len(s.attempts))
	return s.attempts[start:end]
}
