package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/attempt"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/scoring"
)

func testResult() quiz.Result {
	return quiz.Result{
		Attempt: attempt.Attempt{
			ID:         "a-1",
			Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Difficulty: question.Easy,
			Score:      scoring.Score{Correct: 7, Total: 10},
		},
		Score: scoring.Score{Correct: 7, Total: 10},
		Topics: []scoring.TopicStat{
			{Topic: "hooks", Correct: 4, Total: 5},
			{Topic: "jsx", Correct: 3, Total: 5},
		},
		Profile: progress.Profile{
			Mode:     progress.ModeAuthenticated,
			Login:    "octo",
			Answered: 30,
			Correct:  21,
			Streak:   2,
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult())
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	for _, want := range []string{"7/10 correct", "hooks", "jsx"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_GuestNote(t *testing.T) {
	res := testResult()
	res.Profile = progress.Guest()
	view := New(res).View(80, 30)
	if !strings.Contains(view, "Guest progress") {
		t.Error("expected guest note in view")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

func TestHeadline(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{100, "Perfect score!"},
		{85, "Great work!"},
		{50, "Quiz complete"},
		{10, "Keep practicing"},
	}
	for _, tt := range tests {
		if got := headline(tt.percent); got != tt.want {
			t.Errorf("headline(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}
