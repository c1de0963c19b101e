package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/attempt"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/scoring"
	"github.com/abhisek/quizdeck/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testAttempt(id string, at time.Time) attempt.Attempt {
	return attempt.Attempt{
		ID:         id,
		Timestamp:  at,
		Difficulty: question.Medium,
		Score:      scoring.Score{Correct: 1, Total: 2},
		Streak:     2,
		UserMode:   progress.ModeAuthenticated,
		UserLogin:  "ada",
		Questions: []question.Question{
			{ID: "a", Type: question.TypeBoolean, Prompt: "A?", Options: []string{"T", "F"}, Topic: "hooks"},
			{ID: "b", Type: question.TypeCode, Prompt: "B?", Code: "x()", Options: []string{"1", "2"}, AnswerIndex: 1},
		},
		Answers: []session.AnswerRecord{{QuestionID: "a", SelectedIndex: 0, IsCorrect: true}},
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.AppendAttempt(ctx, testAttempt("one", time.Now())))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.AttemptCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAttempts_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	empty, err := s.Attempts(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, s.AppendAttempt(ctx, testAttempt(id, base.Add(time.Duration(i)*time.Minute))))
	}

	got, err := s.Attempts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].ID)
	assert.Equal(t, "first", got[2].ID)

	recent, err := s.RecentAttempts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[1].ID)
}

func TestAttempts_RoundTripFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	want := testAttempt("rt", time.Date(2026, 5, 6, 7, 8, 9, 123, time.UTC))

	require.NoError(t, s.AppendAttempt(ctx, want))
	got, err := s.Attempts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.True(t, want.Timestamp.Equal(got[0].Timestamp))
	got[0].Timestamp = want.Timestamp
	assert.Equal(t, want, got[0])
}

func TestClearAttempts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.AppendAttempt(ctx, testAttempt("x", time.Now())))

	require.NoError(t, s.ClearAttempts(ctx))
	n, err := s.AttemptCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	want := progress.Profile{Mode: progress.ModeAuthenticated, Login: "ada", Name: "Ada", Answered: 3, Correct: 2, Streak: 1, Completion: 0.5}
	require.NoError(t, s.SaveProfile(ctx, want))

	want.Answered = 8
	require.NoError(t, s.SaveProfile(ctx, want))

	p, err = s.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, want, *p)

	require.NoError(t, s.ClearProfile(ctx))
	p, err = s.Profile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestExplanationCache(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Explanation(ctx, "q1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveExplanation(ctx, "q1", "because"))
	text, ok, err := s.Explanation(ctx, "q1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "because", text)
}

func TestBankDataset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.BankDataset(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveBankDataset(ctx, []byte(`{"questions":[]}`)))
	raw, ok, err := s.BankDataset(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"questions":[]}`, string(raw))
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u, err := s.LLMUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, LLMUsage{}, u)

	require.NoError(t, s.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "explain", InputTokens: 10, OutputTokens: 5, Success: true,
	}))
	require.NoError(t, s.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "explain", InputTokens: 3, ErrorMessage: "boom",
	}))

	u, err = s.LLMUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, LLMUsage{Requests: 2, Failures: 1, InputTokens: 13, OutputTokens: 5}, u)
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("QUIZDECK_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = os.Stat(filepath.Dir(p))
	assert.NoError(t, err)
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUIZDECK_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quizdeck", "quizdeck.db"), got)
}

func TestLLMUsageBreakdown(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	usage, err := s.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	assert.Empty(t, usage)

	for _, e := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "explain", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "explain", InputTokens: 2, OutputTokens: 1, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "check", InputTokens: 1, LatencyMs: 50, Success: true},
	} {
		require.NoError(t, s.AppendLLMRequest(ctx, e))
	}

	usage, err = s.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	assert.Equal(t, []PurposeUsage{
		{Purpose: "check", Calls: 1, InputTokens: 1, AvgLatencyMs: 50},
		{Purpose: "explain", Calls: 2, InputTokens: 12, OutputTokens: 6, AvgLatencyMs: 200},
	}, usage)

	models, err := s.LLMUsageByModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ModelUsage{
		{Model: "gpt-4o-mini", Calls: 2, InputTokens: 12, OutputTokens: 6},
		{Model: "mock", Calls: 1, InputTokens: 1},
	}, models)
}
