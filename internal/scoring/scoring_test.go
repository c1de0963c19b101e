package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/session"
)

func q(id, topic string) question.Question {
	return question.Question{ID: id, Type: question.TypeBoolean, Prompt: "?", Options: []string{"a", "b"}, Topic: topic}
}

func TestOverall(t *testing.T) {
	var qs []question.Question
	var answers []session.AnswerRecord
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("q%d", i)
		qs = append(qs, q(id, ""))
		answers = append(answers, session.AnswerRecord{QuestionID: id, IsCorrect: i < 6})
	}

	got := Overall(qs, answers)
	assert.Equal(t, Score{Correct: 6, Total: 10}, got)
	assert.Equal(t, 60, got.Percent())
}

func TestOverall_UnansweredCountTowardTotal(t *testing.T) {
	qs := []question.Question{q("a", ""), q("b", ""), q("c", "")}
	answers := []session.AnswerRecord{{QuestionID: "a", IsCorrect: true}}
	assert.Equal(t, Score{Correct: 1, Total: 3}, Overall(qs, answers))
}

func TestOverall_Empty(t *testing.T) {
	got := Overall(nil, nil)
	assert.Equal(t, Score{}, got)
	assert.Equal(t, 0, got.Percent())
}

func TestByTopic(t *testing.T) {
	qs := []question.Question{q("h1", "hooks"), q("h2", "hooks"), q("g1", "")}
	answers := []session.AnswerRecord{
		{QuestionID: "h1", IsCorrect: true},
		{QuestionID: "h2", IsCorrect: false},
		{QuestionID: "g1", IsCorrect: true},
	}

	want := []TopicStat{
		{Topic: "General", Correct: 1, Total: 1},
		{Topic: "hooks", Correct: 1, Total: 2},
	}
	assert.Equal(t, want, ByTopic(qs, answers))
}

func TestByTopic_UnansweredCounted(t *testing.T) {
	qs := []question.Question{q("s1", "state"), q("s2", "state")}
	got := ByTopic(qs, nil)
	assert.Equal(t, []TopicStat{{Topic: "state", Correct: 0, Total: 2}}, got)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{7, 7, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}
