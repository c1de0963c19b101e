// Package scoring computes overall and per-topic results for a set of
// graded answers.
package scoring

import (
	"math"
	"sort"

	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/session"
)

// Score is a correct/total pair.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percent returns the score as a rounded percentage.
func (s Score) Percent() int { return Percent(s.Correct, s.Total) }

// TopicStat is the result for one topic.
type TopicStat struct {
	Topic   string `json:"topic"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// Percent returns the topic result as a rounded percentage.
func (t TopicStat) Percent() int { return Percent(t.Correct, t.Total) }

// Overall counts every question toward the total and every correct record
// toward correct. Unanswered questions count as not correct.
func Overall(questions []question.Question, answers []session.AnswerRecord) Score {
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	return Score{Correct: correct, Total: len(questions)}
}

// ByTopic groups questions by topic, with untagged questions under
// question.DefaultTopic, and returns the groups sorted by topic name.
func ByTopic(questions []question.Question, answers []session.AnswerRecord) []TopicStat {
	byID := make(map[string]session.AnswerRecord, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a
	}

	stats := make(map[string]*TopicStat)
	for _, q := range questions {
		topic := q.TopicOrDefault()
		st, ok := stats[topic]
		if !ok {
			st = &TopicStat{Topic: topic}
			stats[topic] = st
		}
		st.Total++
		if a, ok := byID[q.ID]; ok && a.IsCorrect {
			st.Correct++
		}
	}

	out := make([]TopicStat, 0, len(stats))
	for _, st := range stats {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// Percent returns round(correct/total*100), or 0 when total is 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
