// Package attempt builds immutable records of completed quizzes and keeps
// the newest-first history of them.
package attempt

import (
	"time"

	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/scoring"
	"github.com/abhisek/quizdeck/internal/session"
)

// Attempt is a completed quiz. It owns copies of the questions and answers
// it was built from, so later bank replacement cannot change it.
type Attempt struct {
	ID         string                 `json:"id"`
	Timestamp  time.Time              `json:"timestamp"`
	Difficulty question.Difficulty    `json:"difficulty"`
	Score      scoring.Score          `json:"score"`
	Streak     int                    `json:"streak"`
	UserMode   progress.Mode          `json:"userMode"`
	UserLogin  string                 `json:"userLogin"`
	Questions  []question.Question    `json:"questions"`
	Answers    []session.AnswerRecord `json:"answers"`
}

// Topics returns the per-topic breakdown of the attempt.
func (a Attempt) Topics() []scoring.TopicStat {
	return scoring.ByTopic(a.Questions, a.Answers)
}

// Percent returns the overall score as a percentage.
func (a Attempt) Percent() int { return a.Score.Percent() }

func (a Attempt) clone() Attempt {
	c := a
	c.Questions = question.CloneAll(a.Questions)
	c.Answers = append([]session.AnswerRecord(nil), a.Answers...)
	return c
}
