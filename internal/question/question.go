package question

import "fmt"

// DefaultTopic is used for questions that carry no topic.
const DefaultTopic = "General"

// Type is the kind of prompt a question presents.
type Type string

const (
	TypeMultipleChoice Type = "multiple-choice"
	TypeBoolean        Type = "boolean"
	TypeCode           Type = "code"
)

// Valid reports whether t is a known question type.
func (t Type) Valid() bool {
	switch t {
	case TypeMultipleChoice, TypeBoolean, TypeCode:
		return true
	}
	return false
}

// Difficulty selects how many questions a quiz draws from the bank.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists every difficulty in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty converts a user-supplied string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	if d := Difficulty(s); d.Valid() {
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q: must be easy, medium, or hard", s)
}

// Valid reports whether d is one of Difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// DisplayName returns the capitalized label shown in menus.
func (d Difficulty) DisplayName() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return string(d)
}

// Question is a single multiple-choice item from the bank.
// Questions are created when a dataset is loaded and never mutated.
type Question struct {
	ID          string   `json:"id" validate:"required"`
	Type        Type     `json:"type" validate:"required,question_type"`
	Prompt      string   `json:"prompt" validate:"required"`
	Description string   `json:"description,omitempty"`
	Code        string   `json:"code,omitempty"`
	Options     []string `json:"options" validate:"min=2,dive,required"`
	AnswerIndex int      `json:"answerIndex" validate:"gte=0"`
	Explanation string   `json:"explanation,omitempty"`
	Topic       string   `json:"topic,omitempty"`
}

// TopicOrDefault returns the question's topic, or DefaultTopic when unset.
func (q Question) TopicOrDefault() string {
	if q.Topic == "" {
		return DefaultTopic
	}
	return q.Topic
}

// IsCorrect reports whether selecting option index i answers q correctly.
func (q Question) IsCorrect(i int) bool {
	return i == q.AnswerIndex
}

// Clone returns a deep copy of q so the copy shares no backing arrays.
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}

// CloneAll deep-copies a question list.
func CloneAll(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
