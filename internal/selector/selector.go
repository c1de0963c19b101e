// Package selector picks the questions served by a quiz session.
package selector

import (
	"errors"

	"github.com/abhisek/quizdeck/internal/question"
)

// ErrSelectionEmpty is returned when a session cannot start because the
// bank has no questions.
var ErrSelectionEmpty = errors.New("no questions available")

// DesiredCount returns how many questions a session of difficulty d asks.
func DesiredCount(d question.Difficulty) int {
	switch d {
	case question.Easy:
		return 10
	case question.Medium:
		return 25
	case question.Hard:
		return 50
	default:
		return 0
	}
}

// PickForDifficulty returns min(DesiredCount(d), len(bank)) distinct
// questions in uniformly random order. The bank slice is not modified.
func PickForDifficulty(d question.Difficulty, bank []question.Question, src Source) []question.Question {
	n := DesiredCount(d)
	if n > len(bank) {
		n = len(bank)
	}
	if n == 0 {
		return []question.Question{}
	}

	pool := append([]question.Question(nil), bank...)
	shuffle(pool, src)
	return pool[:n]
}

// PickRandom returns one uniformly chosen question. The boolean is false
// when the bank is empty.
func PickRandom(bank []question.Question, src Source) (question.Question, bool) {
	if len(bank) == 0 {
		return question.Question{}, false
	}
	return bank[src.IntN(len(bank))], true
}

// shuffle is a Fisher–Yates shuffle driven by src.
func shuffle(qs []question.Question, src Source) {
	for i := len(qs) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}
