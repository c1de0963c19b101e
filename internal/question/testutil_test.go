package question

import "fmt"

func sampleQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:          fmt.Sprintf("q-%02d", i),
			Type:        TypeMultipleChoice,
			Prompt:      fmt.Sprintf("Question %d?", i),
			Options:     []string{"a", "b", "c"},
			AnswerIndex: i % 3,
		}
	}
	return qs
}
