package play

import "github.com/abhisek/quizdeck/internal/quiz"

// finishedMsg carries the outcome of recording a completed quiz.
type finishedMsg struct {
	Result quiz.Result
	Err    error
}

// explainedMsg carries an explanation for the question with QuestionID.
type explainedMsg struct {
	QuestionID string
	Text       string
	Err        error
}
