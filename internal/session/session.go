// Package session implements the per-quiz state machine: option
// selection, grading, and navigation over a fixed question list.
package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/quizdeck/internal/question"
)

var (
	// ErrNoQuestions is returned by New for an empty question list.
	ErrNoQuestions = errors.New("session has no questions")

	// ErrOptionOutOfRange is returned by SelectOption for an index outside
	// the current question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")
)

const noSelection = -1

// Session is the mutable state of one quiz run. It is owned by a single
// flow and is not safe for concurrent use.
type Session struct {
	questions []question.Question
	current   int

	// answers holds at most one record per question id; resubmission
	// replaces the entry.
	answers map[string]AnswerRecord

	selected  int
	submitted bool

	// reopenable is set when the slot was restored from an existing record
	// by navigation. A new selection then reopens it for re-grading.
	reopenable bool

	phase    Phase
	recorded bool
}

// New starts a session over a private copy of questions.
func New(questions []question.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{
		questions: question.CloneAll(questions),
		answers:   make(map[string]AnswerRecord, len(questions)),
		selected:  noSelection,
	}, nil
}

// SelectOption records a tentative choice for the current question.
//
// It does nothing once the session is complete, or when the slot was
// graded during the current visit. On a slot restored from an earlier
// record it reopens the slot so the next Submit replaces that record.
func (s *Session) SelectOption(i int) error {
	if s.phase == PhaseComplete {
		return nil
	}
	q := s.questions[s.current]
	if i < 0 || i >= len(q.Options) {
		return fmt.Errorf("%w: %d not in [0, %d) for question %s", ErrOptionOutOfRange, i, len(q.Options), q.ID)
	}
	if s.submitted {
		if !s.reopenable {
			return nil
		}
		s.submitted = false
		s.reopenable = false
	}
	s.selected = i
	return nil
}

// Submit grades the tentative selection and writes or replaces the record
// for the current question. It reports whether anything was graded.
func (s *Session) Submit() bool {
	if s.phase == PhaseComplete || s.submitted || s.selected == noSelection {
		return false
	}
	q := s.questions[s.current]
	s.answers[q.ID] = AnswerRecord{
		QuestionID:    q.ID,
		SelectedIndex: s.selected,
		IsCorrect:     q.IsCorrect(s.selected),
	}
	s.submitted = true
	s.reopenable = false
	return true
}

// Advance grades a pending selection, then moves forward. On the last
// question a graded slot completes the session and the answers are
// returned in question order; an ungraded last slot leaves the session
// unchanged.
func (s *Session) Advance() (Step, []AnswerRecord) {
	if s.phase == PhaseComplete {
		return StepNone, nil
	}
	s.Submit()

	if s.current == len(s.questions)-1 {
		if !s.submitted {
			return StepNone, nil
		}
		s.phase = PhaseComplete
		return StepCompleted, s.Answers()
	}

	s.current++
	s.rehydrate()
	return StepMoved, nil
}

// Retreat moves back one question, discarding any ungraded selection on
// the slot being left. At the first question it returns StepExit and the
// session is left as is for the caller to discard.
func (s *Session) Retreat() Step {
	if s.phase == PhaseComplete {
		return StepNone
	}
	if s.current == 0 {
		return StepExit
	}
	s.current--
	s.rehydrate()
	return StepMoved
}

// MarkRecorded claims a completed session for recording. It reports false
// when the session is not complete or was already claimed.
func (s *Session) MarkRecorded() bool {
	if s.phase != PhaseComplete || s.recorded {
		return false
	}
	s.recorded = true
	return true
}

// rehydrate derives the current slot from any existing record.
func (s *Session) rehydrate() {
	rec, ok := s.answers[s.questions[s.current].ID]
	if !ok {
		s.selected = noSelection
		s.submitted = false
		s.reopenable = false
		return
	}
	s.selected = rec.SelectedIndex
	s.submitted = true
	s.reopenable = true
}
