package session

import "github.com/abhisek/quizdeck/internal/question"

// Current returns the question at the current index.
func (s *Session) Current() question.Question { return s.questions[s.current] }

// Index returns the 0-based current index.
func (s *Session) Index() int { return s.current }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// IsLast reports whether the current question is the last one.
func (s *Session) IsLast() bool { return s.current == len(s.questions)-1 }

// Phase returns the session phase.
func (s *Session) Phase() Phase { return s.phase }

// SlotState returns the state of the current slot.
func (s *Session) SlotState() SlotState {
	switch {
	case s.submitted:
		return SlotSubmitted
	case s.selected != noSelection:
		return SlotSelected
	default:
		return SlotUnanswered
	}
}

// Selected returns the selected option of the current slot, tentative or
// graded. ok is false when nothing is selected.
func (s *Session) Selected() (index int, ok bool) {
	return s.selected, s.selected != noSelection
}

// Record returns the graded answer for the question with the given id.
func (s *Session) Record(id string) (AnswerRecord, bool) {
	rec, ok := s.answers[id]
	return rec, ok
}

// Answered returns the number of graded questions.
func (s *Session) Answered() int { return len(s.answers) }

// Answers returns the graded answers ordered by question position.
// Questions never submitted are absent.
func (s *Session) Answers() []AnswerRecord {
	out := make([]AnswerRecord, 0, len(s.answers))
	for _, q := range s.questions {
		if rec, ok := s.answers[q.ID]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Questions returns a copy of the session's question list.
func (s *Session) Questions() []question.Question {
	return question.CloneAll(s.questions)
}
