package session

// SlotState is the grading state of the current question slot.
type SlotState int

const (
	SlotUnanswered SlotState = iota // No selection and no record
	SlotSelected                    // Tentative selection, not graded
	SlotSubmitted                   // Graded; a record exists
)

func (s SlotState) String() string {
	switch s {
	case SlotUnanswered:
		return "unanswered"
	case SlotSelected:
		return "selected"
	case SlotSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Phase is the lifecycle phase of the whole session.
type Phase int

const (
	PhaseInProgress Phase = iota
	PhaseComplete         // Terminal
)

// Step reports what a navigation call did.
type Step int

const (
	StepNone      Step = iota // Nothing changed
	StepMoved                 // Current index changed
	StepCompleted             // Session reached PhaseComplete
	StepExit                  // Retreat past the first question; caller discards the session
)

// AnswerRecord is the graded answer for one question. IsCorrect is fixed
// at submit time.
type AnswerRecord struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
	IsCorrect     bool   `json:"isCorrect"`
}
