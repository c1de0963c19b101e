package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/question"
)

// testQuestions returns n questions whose correct answer is option 0.
func testQuestions(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:      fmt.Sprintf("q%d", i),
			Type:    question.TypeMultipleChoice,
			Prompt:  fmt.Sprintf("Question %d", i),
			Options: []string{"right", "wrong", "also wrong"},
		}
	}
	return qs
}

func newSession(t *testing.T, n int) *Session {
	t.Helper()
	s, err := New(testQuestions(n))
	require.NoError(t, err)
	return s
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestNew_CopiesQuestions(t *testing.T) {
	qs := testQuestions(2)
	s, err := New(qs)
	require.NoError(t, err)

	qs[0].Options[0] = "mutated"
	assert.Equal(t, "right", s.Current().Options[0])
}

func TestSelectOption_Tentative(t *testing.T) {
	s := newSession(t, 2)
	assert.Equal(t, SlotUnanswered, s.SlotState())

	require.NoError(t, s.SelectOption(1))
	assert.Equal(t, SlotSelected, s.SlotState())
	require.NoError(t, s.SelectOption(2))

	idx, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 0, s.Answered(), "selection must not grade")
}

func TestSelectOption_OutOfRange(t *testing.T) {
	s := newSession(t, 1)
	for _, i := range []int{-1, 3, 100} {
		err := s.SelectOption(i)
		assert.True(t, errors.Is(err, ErrOptionOutOfRange), "index %d: %v", i, err)
	}
	assert.Equal(t, SlotUnanswered, s.SlotState())
}

func TestSubmit_WithoutSelectionIsNoop(t *testing.T) {
	s := newSession(t, 2)
	assert.False(t, s.Submit())
	assert.Equal(t, SlotUnanswered, s.SlotState())
	assert.Empty(t, s.Answers())
}

func TestSubmit_Grades(t *testing.T) {
	s := newSession(t, 2)
	require.NoError(t, s.SelectOption(0))
	assert.True(t, s.Submit())
	assert.Equal(t, SlotSubmitted, s.SlotState())

	rec, ok := s.Record("q0")
	require.True(t, ok)
	assert.Equal(t, AnswerRecord{QuestionID: "q0", SelectedIndex: 0, IsCorrect: true}, rec)

	assert.False(t, s.Submit(), "second submit in the same visit is a no-op")
}

func TestSelectOption_AfterSubmitIsNoop(t *testing.T) {
	s := newSession(t, 2)
	require.NoError(t, s.SelectOption(1))
	require.True(t, s.Submit())

	require.NoError(t, s.SelectOption(0))
	assert.Equal(t, SlotSubmitted, s.SlotState())
	idx, _ := s.Selected()
	assert.Equal(t, 1, idx)

	rec, _ := s.Record("q0")
	assert.False(t, rec.IsCorrect)
}

func TestAdvance_ImplicitSubmit(t *testing.T) {
	s := newSession(t, 3)
	require.NoError(t, s.SelectOption(0))

	step, answers := s.Advance()
	assert.Equal(t, StepMoved, step)
	assert.Nil(t, answers)
	assert.Equal(t, 1, s.Index())

	_, ok := s.Record("q0")
	assert.True(t, ok)
	assert.Equal(t, SlotUnanswered, s.SlotState())
}

func TestAdvance_SkipLeavesUnanswered(t *testing.T) {
	s := newSession(t, 3)
	step, _ := s.Advance()
	assert.Equal(t, StepMoved, step)
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, 0, s.Answered())
}

func TestAdvance_LastUngradedIsNoop(t *testing.T) {
	s := newSession(t, 1)
	step, answers := s.Advance()
	assert.Equal(t, StepNone, step)
	assert.Nil(t, answers)
	assert.Equal(t, PhaseInProgress, s.Phase())
}

// A session of N questions needs exactly N advances to complete when
// every question is answered.
func TestAdvance_CompletesAfterN(t *testing.T) {
	const n = 5
	s := newSession(t, n)

	var (
		step    Step
		answers []AnswerRecord
	)
	for i := 0; i < n; i++ {
		require.Equal(t, PhaseInProgress, s.Phase(), "completed early at advance %d", i)
		require.NoError(t, s.SelectOption(i%3))
		step, answers = s.Advance()
	}

	assert.Equal(t, StepCompleted, step)
	assert.Equal(t, PhaseComplete, s.Phase())
	require.Len(t, answers, n)
	for i, rec := range answers {
		assert.Equal(t, fmt.Sprintf("q%d", i), rec.QuestionID, "answers must follow question order")
	}
}

func TestCompletion_OmitsUnanswered(t *testing.T) {
	s := newSession(t, 4)

	s.Advance() // skip q0
	require.NoError(t, s.SelectOption(0))
	s.Advance() // answer q1
	s.Advance() // skip q2
	require.NoError(t, s.SelectOption(1))
	step, answers := s.Advance()

	require.Equal(t, StepCompleted, step)
	require.Len(t, answers, 2)
	assert.Equal(t, "q1", answers[0].QuestionID)
	assert.Equal(t, "q3", answers[1].QuestionID)
}

func TestRetreat_AtStartExits(t *testing.T) {
	s := newSession(t, 2)
	require.NoError(t, s.SelectOption(0))
	assert.Equal(t, StepExit, s.Retreat())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 0, s.Answered())
}

func TestRetreat_RehydratesSubmitted(t *testing.T) {
	s := newSession(t, 3)
	require.NoError(t, s.SelectOption(2))
	s.Advance()

	assert.Equal(t, StepMoved, s.Retreat())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, SlotSubmitted, s.SlotState())
	idx, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestRetreat_DiscardsTentative(t *testing.T) {
	s := newSession(t, 3)
	s.Advance()
	require.NoError(t, s.SelectOption(1))

	s.Retreat()
	s.Advance()
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, SlotUnanswered, s.SlotState())
	_, ok := s.Record("q1")
	assert.False(t, ok)
}

// Submit, retreat, reselect, resubmit keeps exactly one record holding the
// latest submission.
func TestRevisitReplacesRecord(t *testing.T) {
	s := newSession(t, 3)
	require.NoError(t, s.SelectOption(1))
	s.Advance()
	s.Retreat()

	require.NoError(t, s.SelectOption(0))
	assert.Equal(t, SlotSelected, s.SlotState())
	require.True(t, s.Submit())

	assert.Equal(t, 1, s.Answered())
	rec, _ := s.Record("q0")
	assert.Equal(t, 0, rec.SelectedIndex)
	assert.True(t, rec.IsCorrect)
}

func TestRevisitWithoutChangeKeepsRecord(t *testing.T) {
	s := newSession(t, 2)
	require.NoError(t, s.SelectOption(1))
	s.Advance()
	s.Retreat()

	step, _ := s.Advance()
	assert.Equal(t, StepMoved, step)
	rec, _ := s.Record("q0")
	assert.Equal(t, 1, rec.SelectedIndex)
}

func TestRevisitedLastQuestionCompletes(t *testing.T) {
	s := newSession(t, 2)
	s.SelectOption(0)
	s.Advance()
	s.SelectOption(1)
	s.Submit()
	s.Retreat()
	s.Advance()

	step, answers := s.Advance()
	assert.Equal(t, StepCompleted, step)
	assert.Len(t, answers, 2)
}

func TestCompleteIsTerminal(t *testing.T) {
	s := newSession(t, 1)
	require.NoError(t, s.SelectOption(0))
	step, _ := s.Advance()
	require.Equal(t, StepCompleted, step)

	assert.NoError(t, s.SelectOption(1))
	assert.False(t, s.Submit())
	step, answers := s.Advance()
	assert.Equal(t, StepNone, step)
	assert.Nil(t, answers)
	assert.Equal(t, StepNone, s.Retreat())

	rec, _ := s.Record("q0")
	assert.True(t, rec.IsCorrect)
	assert.Equal(t, PhaseComplete, s.Phase())
}

func TestMarkRecorded(t *testing.T) {
	s := newSession(t, 1)
	assert.False(t, s.MarkRecorded(), "in progress")

	require.NoError(t, s.SelectOption(0))
	step, _ := s.Advance()
	require.Equal(t, StepCompleted, step)

	assert.True(t, s.MarkRecorded())
	assert.False(t, s.MarkRecorded())
}

// Under any sequence of operations the index stays in bounds and there is
// never more than one record per question.
func TestInvariantsUnderRandomOps(t *testing.T) {
	const n = 6
	s := newSession(t, n)
	ops := []func(){
		func() { _ = s.SelectOption(0) },
		func() { _ = s.SelectOption(1) },
		func() { s.Submit() },
		func() { s.Advance() },
		func() { s.Retreat() },
	}

	seed := uint32(12345)
	for i := 0; i < 2000 && s.Phase() == PhaseInProgress; i++ {
		seed = seed*1664525 + 1013904223
		ops[int(seed>>16)%len(ops)]()

		require.GreaterOrEqual(t, s.Index(), 0)
		require.Less(t, s.Index(), n)
		require.LessOrEqual(t, s.Answered(), n)

		seen := make(map[string]bool)
		for _, rec := range s.Answers() {
			require.False(t, seen[rec.QuestionID])
			seen[rec.QuestionID] = true
		}
	}
}

func TestQuestionsReturnsCopy(t *testing.T) {
	s := newSession(t, 2)
	qs := s.Questions()
	qs[0].Prompt = "changed"
	assert.Equal(t, "Question 0", s.Current().Prompt)
}
