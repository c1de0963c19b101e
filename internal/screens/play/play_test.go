package play

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/session"
)

type fakeExplainer struct {
	text  string
	err   error
	calls int
}

func (f *fakeExplainer) Enabled() bool { return true }

func (f *fakeExplainer) Explain(_ context.Context, _ question.Question, _ int) (string, error) {
	f.calls++
	return f.text, f.err
}

func testQuestions() []question.Question {
	return []question.Question{
		{ID: "q1", Type: question.TypeMultipleChoice, Prompt: "First?", Options: []string{"a", "b", "c"}, AnswerIndex: 1, Topic: "hooks"},
		{ID: "q2", Type: question.TypeBoolean, Prompt: "Second?", Options: []string{"True", "False"}, AnswerIndex: 0, Explanation: "Because."},
	}
}

func newScreen(t *testing.T, exp quiz.Explainer) (*PlayScreen, *quiz.Controller) {
	t.Helper()
	bank, err := question.NewBank(question.Dataset{Version: "v1.0.0", Questions: testQuestions()})
	if err != nil {
		t.Fatal(err)
	}
	ctl, err := quiz.New(quiz.Options{
		Bank:      bank,
		Logger:    slog.New(slog.DiscardHandler),
		Explainer: exp,
	})
	if err != nil {
		t.Fatal(err)
	}
	ctl.LoginGuest(context.Background())

	s, err := session.New(testQuestions())
	if err != nil {
		t.Fatal(err)
	}
	return New(Options{Controller: ctl, Difficulty: question.Easy, Session: s}), ctl
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestPlayScreen_Title(t *testing.T) {
	p, _ := newScreen(t, nil)
	if p.Title() != "Easy quiz" {
		t.Errorf("Title = %q, want %q", p.Title(), "Easy quiz")
	}
}

func TestPlayScreen_CursorAndEnterGrades(t *testing.T) {
	p, _ := newScreen(t, nil)

	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if p.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", p.cursor)
	}
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if p.sess.SlotState() != session.SlotSubmitted {
		t.Fatalf("slot = %v, want submitted", p.sess.SlotState())
	}
	rec, ok := p.sess.Record("q1")
	if !ok || !rec.IsCorrect {
		t.Errorf("record = %+v, %v; want correct", rec, ok)
	}
	if !strings.Contains(p.View(100, 40), "Correct!") {
		t.Error("expected correct feedback in view")
	}
}

func TestPlayScreen_NumberSelectsTentatively(t *testing.T) {
	p, _ := newScreen(t, nil)

	p.Update(key('3'))
	if i, ok := p.sess.Selected(); !ok || i != 2 {
		t.Errorf("Selected = %d, %v; want 2, true", i, ok)
	}
	if p.sess.SlotState() != session.SlotSelected {
		t.Errorf("slot = %v, want selected", p.sess.SlotState())
	}

	p.Update(key('9'))
	if i, _ := p.sess.Selected(); i != 2 {
		t.Errorf("out-of-range digit changed selection to %d", i)
	}
}

func TestPlayScreen_WrongAnswerShowsCorrectOption(t *testing.T) {
	p, _ := newScreen(t, nil)
	p.Update(key('1'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	view := p.View(100, 40)
	if !strings.Contains(view, "Not quite.") {
		t.Error("expected incorrect feedback")
	}
	if !strings.Contains(view, "2) b") {
		t.Error("expected the correct option in feedback")
	}
}

func TestPlayScreen_CompletesAndReplacesWithSummary(t *testing.T) {
	p, ctl := newScreen(t, nil)

	p.Update(key('2'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if p.sess.Index() != 1 {
		t.Fatalf("index = %d, want 1", p.sess.Index())
	}

	p.Update(key('1'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected finish command")
	}
	if !p.finishing {
		t.Error("expected finishing state")
	}

	msg := cmd()
	fin, ok := msg.(finishedMsg)
	if !ok {
		t.Fatalf("msg = %T, want finishedMsg", msg)
	}
	if fin.Err != nil {
		t.Fatal(fin.Err)
	}
	if fin.Result.Score.Correct != 2 || fin.Result.Score.Total != 2 {
		t.Errorf("score = %+v, want 2/2", fin.Result.Score)
	}

	_, cmd = p.Update(fin)
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
	if len(ctl.History()) != 1 {
		t.Errorf("history = %d, want 1", len(ctl.History()))
	}
}

func TestPlayScreen_EnterRetriesFailedFinish(t *testing.T) {
	p, ctl := newScreen(t, nil)
	ctx := context.Background()

	p.Update(key('2'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	p.Update(key('1'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	ctl.Logout(ctx)
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected finish command")
	}
	fin := cmd().(finishedMsg)
	if !errors.Is(fin.Err, quiz.ErrNotSignedIn) {
		t.Fatalf("err = %v, want ErrNotSignedIn", fin.Err)
	}
	p.Update(fin)
	if p.errMsg == "" {
		t.Error("expected error message")
	}

	ctl.LoginGuest(ctx)
	_, cmd = p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected retried finish command")
	}
	fin = cmd().(finishedMsg)
	if fin.Err != nil {
		t.Fatal(fin.Err)
	}
	_, cmd = p.Update(fin)
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
	if len(ctl.History()) != 1 {
		t.Errorf("history = %d, want 1", len(ctl.History()))
	}
}

func TestPlayScreen_SkipLeavesUnanswered(t *testing.T) {
	p, _ := newScreen(t, nil)
	p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if p.sess.Index() != 1 {
		t.Fatalf("index = %d, want 1", p.sess.Index())
	}
	if _, ok := p.sess.Record("q1"); ok {
		t.Error("skipped question should have no record")
	}
}

func TestPlayScreen_RetreatRestoresCursor(t *testing.T) {
	p, _ := newScreen(t, nil)
	p.Update(key('3'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if p.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 on a fresh slot", p.cursor)
	}

	p.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if p.sess.Index() != 0 {
		t.Fatalf("index = %d, want 0", p.sess.Index())
	}
	if p.cursor != 2 {
		t.Errorf("cursor = %d, want 2", p.cursor)
	}
}

func TestPlayScreen_RetreatAtStartPops(t *testing.T) {
	p, _ := newScreen(t, nil)
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestPlayScreen_EscConfirmsQuit(t *testing.T) {
	p, ctl := newScreen(t, nil)

	p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !p.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	if len(p.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(p.KeyHints()))
	}

	p.Update(key('n'))
	if p.confirmQuit {
		t.Fatal("n should dismiss confirmation")
	}

	p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := p.Update(key('y'))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if len(ctl.History()) != 0 {
		t.Error("abandoned quiz must not be recorded")
	}
}

func TestPlayScreen_Explain(t *testing.T) {
	exp := &fakeExplainer{text: "Because hooks."}
	p, _ := newScreen(t, exp)

	_, cmd := p.Update(key('e'))
	if cmd != nil {
		t.Fatal("explain before grading should do nothing")
	}

	p.Update(key('1'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(p.View(100, 40), "Press e") {
		t.Error("expected explain hint")
	}

	_, cmd = p.Update(key('e'))
	if cmd == nil {
		t.Fatal("expected explain command")
	}
	p.Update(cmd())
	if exp.calls != 1 {
		t.Errorf("calls = %d, want 1", exp.calls)
	}
	if !strings.Contains(p.View(100, 40), "Because hooks.") {
		t.Error("expected explanation in view")
	}

	if _, cmd := p.Update(key('e')); cmd != nil {
		t.Error("explained question should not ask again")
	}
}

func TestPlayScreen_ExplainError(t *testing.T) {
	exp := &fakeExplainer{err: errors.New("offline")}
	p, _ := newScreen(t, exp)
	p.Update(key('1'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	_, cmd := p.Update(key('e'))
	if cmd == nil {
		t.Fatal("expected explain command")
	}
	p.Update(cmd())
	if !strings.Contains(p.errMsg, "offline") {
		t.Errorf("errMsg = %q", p.errMsg)
	}
}

func TestPlayScreen_BundledExplanationNeedsNoProvider(t *testing.T) {
	exp := &fakeExplainer{text: "unused"}
	p, _ := newScreen(t, exp)
	p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	p.Update(key('1'))
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !strings.Contains(p.View(100, 40), "Because.") {
		t.Error("expected bundled explanation")
	}
	if _, cmd := p.Update(key('e')); cmd != nil {
		t.Error("bundled explanation should not call the provider")
	}
}
