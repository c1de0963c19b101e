// Package play is the quiz screen: one question at a time with
// immediate feedback.
package play

import (
	"context"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/summary"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// Options configures the quiz screen.
type Options struct {
	Controller     *quiz.Controller
	Difficulty     question.Difficulty
	Session        *session.Session
	ExplainTimeout time.Duration
}

// PlayScreen drives one session.
type PlayScreen struct {
	opts   Options
	sess   *session.Session
	cursor int

	confirmQuit  bool
	finishing    bool
	explaining   string
	explanations map[string]string
	errMsg       string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a PlayScreen over a started session.
func New(opts Options) *PlayScreen {
	if opts.ExplainTimeout <= 0 {
		opts.ExplainTimeout = 30 * time.Second
	}
	return &PlayScreen{
		opts:         opts,
		sess:         opts.Session,
		explanations: make(map[string]string),
	}
}

func (p *PlayScreen) Init() tea.Cmd {
	return nil
}

func (p *PlayScreen) Title() string {
	return p.opts.Difficulty.DisplayName() + " quiz"
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	if p.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if p.sess.SlotState() == session.SlotSubmitted {
		hints := []layout.KeyHint{
			{Key: "Enter", Description: p.nextLabel()},
			{Key: "←", Description: "Back"},
		}
		if p.canExplain() {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
		}
		return hints
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Check"},
		{Key: "→", Description: "Skip"},
		{Key: "←", Description: "Back"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (p *PlayScreen) nextLabel() string {
	if p.sess.IsLast() {
		return "Finish"
	}
	return "Next"
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case finishedMsg:
		p.finishing = false
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
			return p, nil
		}
		next := summary.New(msg.Result)
		return p, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case explainedMsg:
		if p.explaining == msg.QuestionID {
			p.explaining = ""
		}
		if msg.Err != nil {
			p.errMsg = "Could not get an explanation: " + msg.Err.Error()
			return p, nil
		}
		p.explanations[msg.QuestionID] = msg.Text
		return p, nil

	case tea.KeyPressMsg:
		if p.finishing {
			return p, nil
		}
		if p.confirmQuit {
			return p.handleConfirmKey(msg)
		}
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PlayScreen) handleConfirmKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	case "n", "N", "esc":
		p.confirmQuit = false
	}
	return p, nil
}

func (p *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	opts := len(p.sess.Current().Options)

	switch key {
	case "esc", "q":
		p.confirmQuit = true
		return p, nil
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil
	case "down", "j":
		if p.cursor < opts-1 {
			p.cursor++
		}
		return p, nil
	case "space":
		p.choose(p.cursor)
		return p, nil
	case "enter":
		return p, p.confirm()
	case "right", "l", "tab":
		return p, p.advance()
	case "left", "h", "shift+tab":
		return p, p.retreat()
	case "e":
		return p, p.explain()
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= opts {
		p.cursor = n - 1
		p.choose(p.cursor)
	}
	return p, nil
}

// choose makes a tentative selection. A graded slot ignores it unless it
// was reopened by navigating back to it.
func (p *PlayScreen) choose(i int) {
	p.errMsg = ""
	if err := p.sess.SelectOption(i); err != nil {
		p.errMsg = err.Error()
	}
}

// confirm grades the current slot, selecting the cursor option first if
// nothing is chosen. On a graded slot it moves on.
func (p *PlayScreen) confirm() tea.Cmd {
	switch p.sess.SlotState() {
	case session.SlotSubmitted:
		return p.advance()
	case session.SlotUnanswered:
		p.choose(p.cursor)
	}
	p.sess.Submit()
	return nil
}

// advance moves to the next question. A completed session whose result
// was not recorded retries the finish.
func (p *PlayScreen) advance() tea.Cmd {
	p.errMsg = ""
	if p.sess.Phase() == session.PhaseComplete {
		return p.finish()
	}
	step, _ := p.sess.Advance()
	switch step {
	case session.StepMoved:
		p.syncCursor()
	case session.StepCompleted:
		return p.finish()
	}
	return nil
}

func (p *PlayScreen) retreat() tea.Cmd {
	p.errMsg = ""
	switch p.sess.Retreat() {
	case session.StepExit:
		return func() tea.Msg { return router.PopScreenMsg{} }
	case session.StepMoved:
		p.syncCursor()
	}
	return nil
}

func (p *PlayScreen) syncCursor() {
	if i, ok := p.sess.Selected(); ok {
		p.cursor = i
		return
	}
	p.cursor = 0
}

func (p *PlayScreen) finish() tea.Cmd {
	p.finishing = true
	ctl, d, s := p.opts.Controller, p.opts.Difficulty, p.sess
	return func() tea.Msg {
		res, err := ctl.Finish(context.Background(), d, s)
		return finishedMsg{Result: res, Err: err}
	}
}

func (p *PlayScreen) canExplain() bool {
	q := p.sess.Current()
	if _, ok := p.explanations[q.ID]; ok || q.Explanation != "" {
		return false
	}
	return p.opts.Controller.CanExplain(q)
}

func (p *PlayScreen) explain() tea.Cmd {
	if p.sess.SlotState() != session.SlotSubmitted || !p.canExplain() || p.explaining != "" {
		return nil
	}
	q := p.sess.Current()
	selected, _ := p.sess.Selected()
	p.explaining = q.ID
	p.errMsg = ""

	ctl, timeout := p.opts.Controller, p.opts.ExplainTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := ctl.Explain(ctx, q, selected)
		return explainedMsg{QuestionID: q.ID, Text: text, Err: err}
	}
}
