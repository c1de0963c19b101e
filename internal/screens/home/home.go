// Package home is the main menu shown after sign-in.
package home

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/history"
	"github.com/abhisek/quizdeck/internal/screens/play"
	"github.com/abhisek/quizdeck/internal/selector"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Options configures the home screen.
type Options struct {
	Controller *quiz.Controller
	// SignedOut builds the screen shown after signing out.
	SignedOut      func() screen.Screen
	ExplainTimeout time.Duration
}

// HomeScreen shows the profile, a warm-up question and the main menu.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	warmUp *question.Question
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}

	var items []components.MenuItem
	for _, d := range []question.Difficulty{question.Easy, question.Medium, question.Hard} {
		items = append(items, components.MenuItem{
			Label:  "Play " + d.DisplayName(),
			Hint:   fmt.Sprintf("%d questions", selector.DesiredCount(d)),
			Action: func() tea.Cmd { return h.start(d) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "History", Action: h.openHistory},
		components.MenuItem{Label: "Sign out", Action: h.signOut},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	h.menu = components.NewMenu(items)
	h.drawWarmUp()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume draws a fresh warm-up question when the user comes back.
func (h *HomeScreen) Resume() tea.Cmd {
	h.drawWarmUp()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "w" {
		h.drawWarmUp()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) drawWarmUp() {
	h.warmUp = nil
	if q, ok := h.opts.Controller.WarmUp(); ok {
		h.warmUp = &q
	}
}

func (h *HomeScreen) start(d question.Difficulty) tea.Cmd {
	s, err := h.opts.Controller.Start(d)
	if err != nil {
		if errors.Is(err, selector.ErrSelectionEmpty) {
			h.errMsg = "The question bank is empty. Try again after refreshing it."
		} else {
			h.errMsg = err.Error()
		}
		return nil
	}
	h.errMsg = ""

	next := play.New(play.Options{
		Controller:     h.opts.Controller,
		Difficulty:     d,
		Session:        s,
		ExplainTimeout: h.opts.ExplainTimeout,
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) openHistory() tea.Cmd {
	next := history.New(h.opts.Controller)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) signOut() tea.Cmd {
	h.opts.Controller.Logout(context.Background())
	if h.opts.SignedOut == nil {
		return tea.Quit
	}
	next := h.opts.SignedOut()
	return func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompact(width, height+8)

	var sections []string
	sections = append(sections, h.renderProfile(cw))
	if h.warmUp != nil && !compact {
		sections = append(sections, h.renderWarmUp(cw))
	}
	sections = append(sections, components.Card(h.menu.View(), cw))
	if h.errMsg != "" {
		sections = append(sections, theme.ErrorText.Width(cw).Render(h.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

func (h *HomeScreen) renderProfile(cw int) string {
	p, ok := h.opts.Controller.Profile()
	if !ok {
		return ""
	}

	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(p.Name)
	if p.IsGuest() {
		name += theme.Hint.Render("  (progress is not saved)")
	}

	val := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := theme.Muted
	stats := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		val.Render(fmt.Sprint(p.Answered)), dim.Render("answered"),
		val.Render(fmt.Sprintf("%.0f%%", p.Accuracy()*100)), dim.Render("accuracy"),
		val.Render(fmt.Sprintf("%.0f%%", p.Completion*100)), dim.Render("last quiz"),
		val.Render(fmt.Sprintf("★ %d", p.Streak)), dim.Render("streak"),
	)
	return components.Card(name+"\n"+stats, cw)
}

func (h *HomeScreen) renderWarmUp(cw int) string {
	q := h.warmUp
	head := theme.Muted.Render("Warm-up · " + q.TopicOrDefault())
	prompt := theme.Body.Width(cw - 6).Render(q.Prompt)
	return components.Card(head+"\n"+prompt, cw)
}
