// Package signin is the first screen: continue as a guest or sign in
// through the configured identity provider.
package signin

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type stage int

const (
	stageMenu stage = iota
	stageCode
	stageWaiting
)

type loginDoneMsg struct {
	Profile progress.Profile
	Err     error
}

// Options configures the sign-in screen.
type Options struct {
	Controller *quiz.Controller
	// Signer is nil when no identity provider is configured.
	Signer  auth.Signer
	Timeout time.Duration
	// Next builds the screen shown after a successful sign-in.
	Next func() screen.Screen
}

// SigninScreen lets the user pick guest or provider sign-in.
type SigninScreen struct {
	opts   Options
	menu   components.Menu
	input  components.TextInput
	stage  stage
	state  string
	url    string
	errMsg string
}

var _ screen.Screen = (*SigninScreen)(nil)
var _ screen.KeyHintProvider = (*SigninScreen)(nil)

// New creates a SigninScreen.
func New(opts Options) *SigninScreen {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	s := &SigninScreen{
		opts:  opts,
		input: components.NewTextInput("Paste the code from the sign-in page", 512),
	}

	provider := components.MenuItem{Label: "Sign in", Action: s.beginProvider}
	if opts.Signer == nil {
		provider.Disabled = true
		provider.Hint = "not configured"
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Continue as guest", Action: s.continueAsGuest},
		provider,
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *SigninScreen) Init() tea.Cmd {
	return nil
}

func (s *SigninScreen) Title() string {
	return "Sign in"
}

func (s *SigninScreen) KeyHints() []layout.KeyHint {
	switch s.stage {
	case stageCode:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Sign in"},
			{Key: "Esc", Description: "Back"},
		}
	case stageWaiting:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SigninScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		if msg.Err != nil {
			s.errMsg = auth.Message(msg.Err)
			s.stage = stageCode
			s.input.Reset()
			return s, nil
		}
		return s, s.next()

	case tea.KeyPressMsg:
		switch s.stage {
		case stageMenu:
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		case stageCode:
			return s.handleCodeKey(msg)
		}
		return s, nil
	}

	if s.stage == stageCode {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SigninScreen) handleCodeKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.stage = stageMenu
		s.errMsg = ""
		return s, nil
	case "enter":
		code := s.input.Value()
		if code == "" {
			return s, nil
		}
		s.stage = stageWaiting
		s.errMsg = ""
		return s, s.exchange(code)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SigninScreen) continueAsGuest() tea.Cmd {
	s.opts.Controller.LoginGuest(context.Background())
	return s.next()
}

func (s *SigninScreen) beginProvider() tea.Cmd {
	s.state = uuid.NewString()
	s.url = s.opts.Signer.SigninURL(s.state)
	s.stage = stageCode
	s.errMsg = ""
	s.input.Reset()
	return s.input.Init()
}

func (s *SigninScreen) exchange(code string) tea.Cmd {
	authenticator := s.opts.Signer.WithCode(code, s.state)
	ctl := s.opts.Controller
	timeout := s.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		p, err := ctl.Login(ctx, authenticator)
		return loginDoneMsg{Profile: p, Err: err}
	}
}

func (s *SigninScreen) next() tea.Cmd {
	if s.opts.Next == nil {
		return nil
	}
	next := s.opts.Next()
	return func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

func (s *SigninScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, renderBanner(width)))
	sections = append(sections, theme.Subtitle.Width(cw).Render("React quizzes in your terminal"))

	switch s.stage {
	case stageMenu:
		sections = append(sections, components.Card(s.menu.View(), cw))
	case stageCode:
		var b strings.Builder
		b.WriteString(theme.Body.Render("Open this address in a browser and sign in:"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Width(cw - 6).Render(s.url))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render("Then paste the code here:"))
		b.WriteString("\n")
		b.WriteString(s.input.View())
		sections = append(sections, components.Card(b.String(), cw))
	case stageWaiting:
		sections = append(sections, theme.Hint.Render("Signing in..."))
	}

	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Width(cw).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}
