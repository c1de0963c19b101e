package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/screens/signin"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// Options holds the dependencies for the app.
type Options struct {
	Controller *quiz.Controller
	// Signer is nil when no identity provider is configured.
	Signer      auth.Signer
	AuthTimeout time.Duration

	// BankSource, when set, is fetched once in the background at startup.
	BankSource  question.Source
	BankTimeout time.Duration

	ExplainTimeout time.Duration
	Logger         *slog.Logger
}

type bankRefreshedMsg struct {
	Changed bool
	Err     error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel that starts at the home screen when a
// profile is already signed in, and at sign-in otherwise.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var signinScreen, homeScreen func() screen.Screen
	homeScreen = func() screen.Screen {
		return home.New(home.Options{
			Controller:     opts.Controller,
			SignedOut:      signinScreen,
			ExplainTimeout: opts.ExplainTimeout,
		})
	}
	signinScreen = func() screen.Screen {
		return signin.New(signin.Options{
			Controller: opts.Controller,
			Signer:     opts.Signer,
			Timeout:    opts.AuthTimeout,
			Next:       homeScreen,
		})
	}

	initial := signinScreen
	if _, ok := opts.Controller.Profile(); ok {
		initial = homeScreen
	}
	return AppModel{
		opts:   opts,
		router: router.New(initial()),
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.opts.BankSource != nil {
		cmds = append(cmds, m.refreshBank())
	}
	return tea.Batch(cmds...)
}

func (m AppModel) refreshBank() tea.Cmd {
	ctl, src, timeout := m.opts.Controller, m.opts.BankSource, m.opts.BankTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		changed, err := ctl.RefreshBank(ctx, src)
		return bankRefreshedMsg{Changed: changed, Err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bankRefreshedMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn("question bank refresh failed", slog.Any("error", msg.Err))
			return m, nil
		}
		version, size := m.opts.Controller.BankInfo()
		m.opts.Logger.Info("question bank refresh done",
			slog.Bool("changed", msg.Changed),
			slog.String("version", version),
			slog.Int("questions", size))
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	user, streak := "", 0
	if p, ok := m.opts.Controller.Profile(); ok {
		user, streak = p.Name, p.Streak
	}
	header := layout.RenderHeader(title, user, streak, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
