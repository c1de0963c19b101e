package signin

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

type fakeSigner struct {
	id  auth.Identity
	err error
}

func (f fakeSigner) SigninURL(state string) string { return "https://id.example/authorize?state=" + state }

func (f fakeSigner) WithCode(code, state string) auth.Authenticator { return f }

func (f fakeSigner) Authenticate(context.Context) (auth.Identity, error) { return f.id, f.err }

func newController(t *testing.T) *quiz.Controller {
	t.Helper()
	ds, err := question.Bundled()
	if err != nil {
		t.Fatal(err)
	}
	bank, err := question.NewBank(ds)
	if err != nil {
		t.Fatal(err)
	}
	ctl, err := quiz.New(quiz.Options{Bank: bank, Logger: slog.New(slog.DiscardHandler)})
	if err != nil {
		t.Fatal(err)
	}
	return ctl
}

func newScreen(t *testing.T, signer auth.Signer) (*SigninScreen, *quiz.Controller) {
	ctl := newController(t)
	return New(Options{
		Controller: ctl,
		Signer:     signer,
		Next:       func() screen.Screen { return &stubScreen{} },
	}), ctl
}

func press(s *SigninScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func expectReset(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.ResetScreenMsg); !ok {
		t.Fatal("expected ResetScreenMsg")
	}
}

func TestGuest(t *testing.T) {
	s, ctl := newScreen(t, nil)

	expectReset(t, press(s, tea.KeyEnter))

	p, ok := ctl.Profile()
	if !ok || !p.IsGuest() {
		t.Fatalf("expected guest profile, got %+v (ok=%v)", p, ok)
	}
}

func TestProviderDisabledWithoutSigner(t *testing.T) {
	s, _ := newScreen(t, nil)
	press(s, tea.KeyDown)
	if s.menu.Selected != 0 {
		t.Errorf("disabled provider item should be skipped, selected = %d", s.menu.Selected)
	}
	if !strings.Contains(s.View(80, 24), "not configured") {
		t.Error("expected 'not configured' hint")
	}
}

func TestProviderSignIn(t *testing.T) {
	s, ctl := newScreen(t, fakeSigner{id: auth.Identity{Login: "octo", DisplayName: "Octo"}})

	press(s, tea.KeyDown)
	press(s, tea.KeyEnter)
	if s.stage != stageCode {
		t.Fatalf("stage = %d, want code entry", s.stage)
	}
	if !strings.Contains(s.url, "state="+s.state) {
		t.Errorf("sign-in URL %q does not carry state", s.url)
	}

	// Enter with nothing typed is ignored.
	if cmd := press(s, tea.KeyEnter); cmd != nil {
		t.Error("expected no command for an empty code")
	}

	s.input.Model.SetValue("  the-code  ")
	cmd := press(s, tea.KeyEnter)
	if cmd == nil || s.stage != stageWaiting {
		t.Fatal("expected exchange to start")
	}

	_, next := s.Update(cmd())
	expectReset(t, next)

	p, ok := ctl.Profile()
	if !ok || p.Login != "octo" || p.IsGuest() {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestProviderFailureShowsMessage(t *testing.T) {
	s, ctl := newScreen(t, fakeSigner{err: &auth.Error{Message: "Sign-in failed: the code was rejected or has expired."}})

	press(s, tea.KeyDown)
	press(s, tea.KeyEnter)
	s.input.Model.SetValue("bad")
	cmd := press(s, tea.KeyEnter)

	_, next := s.Update(cmd())
	if next != nil {
		t.Error("expected no navigation after a failed sign-in")
	}
	if s.stage != stageCode {
		t.Errorf("stage = %d, want code entry after failure", s.stage)
	}
	if !strings.Contains(s.View(100, 30), "rejected or has expired") {
		t.Error("expected the sign-in error to be shown verbatim")
	}
	if _, ok := ctl.Profile(); ok {
		t.Error("failed sign-in must not create a profile")
	}

	press(s, tea.KeyEscape)
	if s.stage != stageMenu || s.errMsg != "" {
		t.Error("Esc should return to the menu and clear the error")
	}
}

func TestRenderBanner(t *testing.T) {
	if !strings.Contains(renderBanner(40), "Q U I Z D E C K") {
		t.Error("expected compact banner on narrow terminals")
	}
	if strings.Contains(renderBanner(100), "Q U I Z D E C K") {
		t.Error("expected full banner on wide terminals")
	}
}
