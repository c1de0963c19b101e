package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/screens/signin"
)

type staticSource struct {
	ds  question.Dataset
	err error
}

func (s staticSource) Fetch(context.Context) (question.Dataset, error) { return s.ds, s.err }

func newController(t *testing.T) *quiz.Controller {
	t.Helper()
	ds, err := question.Bundled()
	require.NoError(t, err)
	bank, err := question.NewBank(ds)
	require.NoError(t, err)
	ctl, err := quiz.New(quiz.Options{Bank: bank, Logger: slog.New(slog.DiscardHandler)})
	require.NoError(t, err)
	return ctl
}

func TestNewAppModel_StartsAtSignin(t *testing.T) {
	m := newAppModel(Options{Controller: newController(t)})
	assert.IsType(t, &signin.SigninScreen{}, m.router.Active())
}

func TestNewAppModel_SignedInStartsAtHome(t *testing.T) {
	ctl := newController(t)
	ctl.LoginGuest(context.Background())

	m := newAppModel(Options{Controller: ctl})
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{Controller: newController(t)})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRefreshBank(t *testing.T) {
	ctl := newController(t)
	next := question.Dataset{
		Version: "v9.0.0",
		Questions: []question.Question{
			{ID: "x1", Type: question.TypeBoolean, Prompt: "?", Options: []string{"True", "False"}},
		},
	}
	m := newAppModel(Options{
		Controller: ctl,
		BankSource: staticSource{ds: next},
		Logger:     slog.New(slog.DiscardHandler),
	})

	msg := m.refreshBank()()
	refreshed, ok := msg.(bankRefreshedMsg)
	require.True(t, ok)
	require.NoError(t, refreshed.Err)
	assert.True(t, refreshed.Changed)

	version, size := ctl.BankInfo()
	assert.Equal(t, "v9.0.0", version)
	assert.Equal(t, 1, size)

	_, cmd := m.Update(refreshed)
	assert.Nil(t, cmd)
}

func TestRefreshBank_ErrorKeepsBank(t *testing.T) {
	ctl := newController(t)
	before, _ := ctl.BankInfo()
	m := newAppModel(Options{
		Controller: ctl,
		BankSource: staticSource{err: errors.New("offline")},
		Logger:     slog.New(slog.DiscardHandler),
	})

	msg := m.refreshBank()().(bankRefreshedMsg)
	require.Error(t, msg.Err)
	after, _ := ctl.BankInfo()
	assert.Equal(t, before, after)
}

func TestView(t *testing.T) {
	m := newAppModel(Options{Controller: newController(t)})
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.NotPanics(t, func() { model.(AppModel).View() })
}
