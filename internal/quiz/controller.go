// Package quiz wires the quiz engine to its collaborators: the question
// bank, persistence, sign-in, and the optional explanation service.
package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/quizdeck/internal/attempt"
	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/scoring"
	"github.com/abhisek/quizdeck/internal/selector"
	"github.com/abhisek/quizdeck/internal/session"
)

var (
	// ErrNotSignedIn is returned by Start and Finish before any login.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrSessionIncomplete is returned by Finish for a session that has
	// not reached its terminal phase.
	ErrSessionIncomplete = errors.New("session is not complete")

	// ErrAlreadyFinished is returned by Finish for a session that was
	// already recorded.
	ErrAlreadyFinished = errors.New("session already finished")

	// ErrInvalidDifficulty is returned by Start for an unknown difficulty.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrNoExplanation is returned by Explain when a question has no
	// explanation and none can be generated.
	ErrNoExplanation = errors.New("no explanation available")
)

// Storage is the persistence collaborator. Every error it returns is
// logged and swallowed by the Controller.
type Storage interface {
	attempt.Sink
	attempt.Loader
	ClearAttempts(ctx context.Context) error
	Profile(ctx context.Context) (*progress.Profile, error)
	SaveProfile(ctx context.Context, p progress.Profile) error
}

// DatasetCache keeps the last accepted remote dataset across runs.
type DatasetCache interface {
	BankDataset(ctx context.Context) ([]byte, bool, error)
	SaveBankDataset(ctx context.Context, payload []byte) error
}

// Explainer produces an explanation for a question the bank left blank.
type Explainer interface {
	Enabled() bool
	Explain(ctx context.Context, q question.Question, selected int) (string, error)
}

// Options configures a Controller. Only Bank is required.
type Options struct {
	Bank         *question.Bank
	Storage      Storage
	DatasetCache DatasetCache
	Source       selector.Source
	Clock        func() time.Time
	NewID        func() string
	Logger       *slog.Logger
	Explainer    Explainer
}

// Result is what a finished quiz produced.
type Result struct {
	Attempt attempt.Attempt
	Score   scoring.Score
	Topics  []scoring.TopicStat
	Profile progress.Profile
}

// Controller owns the signed-in profile and the attempt history for one
// running app. Methods are safe for concurrent use.
type Controller struct {
	bank      *question.Bank
	storage   Storage
	cache     DatasetCache
	src       selector.Source
	explainer Explainer
	logger    *slog.Logger
	recorder  *attempt.Recorder
	history   *attempt.History

	mu      sync.Mutex
	profile *progress.Profile
}

// New creates a Controller.
func New(opts Options) (*Controller, error) {
	if opts.Bank == nil {
		return nil, errors.New("quiz: question bank is required")
	}
	if opts.Source == nil {
		opts.Source = selector.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	recOpts := []attempt.Option{attempt.WithLogger(opts.Logger)}
	if opts.Clock != nil {
		recOpts = append(recOpts, attempt.WithClock(opts.Clock))
	}
	if opts.NewID != nil {
		recOpts = append(recOpts, attempt.WithIDFunc(opts.NewID))
	}

	var sink attempt.Sink
	if opts.Storage != nil {
		sink = opts.Storage
	}

	return &Controller{
		bank:      opts.Bank,
		storage:   opts.Storage,
		cache:     opts.DatasetCache,
		src:       opts.Source,
		explainer: opts.Explainer,
		logger:    opts.Logger,
		recorder:  attempt.NewRecorder(sink, recOpts...),
		history:   attempt.NewHistory(),
	}, nil
}

// Login signs in through a. On failure the current profile, guest or
// not, is left as it was and the *auth.Error is returned for display.
func (c *Controller) Login(ctx context.Context, a auth.Authenticator) (progress.Profile, error) {
	id, err := a.Authenticate(ctx)
	if err != nil {
		return progress.Profile{}, err
	}

	p := progress.Authenticated(id.Login, id.DisplayName, id.AvatarURL, c.storedProfile(ctx))

	c.mu.Lock()
	c.profile = &p
	c.mu.Unlock()

	c.saveProfile(ctx, p)
	c.loadHistory(ctx)
	c.logger.InfoContext(ctx, "signed in", slog.String("login", p.Login))
	return p, nil
}

// LoginGuest starts a fresh guest profile. Guest progress is never saved.
func (c *Controller) LoginGuest(ctx context.Context) progress.Profile {
	p := progress.Guest()

	c.mu.Lock()
	c.profile = &p
	c.mu.Unlock()

	c.loadHistory(ctx)
	c.logger.InfoContext(ctx, "signed in as guest")
	return p
}

// Logout ends the profile. Authenticated progress is saved first; guest
// progress is discarded.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	p := c.profile
	c.profile = nil
	c.mu.Unlock()

	if p != nil && !p.IsGuest() {
		c.saveProfile(ctx, *p)
	}
}

// Profile returns the active profile, if any.
func (c *Controller) Profile() (progress.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return progress.Profile{}, false
	}
	return *c.profile, true
}

// Start selects questions for d and opens a session over them.
func (c *Controller) Start(d question.Difficulty) (*session.Session, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, d)
	}
	if _, ok := c.Profile(); !ok {
		return nil, ErrNotSignedIn
	}

	picked := selector.PickForDifficulty(d, c.bank.Questions(), c.src)
	if len(picked) == 0 {
		return nil, selector.ErrSelectionEmpty
	}
	return session.New(picked)
}

// Finish scores a completed session, folds it into the profile, records
// the attempt and prepends it to the history. Persistence failures are
// logged and never fail Finish.
func (c *Controller) Finish(ctx context.Context, d question.Difficulty, s *session.Session) (Result, error) {
	if s == nil || s.Phase() != session.PhaseComplete {
		return Result{}, ErrSessionIncomplete
	}

	c.mu.Lock()
	if c.profile == nil {
		c.mu.Unlock()
		return Result{}, ErrNotSignedIn
	}
	if !s.MarkRecorded() {
		c.mu.Unlock()
		return Result{}, ErrAlreadyFinished
	}
	questions := s.Questions()
	answers := s.Answers()
	next := progress.Apply(*c.profile, answers)
	c.profile = &next
	c.mu.Unlock()

	score := scoring.Overall(questions, answers)
	a := c.recorder.Record(ctx, attempt.Input{
		Difficulty: d,
		Score:      score,
		Streak:     next.Streak,
		Mode:       next.Mode,
		Login:      next.Login,
		Questions:  questions,
		Answers:    answers,
	})
	c.history.Prepend(a)

	if !next.IsGuest() {
		c.saveProfile(ctx, next)
	}

	c.logger.InfoContext(ctx, "quiz finished",
		slog.String("attempt_id", a.ID),
		slog.String("difficulty", string(d)),
		slog.Int("correct", score.Correct),
		slog.Int("total", score.Total))

	return Result{
		Attempt: a,
		Score:   score,
		Topics:  scoring.ByTopic(questions, answers),
		Profile: next,
	}, nil
}

// WarmUp draws one random question from the bank. It reports false on an
// empty bank.
func (c *Controller) WarmUp() (question.Question, bool) {
	return selector.PickRandom(c.bank.Questions(), c.src)
}

// History returns the attempts, newest first.
func (c *Controller) History() []attempt.Attempt {
	return c.history.All()
}

// ClearHistory drops every attempt from memory and from storage.
func (c *Controller) ClearHistory(ctx context.Context) {
	c.history.Clear()
	if c.storage == nil {
		return
	}
	if err := c.storage.ClearAttempts(ctx); err != nil {
		c.logger.WarnContext(ctx, "clear stored history failed", slog.Any("error", err))
	}
}

// RefreshBank fetches a dataset from src and swaps it in when its version
// is not older than the active one. It reports whether the bank changed.
// The active pool is kept on any error.
func (c *Controller) RefreshBank(ctx context.Context, src question.Source) (bool, error) {
	ds, err := src.Fetch(ctx)
	if err != nil {
		return false, err
	}

	current := c.bank.Version()
	if !question.Supersedes(current, ds.Version) {
		c.logger.InfoContext(ctx, "remote dataset is older, keeping bank",
			slog.String("current", current), slog.String("remote", ds.Version))
		return false, nil
	}
	if err := c.bank.Replace(ds); err != nil {
		return false, err
	}
	c.logger.InfoContext(ctx, "question bank replaced",
		slog.String("version", ds.Version), slog.Int("questions", len(ds.Questions)))

	if c.cache != nil {
		payload, err := json.Marshal(ds)
		if err == nil {
			err = c.cache.SaveBankDataset(ctx, payload)
		}
		if err != nil {
			c.logger.WarnContext(ctx, "cache question dataset failed", slog.Any("error", err))
		}
	}
	return true, nil
}

// RestoreBank swaps in the dataset cached by an earlier RefreshBank, if it
// is not older than the active one. Failures are logged.
func (c *Controller) RestoreBank(ctx context.Context) bool {
	if c.cache == nil {
		return false
	}

	payload, ok, err := c.cache.BankDataset(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "read cached dataset failed", slog.Any("error", err))
		return false
	}
	if !ok {
		return false
	}

	ds, err := question.Parse(payload)
	if err != nil {
		c.logger.WarnContext(ctx, "cached dataset rejected", slog.Any("error", err))
		return false
	}
	if !question.Supersedes(c.bank.Version(), ds.Version) {
		return false
	}
	if err := c.bank.Replace(ds); err != nil {
		c.logger.WarnContext(ctx, "cached dataset rejected", slog.Any("error", err))
		return false
	}
	return true
}

// CanExplain reports whether Explain can produce text for q.
func (c *Controller) CanExplain(q question.Question) bool {
	return q.Explanation != "" || (c.explainer != nil && c.explainer.Enabled())
}

// Explain returns the explanation for q, generating one when the bank
// has none. selected is the chosen option index, or -1.
func (c *Controller) Explain(ctx context.Context, q question.Question, selected int) (string, error) {
	if q.Explanation != "" {
		return q.Explanation, nil
	}
	if c.explainer == nil {
		return "", ErrNoExplanation
	}
	text, err := c.explainer.Explain(ctx, q, selected)
	if err != nil {
		return "", fmt.Errorf("explain %s: %w", q.ID, err)
	}
	return text, nil
}

// BankInfo returns the active dataset version and size.
func (c *Controller) BankInfo() (version string, size int) {
	return c.bank.Version(), c.bank.Len()
}

// Questions returns a snapshot of the active pool.
func (c *Controller) Questions() []question.Question {
	return c.bank.Questions()
}

func (c *Controller) storedProfile(ctx context.Context) *progress.Profile {
	if c.storage == nil {
		return nil
	}
	p, err := c.storage.Profile(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "load stored profile failed", slog.Any("error", err))
		return nil
	}
	return p
}

func (c *Controller) saveProfile(ctx context.Context, p progress.Profile) {
	if c.storage == nil {
		return
	}
	if err := c.storage.SaveProfile(ctx, p); err != nil {
		c.logger.WarnContext(ctx, "save profile failed", slog.Any("error", err))
	}
}

func (c *Controller) loadHistory(ctx context.Context) {
	if c.storage == nil {
		return
	}
	if err := c.history.Load(ctx, c.storage); err != nil {
		c.logger.WarnContext(ctx, "load history failed", slog.Any("error", err))
	}
}
