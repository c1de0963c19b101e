package attempt

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/question"
	"github.com/abhisek/quizdeck/internal/scoring"
	"github.com/abhisek/quizdeck/internal/session"
)

// Sink persists recorded attempts.
type Sink interface {
	AppendAttempt(ctx context.Context, a Attempt) error
}

// Input is everything needed to record one completed quiz.
type Input struct {
	Difficulty question.Difficulty
	Score      scoring.Score
	Streak     int
	Mode       progress.Mode
	Login      string
	Questions  []question.Question
	Answers    []session.AnswerRecord
}

// Recorder turns completed sessions into attempts and hands them to a Sink.
type Recorder struct {
	sink   Sink
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock sets the time source for attempt timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDFunc sets the attempt id generator.
func WithIDFunc(f func() string) Option {
	return func(r *Recorder) { r.newID = f }
}

// WithLogger sets the logger used for sink failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// NewRecorder creates a Recorder. sink may be nil, in which case attempts
// are only returned.
func NewRecorder(sink Sink, opts ...Option) *Recorder {
	r := &Recorder{
		sink:   sink,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record builds the attempt and appends it to the sink. A sink failure is
// logged and does not affect the returned attempt.
func (r *Recorder) Record(ctx context.Context, in Input) Attempt {
	a := Attempt{
		ID:         r.newID(),
		Timestamp:  r.now().UTC(),
		Difficulty: in.Difficulty,
		Score:      in.Score,
		Streak:     in.Streak,
		UserMode:   in.Mode,
		UserLogin:  in.Login,
		Questions:  question.CloneAll(in.Questions),
		Answers:    append([]session.AnswerRecord(nil), in.Answers...),
	}
	if a.Answers == nil {
		a.Answers = []session.AnswerRecord{}
	}

	if r.sink != nil {
		if err := r.sink.AppendAttempt(ctx, a.clone()); err != nil {
			r.logger.WarnContext(ctx, "persist attempt failed",
				slog.String("attempt_id", a.ID),
				slog.Any("error", err))
		}
	}
	return a
}
