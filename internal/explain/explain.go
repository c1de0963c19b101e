// Package explain fills in missing answer explanations with an LLM and
// caches them per question.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/question"
)

// ErrUnavailable is returned when a question has no explanation and no
// provider is configured.
var ErrUnavailable = errors.New("no explanation available")

// Cache stores generated explanations keyed by question id.
type Cache interface {
	Explanation(ctx context.Context, questionID string) (string, bool, error)
	SaveExplanation(ctx context.Context, questionID, text string) error
}

// Config controls generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 400, Temperature: 0.2}
}

// Service resolves explanations from the question itself, then the cache,
// then the provider.
type Service struct {
	provider llm.Provider
	cache    Cache
	cfg      Config
	logger   *slog.Logger
}

// NewService creates an explanation service. provider and cache may be nil.
func NewService(provider llm.Provider, cache Cache, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, cache: cache, cfg: cfg, logger: logger}
}

// Enabled reports whether the service can generate new explanations.
func (s *Service) Enabled() bool { return s != nil && s.provider != nil }

type output struct {
	Explanation string `json:"explanation"`
}

// Explain returns an explanation for q. selected is the learner's option
// index, or -1 when unanswered. Cache failures are logged and ignored.
func (s *Service) Explain(ctx context.Context, q question.Question, selected int) (string, error) {
	if q.Explanation != "" {
		return q.Explanation, nil
	}

	if s.cache != nil {
		text, ok, err := s.cache.Explanation(ctx, q.ID)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "read cached explanation failed",
				slog.String("question", q.ID), slog.Any("error", err))
		case ok:
			return text, nil
		}
	}

	if !s.Enabled() {
		return "", ErrUnavailable
	}

	text, err := s.generate(ctx, q, selected)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.SaveExplanation(ctx, q.ID, text); err != nil {
			s.logger.WarnContext(ctx, "cache explanation failed",
				slog.String("question", q.ID), slog.Any("error", err))
		}
	}
	return text, nil
}

func (s *Service) generate(ctx context.Context, q question.Question, selected int) (string, error) {
	ctx = llm.WithPurpose(ctx, "explain")

	req := llm.UserPrompt(systemPrompt, buildUserMessage(q, selected))
	req.Schema = Schema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("explanation generation: %w", err)
	}

	var out output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse explanation response: %w", err)
	}
	return strings.TrimSpace(out.Explanation), nil
}
