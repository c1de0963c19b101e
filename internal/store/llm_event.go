package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage summarizes recorded LLM requests.
type LLMUsage struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// AppendLLMRequest records an LLM API call event.
func (s *Store) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	success := 0
	if data.Success {
		success = 1
	}

	query, args := builder().Insert(tableLLMRequests).
		Columns(colRecordedAt, colProvider, colModel, colPurpose,
			colInputTokens, colOutputTokens, colLatencyMs, colSuccess, colErrorMessage).
		Values(time.Now().UTC().Format(time.RFC3339Nano), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, success, data.ErrorMessage).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// LLMUsage totals all recorded LLM requests.
func (s *Store) LLMUsage(ctx context.Context) (LLMUsage, error) {
	b := builder()
	query, args := b.Select(
		entsql.Count("*"),
		"COALESCE(SUM(CASE WHEN "+colSuccess+" = 0 THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM("+colInputTokens+"), 0)",
		"COALESCE(SUM("+colOutputTokens+"), 0)",
	).From(b.Table(tableLLMRequests)).Query()

	var u LLMUsage
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&u.Requests, &u.Failures, &u.InputTokens, &u.OutputTokens)
	if err != nil {
		return LLMUsage{}, fmt.Errorf("query LLM usage: %w", err)
	}
	return u, nil
}

// PurposeUsage is LLM usage for one request purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByPurpose totals recorded LLM requests per purpose, ordered by
// purpose.
func (s *Store) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	b := builder()
	query, args := b.Select(
		colPurpose,
		entsql.Count("*"),
		"COALESCE(SUM("+colInputTokens+"), 0)",
		"COALESCE(SUM("+colOutputTokens+"), 0)",
		"CAST(COALESCE(AVG("+colLatencyMs+"), 0) AS INTEGER)",
	).From(b.Table(tableLLMRequests)).
		GroupBy(colPurpose).
		OrderBy(colPurpose).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ModelUsage is LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LLMUsageByModel totals recorded LLM requests per model, ordered by
// model.
func (s *Store) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	b := builder()
	query, args := b.Select(
		colModel,
		entsql.Count("*"),
		"COALESCE(SUM("+colInputTokens+"), 0)",
		"COALESCE(SUM("+colOutputTokens+"), 0)",
	).From(b.Table(tableLLMRequests)).
		GroupBy(colModel).
		OrderBy(colModel).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
