package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizdeck/internal/attempt"
)

// AppendAttempt stores a as the newest attempt.
func (s *Store) AppendAttempt(ctx context.Context, a attempt.Attempt) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}

	query, args := builder().Insert(tableAttempts).
		Columns(colID, colRecordedAt, colPayload).
		Values(a.ID, a.Timestamp.UTC().Format(time.RFC3339Nano), string(payload)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

// Attempts returns every stored attempt, newest first.
func (s *Store) Attempts(ctx context.Context) ([]attempt.Attempt, error) {
	return s.queryAttempts(ctx, 0)
}

// RecentAttempts returns at most limit attempts, newest first.
func (s *Store) RecentAttempts(ctx context.Context, limit int) ([]attempt.Attempt, error) {
	return s.queryAttempts(ctx, limit)
}

func (s *Store) queryAttempts(ctx context.Context, limit int) ([]attempt.Attempt, error) {
	b := builder()
	sel := b.Select(colPayload).
		From(b.Table(tableAttempts)).
		OrderBy(entsql.Desc(colSeq))
	if limit > 0 {
		sel = sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []attempt.Attempt
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		var a attempt.Attempt
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			return nil, fmt.Errorf("decode attempt: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

// ClearAttempts deletes the whole attempt history.
func (s *Store) ClearAttempts(ctx context.Context) error {
	query, args := builder().Delete(tableAttempts).Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}

// AttemptCount returns the number of stored attempts.
func (s *Store) AttemptCount(ctx context.Context) (int, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).From(b.Table(tableAttempts)).Query()

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}
