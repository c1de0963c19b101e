package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizdeck/internal/progress"
)

const (
	keyProfile       = "profile"
	keyExplainPrefix = "explain:"
	keyBankDataset   = "bank:dataset"
)

// get returns the value stored under key. ok is false when the key is absent.
func (s *Store) get(ctx context.Context, key string) (value string, ok bool, err error) {
	b := builder()
	query, args := b.Select(colValue).
		From(b.Table(tableKV)).
		Where(entsql.EQ(colKey, key)).
		Query()

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// set stores value under key, replacing any previous value.
func (s *Store) set(ctx context.Context, key, value string) error {
	query, args := builder().Insert(tableKV).
		Columns(colKey, colValue).
		Values(key, value).
		OnConflict(
			entsql.ConflictColumns(colKey),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) remove(ctx context.Context, key string) error {
	query, args := builder().Delete(tableKV).Where(entsql.EQ(colKey, key)).Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Profile returns the saved profile, or nil if none is saved.
func (s *Store) Profile(ctx context.Context) (*progress.Profile, error) {
	raw, ok, err := s.get(ctx, keyProfile)
	if err != nil || !ok {
		return nil, err
	}
	var p progress.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// SaveProfile stores p as the saved profile.
func (s *Store) SaveProfile(ctx context.Context, p progress.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.set(ctx, keyProfile, string(raw))
}

// ClearProfile removes the saved profile.
func (s *Store) ClearProfile(ctx context.Context) error {
	return s.remove(ctx, keyProfile)
}

// Explanation returns a cached explanation for the question id.
func (s *Store) Explanation(ctx context.Context, questionID string) (string, bool, error) {
	return s.get(ctx, keyExplainPrefix+questionID)
}

// SaveExplanation caches an explanation for the question id.
func (s *Store) SaveExplanation(ctx context.Context, questionID, text string) error {
	return s.set(ctx, keyExplainPrefix+questionID, text)
}

// BankDataset returns the last accepted remote dataset payload.
func (s *Store) BankDataset(ctx context.Context) ([]byte, bool, error) {
	raw, ok, err := s.get(ctx, keyBankDataset)
	return []byte(raw), ok, err
}

// SaveBankDataset stores a remote dataset payload for the next start.
func (s *Store) SaveBankDataset(ctx context.Context, payload []byte) error {
	return s.set(ctx, keyBankDataset, string(payload))
}
