package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the local SQLite database holding attempt history, the saved
// profile, cached explanations and LLM request events.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// builder returns an SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func migrate(ctx context.Context, db *sql.DB) error {
	b := builder()
	tables := []*entsql.TableBuilder{
		b.CreateTable(tableAttempts).IfNotExists().
			Columns(
				entsql.Column(colSeq).Type("integer").Attr("PRIMARY KEY AUTOINCREMENT"),
				entsql.Column(colID).Type("text").Attr("NOT NULL"),
				entsql.Column(colRecordedAt).Type("text").Attr("NOT NULL"),
				entsql.Column(colPayload).Type("text").Attr("NOT NULL"),
			),
		b.CreateTable(tableKV).IfNotExists().
			Columns(
				entsql.Column(colKey).Type("text").Attr("PRIMARY KEY"),
				entsql.Column(colValue).Type("text").Attr("NOT NULL"),
			),
		b.CreateTable(tableLLMRequests).IfNotExists().
			Columns(
				entsql.Column(colSeq).Type("integer").Attr("PRIMARY KEY AUTOINCREMENT"),
				entsql.Column(colRecordedAt).Type("text").Attr("NOT NULL"),
				entsql.Column(colProvider).Type("text").Attr("NOT NULL"),
				entsql.Column(colModel).Type("text").Attr("NOT NULL"),
				entsql.Column(colPurpose).Type("text").Attr("NOT NULL"),
				entsql.Column(colInputTokens).Type("integer").Attr("NOT NULL DEFAULT 0"),
				entsql.Column(colOutputTokens).Type("integer").Attr("NOT NULL DEFAULT 0"),
				entsql.Column(colLatencyMs).Type("integer").Attr("NOT NULL DEFAULT 0"),
				entsql.Column(colSuccess).Type("integer").Attr("NOT NULL"),
				entsql.Column(colErrorMessage).Type("text").Attr("NOT NULL DEFAULT ''"),
			),
	}

	for _, t := range tables {
		query, args := t.Query()
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DataDir returns the application data directory:
// $XDG_DATA_HOME/quizdeck or ~/.local/share/quizdeck.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quizdeck"), nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZDECK_DB environment variable
// 2. $XDG_DATA_HOME/quizdeck/quizdeck.db
// 3. ~/.local/share/quizdeck/quizdeck.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZDECK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "quizdeck.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
