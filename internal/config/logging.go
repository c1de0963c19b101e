package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/quizdeck/internal/store"
)

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenLogFile returns a logger appending to path. The TUI owns the
// terminal, so it logs here instead of stderr. Close the returned file
// when done.
func OpenLogFile(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewLogger(f, level), f, nil
}
