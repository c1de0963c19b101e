package attempt

import (
	"context"
	"fmt"
	"sync"
)

// Loader reads persisted attempts, newest first.
type Loader interface {
	Attempts(ctx context.Context) ([]Attempt, error)
}

// History is the in-memory, newest-first list of attempts. Entries are
// never edited or removed individually; Clear drops them all.
type History struct {
	mu       sync.RWMutex
	attempts []Attempt
}

// NewHistory returns an empty history.
func NewHistory() *History { return &History{} }

// Load replaces the history with what src returns.
func (h *History) Load(ctx context.Context, src Loader) error {
	list, err := src.Attempts(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	copied := make([]Attempt, len(list))
	for i, a := range list {
		copied[i] = a.clone()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.attempts = copied
	return nil
}

// Prepend adds a to the front of the history.
func (h *History) Prepend(a Attempt) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attempts = append([]Attempt{a.clone()}, h.attempts...)
}

// Clear removes every attempt.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attempts = nil
}

// All returns a copy of the history, newest first.
func (h *History) All() []Attempt {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Attempt, len(h.attempts))
	for i, a := range h.attempts {
		out[i] = a.clone()
	}
	return out
}

// Len returns the number of attempts.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.attempts)
}
