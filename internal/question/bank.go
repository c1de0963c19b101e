package question

import (
	"fmt"
	"sync"
)

// Bank is the active question pool. The pool is replaced wholesale and
// never edited in place, so a reader sees either the old or the new pool.
type Bank struct {
	mu        sync.RWMutex
	questions []Question
	version   string
}

// NewBank validates ds and returns a bank holding it.
func NewBank(ds Dataset) (*Bank, error) {
	b := &Bank{}
	if err := b.Load(ds); err != nil {
		return nil, err
	}
	return b, nil
}

// Load sets the initial pool.
func (b *Bank) Load(ds Dataset) error {
	if err := Validate(ds.Questions); err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}
	b.swap(ds)
	return nil
}

// Replace atomically swaps the pool for ds. A dataset that fails
// validation is rejected and the previous pool stays active. Sessions
// already in flight hold their own copies and are unaffected.
func (b *Bank) Replace(ds Dataset) error {
	if err := Validate(ds.Questions); err != nil {
		return fmt.Errorf("replace question bank: %w", err)
	}
	b.swap(ds)
	return nil
}

func (b *Bank) swap(ds Dataset) {
	pool := CloneAll(ds.Questions)
	if pool == nil {
		pool = []Question{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.questions = pool
	b.version = ds.Version
}

// Questions returns the current pool. The returned slice is a fresh copy
// of the pool header; the pool itself is never modified after a swap.
func (b *Bank) Questions() []Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Question(nil), b.questions...)
}

// Version returns the dataset version of the active pool ("" if unversioned).
func (b *Bank) Version() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Len returns the number of questions in the active pool.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}
