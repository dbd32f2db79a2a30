// Package memory is an in-memory ledger store used by tests and the
// memory backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"tally/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

func New() *Store {
	return &Store{}
}

// Seed preloads records without validation, for tests.
func Seed(items ...core.Expense) *Store {
	return &Store{items: append([]core.Expense(nil), items...)}
}

// Append stores the record and returns its row reference.
func (s *Store) Append(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return fmt.Sprintf("row:%d", len(s.items)), nil
}

// ListAll returns a copy of the stored records in insertion order.
func (s *Store) ListAll(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}
