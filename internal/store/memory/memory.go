// Package memory is the in-memory implementation of the ledger and
// budget persistence collaborators. It backs the default backend and the
// test suites.
package memory

import (
	"context"
	"sync"

	"voiceledger/internal/core"
	"voiceledger/internal/ledger"
)

type Store struct {
	mu      sync.Mutex
	items   []core.Transaction
	budgets map[string]int64
}

func New() *Store {
	return &Store{budgets: make(map[string]int64)}
}

// List returns the current transactions, newest first.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

// Append prepends the transaction and returns the updated list.
// Duplicate ids are rejected.
func (s *Store) Append(_ context.Context, tx core.Transaction) ([]core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.ID == tx.ID {
			return nil, ledger.ErrDuplicateID
		}
	}
	s.items = append([]core.Transaction{tx}, s.items...)
	return append([]core.Transaction(nil), s.items...), nil
}

// Delete removes the matching entry if present and returns the updated
// list. A missing id is not an error.
func (s *Store) Delete(_ context.Context, id string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0:0]
	for _, existing := range s.items {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	s.items = kept
	return append([]core.Transaction(nil), s.items...), nil
}

// Load returns a copy of the saved budget limits.
func (s *Store) Load(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.budgets))
	for cat, cents := range s.budgets {
		out[cat] = cents
	}
	return out, nil
}

// Put stores a budget limit for one category.
func (s *Store) Put(_ context.Context, category string, cents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[category] = cents
	return nil
}
