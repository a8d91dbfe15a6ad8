// Package budget manages the user-set spending limits per expense
// category. Limits are loaded once at startup, default to zero for every
// known category and change only through explicit Set calls, which write
// through to the store.
package budget

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"voiceledger/internal/core"
)

var ErrNegativeLimit = errors.New("budget limit must be non-negative")

// Store is the key-value persistence collaborator, keyed by category
// name. Absent keys default to zero on load.
type Store interface {
	Load(ctx context.Context) (map[string]int64, error)
	Put(ctx context.Context, category string, cents int64) error
}

type Service struct {
	store Store

	mu     sync.Mutex
	limits map[string]int64
}

func New(store Store) *Service {
	limits := make(map[string]int64)
	for _, cat := range core.Categories(core.Expense) {
		limits[cat] = 0
	}
	return &Service{store: store, limits: limits}
}

// Load merges persisted limits over the zero defaults. Persisted keys
// that are no longer valid categories are dropped.
func (s *Service) Load(ctx context.Context) error {
	saved, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load budgets: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for cat, cents := range saved {
		if _, ok := s.limits[cat]; ok && cents >= 0 {
			s.limits[cat] = cents
		}
	}
	return nil
}

// Set updates the limit for one category and persists it.
func (s *Service) Set(ctx context.Context, category string, limit core.Money) error {
	category = core.NormalizeCategory(category)
	if !core.ValidCategory(core.Expense, category) {
		return core.ErrUnknownCategory
	}
	if limit.Cents < 0 {
		return ErrNegativeLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Put(ctx, category, limit.Cents); err != nil {
		return fmt.Errorf("save budget %s: %w", category, err)
	}
	s.limits[category] = limit.Cents
	return nil
}

// Limits returns a copy of the current category limits in cents.
func (s *Service) Limits() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.limits))
	for cat, cents := range s.limits {
		out[cat] = cents
	}
	return out
}
