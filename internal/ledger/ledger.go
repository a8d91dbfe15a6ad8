// Package ledger maintains the per-user transaction ledger: an ordered,
// newest-first snapshot reconciled against a durable store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"voiceledger/internal/core"
)

var ErrDuplicateID = errors.New("duplicate transaction id")

// Store is the persistence collaborator. Mutations return the full
// authoritative post-mutation list, which replaces the local snapshot.
type Store interface {
	List(ctx context.Context) ([]core.Transaction, error)
	Append(ctx context.Context, tx core.Transaction) ([]core.Transaction, error)
	Delete(ctx context.Context, id string) ([]core.Transaction, error)
}

// Publisher emits ledger change events for downstream consumers. It is
// optional; a nil publisher disables eventing.
type Publisher interface {
	PublishTransactionSync(ctx context.Context, id string) error
	PublishTransactionDelete(ctx context.Context, id string) error
}

// Service owns the in-memory snapshot and serializes mutating calls so
// that only one store round-trip is in flight at a time. Without that,
// two overlapping mutations race and the later-arriving response would
// silently win.
type Service struct {
	store     Store
	publisher Publisher

	mu       sync.Mutex
	snapshot []core.Transaction
}

func New(store Store, publisher Publisher) *Service {
	return &Service{store: store, publisher: publisher}
}

// Load replaces the snapshot with the store's current list. Called once
// at session start.
func (s *Service) Load(ctx context.Context) error {
	list, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	s.mu.Lock()
	s.snapshot = list
	s.mu.Unlock()
	return nil
}

// Add appends a transaction. The entry is applied locally first, then
// reconciled with the store's authoritative response; on store failure
// the snapshot rolls back to the last known-good state and the error is
// returned without retry. Duplicate ids are rejected.
func (s *Service) Add(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.snapshot {
		if existing.ID == tx.ID {
			return ErrDuplicateID
		}
	}

	known := s.snapshot
	s.snapshot = append([]core.Transaction{tx}, known...)

	list, err := s.store.Append(ctx, tx)
	if err != nil {
		s.snapshot = known
		return fmt.Errorf("append transaction: %w", err)
	}
	s.snapshot = list

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionSync(ctx, tx.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish sync event", "id", tx.ID, "error", err)
			// Event delivery is best effort; the transaction is persisted.
		}
	}
	return nil
}

// Remove deletes the transaction with the given id. A missing id is a
// no-op, not an error.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, existing := range s.snapshot {
		if existing.ID == id {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	known := s.snapshot
	pruned := make([]core.Transaction, 0, len(known)-1)
	for _, existing := range known {
		if existing.ID != id {
			pruned = append(pruned, existing)
		}
	}
	s.snapshot = pruned

	list, err := s.store.Delete(ctx, id)
	if err != nil {
		s.snapshot = known
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.snapshot = list

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionDelete(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete event", "id", id, "error", err)
		}
	}
	return nil
}

// Snapshot returns a copy of the current ordered sequence, newest first.
func (s *Service) Snapshot() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.snapshot...)
}

// Balance recomputes income minus expense over the full snapshot.
func (s *Service) Balance() core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cents int64
	for _, tx := range s.snapshot {
		switch tx.Type {
		case core.Income:
			cents += tx.Amount.Cents
		case core.Expense:
			cents -= tx.Amount.Cents
		}
	}
	return core.Money{Cents: cents}
}
