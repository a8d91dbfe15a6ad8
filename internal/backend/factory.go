// Package backend builds the persistence collaborators for a session:
// an in-memory store for ephemeral runs, or the SQLite store for
// durable ones.
package backend

import (
	"fmt"
	"log/slog"

	"voiceledger/internal/budget"
	"voiceledger/internal/ledger"
	"voiceledger/internal/storage"
	"voiceledger/internal/store/memory"
)

// Result bundles the constructed collaborators. Repository is non-nil
// only for the sqlite backend; the worker needs it for sync bookkeeping.
type Result struct {
	LedgerStore ledger.Store
	BudgetStore budget.Store
	Repository  *storage.SQLiteStore
}

// Close releases backend resources. Safe on any Result.
func (r *Result) Close() error {
	if r.Repository != nil {
		return r.Repository.Close()
	}
	return nil
}

// New constructs the backend described by the config.
func New(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
		return &Result{LedgerStore: repo, BudgetStore: repo, Repository: repo}, nil
	default:
		store := memory.New()
		logger.Info("Initialized memory backend")
		return &Result{LedgerStore: store, BudgetStore: store}, nil
	}
}
