// Package worker consumes ledger events and mirrors the ledger into an
// external spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"voiceledger/internal/amqp"
	"voiceledger/internal/core"
)

// Exporter is the outbound side of the sync: append a transaction row,
// or remove one by id.
type Exporter interface {
	Append(ctx context.Context, tx core.Transaction) error
	Delete(ctx context.Context, id string) error
}

// Repository is the slice of the SQLite store the worker needs.
type Repository interface {
	Get(ctx context.Context, id string) (core.Transaction, error)
	ListUnsynced(ctx context.Context, limit int) ([]core.Transaction, error)
	MarkSynced(ctx context.Context, id string) error
}

type SyncWorker struct {
	repo      Repository
	exporter  Exporter
	batchSize int
}

func NewSyncWorker(repo Repository, exporter Exporter, batchSize int) *SyncWorker {
	return &SyncWorker{
		repo:      repo,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleEvent processes a single ledger event.
func (w *SyncWorker) HandleEvent(ctx context.Context, event *amqp.LedgerEvent) error {
	switch event.Op {
	case amqp.OpSync:
		return w.syncTransaction(ctx, event.ID)
	case amqp.OpDelete:
		if err := w.exporter.Delete(ctx, event.ID); err != nil {
			return fmt.Errorf("delete from export: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown ledger event op %q", event.Op)
}

func (w *SyncWorker) syncTransaction(ctx context.Context, id string) error {
	tx, err := w.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	if err := w.exporter.Append(ctx, tx); err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}

	if err := w.repo.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced", "id", id)
	return nil
}

// StartupSyncCheck drains transactions that were persisted but never
// exported, e.g. after a worker outage. Failures stop the batch so the
// remaining entries are retried on the next run.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	for {
		pending, err := w.repo.ListUnsynced(ctx, w.batchSize)
		if err != nil {
			return fmt.Errorf("list unsynced: %w", err)
		}
		if len(pending) == 0 {
			return nil
		}

		slog.InfoContext(ctx, "Syncing pending transactions", "count", len(pending))
		for _, tx := range pending {
			if err := w.syncTransaction(ctx, tx.ID); err != nil {
				return err
			}
		}
		if len(pending) < w.batchSize {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
