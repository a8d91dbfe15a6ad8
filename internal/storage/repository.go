// Package storage is the SQLite-backed implementation of the ledger and
// budget persistence collaborators.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voiceledger/internal/core"
	"voiceledger/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// List implements ledger.Store. Entries come back newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, category, amount_cents, tx_date
		FROM transactions
		ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// Append implements ledger.Store: insert, then return the authoritative
// post-mutation list. A duplicate id is rejected, never overwritten.
func (s *SQLiteStore) Append(ctx context.Context, tx core.Transaction) ([]core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	// The primary key is the duplicate guard; a pre-check would race
	// with concurrent writers.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, type, category, amount_cents, tx_date)
		VALUES (?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Type), tx.Category, tx.Amount.Cents, tx.Date.ISO())
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return nil, ledger.ErrDuplicateID
		}
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"type", tx.Type,
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents,
		"date", tx.Date.ISO())

	return s.List(ctx)
}

// isPrimaryKeyViolation recognizes the driver's constraint error for
// the transactions primary key. modernc.org/sqlite reports it in the
// message; the driver does not export a stable error value to match on.
func isPrimaryKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: transactions.id")
}

// Delete implements ledger.Store. A missing id deletes nothing and is
// not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) ([]core.Transaction, error) {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete transaction: %w", err)
	}
	return s.List(ctx)
}

// Get returns a single transaction by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, category, amount_cents, tx_date
		FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, err)
	}
	return tx, err
}

// ListUnsynced returns up to limit transactions not yet exported.
func (s *SQLiteStore) ListUnsynced(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, category, amount_cents, tx_date
		FROM transactions
		WHERE synced_at IS NULL
		ORDER BY created_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unsynced: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// MarkSynced records a successful export.
func (s *SQLiteStore) MarkSynced(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET synced_at = CURRENT_TIMESTAMP WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	return nil
}

// Load implements budget.Store.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, limit_cents FROM budgets`)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var category string
		var cents int64
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out[category] = cents
	}
	return out, rows.Err()
}

// Put implements budget.Store with an upsert per category.
func (s *SQLiteStore) Put(ctx context.Context, category string, cents int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (category, limit_cents, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(category) DO UPDATE SET
			limit_cents = excluded.limit_cents,
			updated_at = excluded.updated_at`,
		category, cents)
	if err != nil {
		return fmt.Errorf("save budget %s: %w", category, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx      core.Transaction
		typ     string
		rawDate string
	)
	if err := row.Scan(&tx.ID, &typ, &tx.Category, &tx.Amount.Cents, &rawDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	tx.Type = core.TransactionType(typ)

	t, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", rawDate, err)
	}
	tx.Date = core.DateOf(t)
	return tx, nil
}
