package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"voiceledger/internal/core"
	"voiceledger/internal/ledger"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testTransaction(id string) core.Transaction {
	return core.Transaction{
		ID:       id,
		Type:     core.Expense,
		Category: "Food",
		Amount:   core.Money{Cents: 1500},
		Date:     core.NewDate(2025, 5, 14),
	}
}

func TestAppendAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	list, err := store.Append(ctx, testTransaction("tx-1"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(list) != 1 || list[0].ID != "tx-1" {
		t.Fatalf("unexpected list after append: %+v", list)
	}
}

func TestAppendDuplicateIDMapsToSentinel(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, testTransaction("tx-dup")); err != nil {
		t.Fatalf("first append: %v", err)
	}

	_, err := store.Append(ctx, testTransaction("tx-dup"))
	if !errors.Is(err, ledger.ErrDuplicateID) {
		t.Fatalf("second append err = %v, want ledger.ErrDuplicateID", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("duplicate append must not add a row, got %d", len(list))
	}
}

func TestIsPrimaryKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pk violation", errors.New("constraint failed: UNIQUE constraint failed: transactions.id (1555)"), true},
		{"other error", errors.New("database is locked"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPrimaryKeyViolation(tt.err); got != tt.want {
				t.Errorf("isPrimaryKeyViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDeleteMissingIDIsNoop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, testTransaction("tx-keep")); err != nil {
		t.Fatalf("append: %v", err)
	}
	list, err := store.Delete(ctx, "tx-absent")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("delete of missing id must not remove rows, got %d", len(list))
	}
}
