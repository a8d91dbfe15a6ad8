package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:       "t1",
		Type:     Income,
		Category: "Business",
		Amount:   Money{Cents: 10000},
		Date:     NewDate(2025, 5, 20),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{ID: "", Type: Income, Category: "Business", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
		{ID: "t", Type: "Transfer", Category: "Business", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
		{ID: "t", Type: Income, Category: "Bogus", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
		{ID: "t", Type: Expense, Category: "Business", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)}, // income name, expense type
		{ID: "t", Type: Income, Category: "Business", Amount: Money{Cents: -1}, Date: NewDate(2025, 1, 1)},
		{ID: "t", Type: Income, Category: "Business", Amount: Money{Cents: 1}, Date: Date{Time: time.Time{}}},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestZeroAmountIsAllowed(t *testing.T) {
	tx := Transaction{
		ID:       "t1",
		Type:     Expense,
		Category: "Food",
		Amount:   Money{Cents: 0},
		Date:     NewDate(2025, 1, 1),
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}
}

func TestNewTransactionAssignsUniqueIDs(t *testing.T) {
	a := NewTransaction(Income, "Salary", Money{Cents: 100}, NewDate(2025, 1, 1))
	b := NewTransaction(Income, "Salary", Money{Cents: 100}, NewDate(2025, 1, 1))
	if a.ID == "" || b.ID == "" {
		t.Fatal("ids must be assigned")
	}
	if a.ID == b.ID {
		t.Fatalf("ids must be unique, both %q", a.ID)
	}
}

func TestDateISO(t *testing.T) {
	d := NewDate(2025, 5, 7)
	if got := d.ISO(); got != "2025-05-07" {
		t.Fatalf("expected 2025-05-07, got %s", got)
	}
}
