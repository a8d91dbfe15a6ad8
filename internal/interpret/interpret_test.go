package interpret

import (
	"testing"
	"time"

	"voiceledger/internal/core"
)

// Wednesday, 2025-05-14.
var refNow = time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC)

func TestParseVoiceScenario(t *testing.T) {
	d := Parse("add income for $100 in category Business for monday", refNow)
	if d == nil {
		t.Fatal("expected a draft")
	}
	if d.Type != core.Income {
		t.Fatalf("expected Income, got %s", d.Type)
	}
	if d.Amount != "100" {
		t.Fatalf("expected raw amount 100, got %q", d.Amount)
	}
	if d.Category != "Business" {
		t.Fatalf("expected Business, got %q", d.Category)
	}
	// Upcoming Monday from a Wednesday reference.
	if d.Date.ISO() != "2025-05-19" {
		t.Fatalf("expected 2025-05-19, got %s", d.Date.ISO())
	}
}

func TestParseAmountForms(t *testing.T) {
	cases := []struct {
		utterance string
		amount    string
	}{
		{"add expense for $42 in category Food", "42"},
		{"add expense for 42 dollars in category Food", "42"},
		{"add expense for dollars 42 in category Food", "42"},
		{"add expense for 42 in category Food", "42"},
		{"record expense of 19.99 in Food", "19.99"},
	}
	for _, tc := range cases {
		d := Parse(tc.utterance, refNow)
		if d == nil {
			t.Fatalf("%q expected a draft", tc.utterance)
		}
		if d.Amount != tc.amount {
			t.Fatalf("%q expected amount %q, got %q", tc.utterance, tc.amount, d.Amount)
		}
		if d.Category != "Food" {
			t.Fatalf("%q expected Food, got %q", tc.utterance, d.Category)
		}
	}
}

func TestParseVerbsAndPrepositions(t *testing.T) {
	for _, u := range []string{
		"add income for $5 in category Salary",
		"create income of $5 under category Salary",
		"record income for $5 in salary",
	} {
		d := Parse(u, refNow)
		if d == nil {
			t.Fatalf("%q expected a draft", u)
		}
		if d.Category != "Salary" {
			t.Fatalf("%q expected Salary, got %q", u, d.Category)
		}
	}
}

func TestParseDefaultsDateToReferenceDay(t *testing.T) {
	d := Parse("add expense for $10 in category Bills", refNow)
	if d == nil {
		t.Fatal("expected a draft")
	}
	if d.Date.ISO() != "2025-05-14" {
		t.Fatalf("expected reference day, got %s", d.Date.ISO())
	}
}

func TestParseRejects(t *testing.T) {
	cases := []string{
		"",
		"how much did I spend",
		"delete income for $100 in category Business",         // unknown verb
		"add transfer for $100 in category Business",          // unknown type
		"add income for $100 in category Bogus for today",     // unknown category
		"add expense for 50 dollars in category Bogus for today",
		"add income for $100 in category",                     // placeholder category
		"add income for $100 in category Food",                // expense name on income type
		"add income for money in category Business",           // no amount
	}
	for _, u := range cases {
		if d := Parse(u, refNow); d != nil {
			t.Fatalf("%q expected nil, got %+v", u, d)
		}
	}
}

func TestParseMultiWordCategory(t *testing.T) {
	d := Parse("add income for $250 in category rental income for tomorrow", refNow)
	if d == nil {
		t.Fatal("expected a draft")
	}
	if d.Category != "Rental Income" {
		t.Fatalf("expected Rental Income, got %q", d.Category)
	}
	if d.Date.ISO() != "2025-05-15" {
		t.Fatalf("expected tomorrow, got %s", d.Date.ISO())
	}
}

func TestParseUnparseableDateDegradesToNow(t *testing.T) {
	d := Parse("add expense for $10 in category Food for whenever suits", refNow)
	if d == nil {
		t.Fatal("expected a draft")
	}
	if d.Date.ISO() != "2025-05-14" {
		t.Fatalf("expected reference day, got %s", d.Date.ISO())
	}
}

func TestDraftTransaction(t *testing.T) {
	d := Parse("add income for $100 in category Business", refNow)
	if d == nil {
		t.Fatal("expected a draft")
	}
	tx, err := d.Transaction()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.ID == "" {
		t.Fatal("id must be assigned")
	}
	if tx.Amount.Cents != 10000 {
		t.Fatalf("expected 10000 cents, got %d", tx.Amount.Cents)
	}

	bad := &Draft{Type: core.Income, Amount: "not a number", Category: "Business", Date: core.NewDate(2025, 1, 1)}
	if _, err := bad.Transaction(); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}
