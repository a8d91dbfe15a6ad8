package core

import "testing"

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"business", "Business"},
		{"  RENTAL income ", "Rental Income"},
		{"extra   income", "Extra Income"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Fatalf("%q expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestValidCategory(t *testing.T) {
	cases := []struct {
		typ  TransactionType
		name string
		ok   bool
	}{
		{Income, "Business", true},
		{Income, "business", true},
		{Income, " rental   income ", true},
		{Expense, "Food", true},
		{Expense, "pets", true},
		{Income, "Food", false},     // expense-only name
		{Expense, "Business", false}, // income-only name
		{Income, "Bogus", false},
		{Expense, "", false},
		{"Transfer", "Food", false},
	}
	for i, tc := range cases {
		if got := ValidCategory(tc.typ, tc.name); got != tc.ok {
			t.Fatalf("case %d (%s/%q) expected %v, got %v", i, tc.typ, tc.name, tc.ok, got)
		}
	}
}

func TestCategorySetsAreDisjoint(t *testing.T) {
	for _, n := range Categories(Income) {
		if ValidCategory(Expense, n) {
			t.Fatalf("%q appears in both sets", n)
		}
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	a := Categories(Expense)
	a[0] = "Mutated"
	if Categories(Expense)[0] != "Bills" {
		t.Fatal("Categories must not expose internal state")
	}
}
