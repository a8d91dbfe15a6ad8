package core

import "strings"

// The two category sets are fixed at compile time and disjoint. A name
// valid for one transaction type is not valid for the other even when
// spelled identically.
var (
	incomeCategories = []string{
		"Business",
		"Investments",
		"Extra Income",
		"Deposits",
		"Lottery",
		"Gifts",
		"Salary",
		"Savings",
		"Rental Income",
	}

	expenseCategories = []string{
		"Bills",
		"Car",
		"Clothes",
		"Travel",
		"Food",
		"Shopping",
		"House",
		"Entertainment",
		"Phone",
		"Pets",
		"Other",
	}

	incomeSet  = toSet(incomeCategories)
	expenseSet = toSet(expenseCategories)
)

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Categories returns the fixed category names for a transaction type, in
// canonical order. The returned slice is a copy.
func Categories(t TransactionType) []string {
	switch t {
	case Income:
		return append([]string(nil), incomeCategories...)
	case Expense:
		return append([]string(nil), expenseCategories...)
	}
	return nil
}

// NormalizeCategory trims the candidate, splits it on whitespace and
// capitalizes each token (first letter upper, rest lower) before joining
// with single spaces. "rental   income" -> "Rental Income".
func NormalizeCategory(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = capitalize(f)
	}
	return strings.Join(fields, " ")
}

// ValidCategory reports whether the candidate, once normalized, is an
// exact member of the set for the given type. No fuzzy matching.
func ValidCategory(t TransactionType, name string) bool {
	name = NormalizeCategory(name)
	switch t {
	case Income:
		_, ok := incomeSet[name]
		return ok
	case Expense:
		_, ok := expenseSet[name]
		return ok
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
