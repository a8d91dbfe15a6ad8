// Package report derives read-only views from a ledger snapshot: budget
// utilization, monthly income/expense rollups and top categories. All
// functions are pure over their inputs.
package report

import (
	"sort"

	"voiceledger/internal/core"
)

// DefaultTopN is the number of leading categories surfaced per type.
const DefaultTopN = 3

type (
	// Utilization describes one expense category against its budget
	// limit. Percent is capped at 100 for display; Consumed and Limit
	// carry the raw figures and Over flags spend beyond the limit.
	Utilization struct {
		Category string
		Consumed core.Money
		Limit    core.Money
		Percent  float64
		Over     bool
	}

	// MonthBucket sums income and expenses for one calendar month.
	MonthBucket struct {
		Year    int
		Month   int // 1-12
		Income  core.Money
		Expense core.Money
	}

	// CategoryTotal is a per-category sum used for top-N rankings.
	CategoryTotal struct {
		Category string
		Total    core.Money
	}

	// Insights bundles the headline figures shown on the dashboard.
	Insights struct {
		TotalIncome  core.Money
		TotalExpense core.Money
		SavingsRate  float64 // percent of income kept; 0 when no income
	}
)

// BudgetUtilization reports consumption against the supplied limits for
// every known expense category, in registry order. A zero limit always
// yields percent 0, whatever was consumed.
func BudgetUtilization(snapshot []core.Transaction, limits map[string]int64) []Utilization {
	consumed := make(map[string]int64)
	for _, tx := range snapshot {
		if tx.Type == core.Expense {
			consumed[tx.Category] += tx.Amount.Cents
		}
	}

	categories := core.Categories(core.Expense)
	out := make([]Utilization, 0, len(categories))
	for _, cat := range categories {
		spent := consumed[cat]
		limit := limits[cat]
		u := Utilization{
			Category: cat,
			Consumed: core.Money{Cents: spent},
			Limit:    core.Money{Cents: limit},
		}
		if limit > 0 {
			pct := float64(spent) / float64(limit) * 100
			if pct > 100 {
				pct = 100
			}
			u.Percent = pct
			u.Over = spent > limit
		}
		out = append(out, u)
	}
	return out
}

// MonthlyRollup partitions the snapshot by calendar month, summing
// income and expenses separately. Buckets come back ascending by
// (year, month) with no duplicate keys.
func MonthlyRollup(snapshot []core.Transaction) []MonthBucket {
	type key struct{ year, month int }
	buckets := make(map[key]*MonthBucket)
	for _, tx := range snapshot {
		k := key{tx.Date.Year(), tx.Date.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &MonthBucket{Year: k.year, Month: k.month}
			buckets[k] = b
		}
		switch tx.Type {
		case core.Income:
			b.Income.Cents += tx.Amount.Cents
		case core.Expense:
			b.Expense.Cents += tx.Amount.Cents
		}
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// TopCategories ranks categories of the given type by total amount,
// descending, keeping at most n entries. The sort is stable: ties keep
// the order in which categories were first encountered in the snapshot.
func TopCategories(snapshot []core.Transaction, typ core.TransactionType, n int) []CategoryTotal {
	totals := make(map[string]int64)
	var order []string
	for _, tx := range snapshot {
		if tx.Type != typ {
			continue
		}
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] += tx.Amount.Cents
	}

	ranked := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		ranked = append(ranked, CategoryTotal{Category: cat, Total: core.Money{Cents: totals[cat]}})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.Cents > ranked[j].Total.Cents
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Overview computes the headline totals and savings rate.
func Overview(snapshot []core.Transaction) Insights {
	var in, out int64
	for _, tx := range snapshot {
		switch tx.Type {
		case core.Income:
			in += tx.Amount.Cents
		case core.Expense:
			out += tx.Amount.Cents
		}
	}
	ins := Insights{
		TotalIncome:  core.Money{Cents: in},
		TotalExpense: core.Money{Cents: out},
	}
	if in > 0 {
		ins.SavingsRate = float64(in-out) / float64(in) * 100
	}
	return ins
}
