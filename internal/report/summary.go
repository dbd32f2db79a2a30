// Package report computes aggregates over an in-memory set of expense
// records: summary statistics for the current filtered view and the
// per-month totals the forecaster consumes.
package report

import (
	"sort"

	"tally/internal/core"
)

// CategoryAmount is an amount aggregated under one category label.
type CategoryAmount struct {
	Name   string
	Amount core.Money
}

// Summary holds the figures shown in the summary panel.
type Summary struct {
	Total      core.Money
	Average    core.Money
	Max        core.Money
	Count      int
	ByCategory []CategoryAmount
}

// MonthTotal is the summed amount for one calendar month.
type MonthTotal struct {
	Year  int
	Month int // 1-12
	Total core.Money
}

// Summarize computes total, per-record average, largest single amount and
// per-category sums. An empty view reports zeros with an empty breakdown.
func Summarize(items []core.Expense) Summary {
	s := Summary{Count: len(items)}
	if len(items) == 0 {
		return s
	}

	byCat := make(map[string]int64)
	for _, e := range items {
		s.Total.Cents += e.Amount.Cents
		if e.Amount.Cents > s.Max.Cents {
			s.Max = e.Amount
		}
		byCat[e.Category] += e.Amount.Cents
	}
	s.Average = core.Money{Cents: divRound(s.Total.Cents, int64(s.Count))}

	s.ByCategory = make([]CategoryAmount, 0, len(byCat))
	for name, cents := range byCat {
		s.ByCategory = append(s.ByCategory, CategoryAmount{Name: name, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if s.ByCategory[i].Amount.Cents != s.ByCategory[j].Amount.Cents {
			return s.ByCategory[i].Amount.Cents > s.ByCategory[j].Amount.Cents
		}
		return s.ByCategory[i].Name < s.ByCategory[j].Name
	})
	return s
}

// MonthlyTotals groups records by calendar month and returns the summed
// amounts in chronological order.
func MonthlyTotals(items []core.Expense) []MonthTotal {
	type ym struct{ year, month int }
	sums := make(map[ym]int64)
	for _, e := range items {
		sums[ym{e.Date.Year(), e.Date.Month()}] += e.Amount.Cents
	}

	out := make([]MonthTotal, 0, len(sums))
	for k, cents := range sums {
		out = append(out, MonthTotal{Year: k.year, Month: k.month, Total: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// Categories returns the distinct category labels present in the data,
// sorted, for the filter selector.
func Categories(items []core.Expense) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, e := range items {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	sort.Strings(out)
	return out
}

// divRound divides with half-up rounding; b must be positive.
func divRound(a, b int64) int64 {
	if a >= 0 {
		return (a + b/2) / b
	}
	return -((-a + b/2) / b)
}
