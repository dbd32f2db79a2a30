// Package http provides HTTP server and handler implementations.
//
// This file parses and validates request data: the add-expense form and
// the filter panel's query parameters.

package http

import (
	"net/url"
	"strings"

	"tally/internal/core"
)

// ParseFilter extracts the filter panel's selection from query or form
// values. Absent or unparseable bounds are simply not applied, mirroring
// the behavior of an empty filter field.
func ParseFilter(values url.Values) core.Filter {
	var f core.Filter

	if v := strings.TrimSpace(values.Get("from")); v != "" {
		if d, err := core.ParseDate(v); err == nil {
			f.From = d
		}
	}
	if v := strings.TrimSpace(values.Get("to")); v != "" {
		if d, err := core.ParseDate(v); err == nil {
			f.To = d
		}
	}
	f.Category = sanitizeInput(values.Get("category"))
	return f
}

// filterKey builds the cache key for a filter selection. Category matching
// is case-insensitive, so the key folds case too.
func filterKey(f core.Filter) string {
	from, to := "", ""
	if !f.From.IsZero() {
		from = f.From.String()
	}
	if !f.To.IsZero() {
		to = f.To.String()
	}
	cat := strings.ToLower(strings.TrimSpace(f.Category))
	if cat == strings.ToLower(core.CategoryAll) {
		cat = ""
	}
	return from + "|" + to + "|" + cat
}

// parseExpenseForm turns the add-expense form into a validated record.
// The second return value is a user-facing message when parsing fails.
func parseExpenseForm(values url.Values) (core.Expense, string) {
	dateStr := strings.TrimSpace(values.Get("date"))
	category := sanitizeInput(values.Get("category"))
	amountStr := strings.TrimSpace(values.Get("amount"))

	if dateStr == "" || category == "" || amountStr == "" {
		return core.Expense{}, "Please fill all fields"
	}

	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Expense{}, "Invalid date, use YYYY-MM-DD"
	}

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		return core.Expense{}, "Amount must be a positive number"
	}

	e := core.Expense{
		Date:     date,
		Category: category,
		Amount:   core.Money{Cents: cents},
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, "Invalid expense: " + err.Error()
	}
	return e, ""
}
