package http

import "tally/internal/core"

// formatAmount formats cents with the configured currency symbol
// (e.g. "€12.34"). Negative amounts put the sign before the symbol.
func formatAmount(cents int64, symbol string) string {
	if cents < 0 {
		return "-" + symbol + core.Money{Cents: -cents}.Decimal()
	}
	return symbol + core.Money{Cents: cents}.Decimal()
}
