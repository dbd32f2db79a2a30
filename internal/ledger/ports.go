// Package ledger defines the ports the application uses to reach its
// record store.
package ledger

import (
	"context"

	"tally/internal/core"
)

type (
	// ExpenseAppender persists a single record at the end of the ledger.
	ExpenseAppender interface {
		// Append validates and stores the record, returning its row
		// reference (position in the ledger).
		Append(ctx context.Context, e core.Expense) (rowRef string, err error)
	}

	// ExpenseLister loads every record in ledger order.
	ExpenseLister interface {
		ListAll(ctx context.Context) ([]core.Expense, error)
	}
)
