// Package export defines the outbound port for the expense journal: an
// append-only copy of expenses kept outside the primary store.
package export

import (
	"context"

	"expensed/internal/core"
)

// Appender writes one expense row to the journal.
type Appender interface {
	AppendExpense(ctx context.Context, e core.Expense) error
}
