package services

import "expensed/internal/core"

// Result statuses reported by mutating operations.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AddResult is the outcome of adding an expense.
type AddResult struct {
	Status    string `json:"status"`
	ExpenseID int64  `json:"expense_id,omitempty"`
	Message   string `json:"message"`
}

// MutationResult is the outcome of a delete or update.
type MutationResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SummarizeResult aggregates expenses by category over a period.
type SummarizeResult struct {
	Summary         []core.ExpenseSummary `json:"summary"`
	Total           float64               `json:"total"`
	Period          string                `json:"period"`
	CategoriesCount int                   `json:"categories_count"`
}
