package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the only accepted textual date form. Keeping dates in this
// form means lexical comparison matches chronological comparison, which the
// storage layer relies on for range queries.
const DateLayout = "2006-01-02"

// Expense is one recorded spending event. JSON tags match the column names
// of the expenses table so rows round-trip through the adapters unchanged.
type Expense struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Note        string  `json:"note"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// ExpenseSummary is a derived per-category aggregate. It is computed per
// query and never stored.
type ExpenseSummary struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
}

// ErrNotFound reports an operation targeting a nonexistent expense id.
var ErrNotFound = errors.New("expense not found")

// ValidationError identifies the offending field of a rejected expense.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewExpense builds a validated expense from raw caller input.
//
// The date must be a real calendar date written exactly as YYYY-MM-DD.
// The amount must be positive and is normalized to two decimal places,
// rounding half away from zero. The category must be non-empty after
// trimming and is stored trimmed. Subcategory and note are free text.
func NewExpense(date string, amount float64, category, subcategory, note string) (Expense, error) {
	if err := ValidateDate(date); err != nil {
		return Expense{}, err
	}

	amount, err := NormalizeAmount(amount)
	if err != nil {
		return Expense{}, err
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return Expense{}, &ValidationError{Field: "category", Reason: "must not be empty"}
	}

	return Expense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Subcategory: subcategory,
		Note:        note,
	}, nil
}

// ValidateDate checks that s is a valid Gregorian date in the fixed
// YYYY-MM-DD form. The round-trip format check rejects unpadded variants
// that time.Parse would otherwise accept.
func ValidateDate(s string) error {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return &ValidationError{Field: "date", Reason: "must be a valid date in YYYY-MM-DD format"}
	}
	return nil
}

// NormalizeAmount validates that v is positive and rounds it to two
// decimal places, half away from zero.
func NormalizeAmount(v float64) (float64, error) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}
	return math.Round(v*100) / 100, nil
}
