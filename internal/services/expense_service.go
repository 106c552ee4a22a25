// Package services implements the five expense operations: add, list,
// summarize, delete, and update. Each operation validates its input,
// runs a single parameterized statement, and shapes the result for the
// interface adapters.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"expensed/internal/core"
	"expensed/internal/events"
	"expensed/internal/storage"
)

// ExpenseService executes expense operations against an injected storage
// client. The event publisher is optional: when nil, change events are
// simply skipped.
type ExpenseService struct {
	store     *storage.Client
	publisher *events.Client
}

func NewExpenseService(store *storage.Client, publisher *events.Client) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
	}
}

// AddParams carries the caller-supplied fields of a new expense.
type AddParams struct {
	Date        string
	Amount      float64
	Category    string
	Subcategory string
	Note        string
}

// UpdateParams carries the optional fields of an update. Nil means the
// field was not supplied and must not be touched.
type UpdateParams struct {
	Date        *string
	Amount      *float64
	Category    *string
	Subcategory *string
	Note        *string
}

// Add validates and inserts a new expense. Failures come back as
// structured results, never as errors: bad input and store failures are
// both normal outcomes at this boundary.
func (s *ExpenseService) Add(ctx context.Context, p AddParams) AddResult {
	expense, err := core.NewExpense(p.Date, p.Amount, p.Category, p.Subcategory, p.Note)
	if err != nil {
		return AddResult{Status: StatusError, Message: validationMessage(err)}
	}

	res, err := s.store.Execute(ctx,
		"INSERT INTO expenses (date, amount, category, subcategory, note) VALUES (?, ?, ?, ?, ?)",
		expense.Date, expense.Amount, expense.Category, expense.Subcategory, expense.Note)
	if err != nil {
		return AddResult{Status: StatusError, Message: databaseMessage(err)}
	}

	slog.InfoContext(ctx, "Expense added",
		"id", res.LastInsertID,
		"date", expense.Date,
		"amount", expense.Amount,
		"category", expense.Category)

	s.publish(ctx, events.ActionCreated, res.LastInsertID)

	return AddResult{
		Status:    StatusSuccess,
		ExpenseID: res.LastInsertID,
		Message:   fmt.Sprintf("Expense of $%.2f for %s added successfully", expense.Amount, expense.Category),
	}
}

// List returns expenses with date in the closed interval [start, end],
// optionally filtered by exact category, most recent first. An empty
// result is an empty slice, not an error.
func (s *ExpenseService) List(ctx context.Context, start, end, category string) ([]core.Expense, error) {
	query := `SELECT id, date, amount, category, subcategory, note, created_at, updated_at
		FROM expenses
		WHERE date BETWEEN ? AND ?`
	args := []any{start, end}

	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.store.FetchAll(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	expenses := make([]core.Expense, len(rows))
	for i, row := range rows {
		expenses[i] = expenseFromRow(row)
	}
	return expenses, nil
}

// Summarize groups expenses by category over [start, end], totals
// descending, and computes the grand total rounded to two decimals.
func (s *ExpenseService) Summarize(ctx context.Context, start, end, category string) (SummarizeResult, error) {
	query := `SELECT category, SUM(amount) AS total_amount, COUNT(*) AS count
		FROM expenses
		WHERE date BETWEEN ? AND ?`
	args := []any{start, end}

	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " GROUP BY category ORDER BY total_amount DESC"

	rows, err := s.store.FetchAll(ctx, query, args...)
	if err != nil {
		return SummarizeResult{}, fmt.Errorf("summarize expenses: %w", err)
	}

	summary := make([]core.ExpenseSummary, len(rows))
	var total float64
	for i, row := range rows {
		summary[i] = core.ExpenseSummary{
			Category:    rowString(row["category"]),
			TotalAmount: rowFloat(row["total_amount"]),
			Count:       rowInt(row["count"]),
		}
		total += summary[i].TotalAmount
	}

	return SummarizeResult{
		Summary:         summary,
		Total:           math.Round(total*100) / 100,
		Period:          fmt.Sprintf("%s to %s", start, end),
		CategoriesCount: len(summary),
	}, nil
}

// Delete removes the expense with the given id. Deleting a nonexistent id
// reports not-found, now and on every retry.
func (s *ExpenseService) Delete(ctx context.Context, id int64) MutationResult {
	res, err := s.store.Execute(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return MutationResult{Status: StatusError, Message: databaseMessage(err)}
	}
	if res.RowsAffected == 0 {
		return MutationResult{Status: StatusError, Message: fmt.Sprintf("Expense %d not found", id)}
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	s.publish(ctx, events.ActionDeleted, id)

	return MutationResult{Status: StatusSuccess, Message: fmt.Sprintf("Expense %d deleted successfully", id)}
}

// Update modifies only the supplied fields of an existing expense and
// always advances updated_at. Supplied fields are re-validated with the
// same rules Add applies.
func (s *ExpenseService) Update(ctx context.Context, id int64, p UpdateParams) MutationResult {
	b := storage.NewUpdate("expenses")

	if p.Date != nil {
		if err := core.ValidateDate(*p.Date); err != nil {
			return MutationResult{Status: StatusError, Message: validationMessage(err)}
		}
		b.Set("date", *p.Date)
	}
	if p.Amount != nil {
		amount, err := core.NormalizeAmount(*p.Amount)
		if err != nil {
			return MutationResult{Status: StatusError, Message: validationMessage(err)}
		}
		b.Set("amount", amount)
	}
	if p.Category != nil {
		category := strings.TrimSpace(*p.Category)
		if category == "" {
			return MutationResult{Status: StatusError, Message: "Validation error: category"}
		}
		b.Set("category", category)
	}
	if p.Subcategory != nil {
		b.Set("subcategory", *p.Subcategory)
	}
	if p.Note != nil {
		b.Set("note", *p.Note)
	}

	if b.Empty() {
		return MutationResult{Status: StatusError, Message: "No fields to update"}
	}

	b.SetExpr("updated_at", "datetime('now')")
	query, args := b.Where("id = ?", id).Build()

	res, err := s.store.Execute(ctx, query, args...)
	if err != nil {
		return MutationResult{Status: StatusError, Message: databaseMessage(err)}
	}
	if res.RowsAffected == 0 {
		return MutationResult{Status: StatusError, Message: fmt.Sprintf("Expense %d not found", id)}
	}

	slog.InfoContext(ctx, "Expense updated", "id", id)
	s.publish(ctx, events.ActionUpdated, id)

	return MutationResult{Status: StatusSuccess, Message: fmt.Sprintf("Expense %d updated successfully", id)}
}

// Get fetches a single expense by id. Used by the export worker, not
// exposed as a tool.
func (s *ExpenseService) Get(ctx context.Context, id int64) (core.Expense, error) {
	row, err := s.store.FetchOne(ctx,
		"SELECT id, date, amount, category, subcategory, note, created_at, updated_at FROM expenses WHERE id = ?",
		id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	if row == nil {
		return core.Expense{}, core.ErrNotFound
	}
	return expenseFromRow(row), nil
}

func (s *ExpenseService) publish(ctx context.Context, action string, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseChange(ctx, action, id); err != nil {
		// The expense is already committed; a lost event only delays the
		// export journal.
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"action", action, "id", id, "error", err)
	}
}

// validationMessage shapes a model rejection for the caller boundary.
func validationMessage(err error) string {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		return "Validation error: " + ve.Field
	}
	return "Validation error: " + err.Error()
}

// databaseMessage shapes a store failure for the caller boundary.
func databaseMessage(err error) string {
	var se *storage.StorageError
	if errors.As(err, &se) {
		return fmt.Sprintf("Database error: %v", se.Err)
	}
	return fmt.Sprintf("Database error: %v", err)
}

func expenseFromRow(row map[string]any) core.Expense {
	return core.Expense{
		ID:          rowInt(row["id"]),
		Date:        rowString(row["date"]),
		Amount:      rowFloat(row["amount"]),
		Category:    rowString(row["category"]),
		Subcategory: rowString(row["subcategory"]),
		Note:        rowString(row["note"]),
		CreatedAt:   rowString(row["created_at"]),
		UpdatedAt:   rowString(row["updated_at"]),
	}
}

func rowString(v any) string {
	s, _ := v.(string)
	return s
}

func rowInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func rowFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
