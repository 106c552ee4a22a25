package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	first.Close()

	// Reopening the same file reruns migrations, which must be a no-op.
	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer second.Close()

	if _, err := second.FetchAll(context.Background(), "SELECT id FROM expenses"); err != nil {
		t.Fatalf("expenses table missing after reopen: %v", err)
	}
}

func TestExecuteReturnsInsertID(t *testing.T) {
	c := openTestClient(t)
	ctx := context.Background()

	res, err := c.Execute(ctx,
		"INSERT INTO expenses (date, amount, category) VALUES (?, ?, ?)",
		"2024-03-01", 12.34, "food")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.RowsAffected != 1 {
		t.Errorf("RowsAffected = %d, want 1", res.RowsAffected)
	}
	if res.LastInsertID == 0 {
		t.Error("LastInsertID should be set for inserts")
	}

	row, err := c.FetchOne(ctx, "SELECT * FROM expenses WHERE id = ?", res.LastInsertID)
	if err != nil {
		t.Fatalf("FetchOne: %v", err)
	}
	if row == nil {
		t.Fatal("inserted row not found")
	}
	if row["category"] != "food" {
		t.Errorf("category = %v, want food", row["category"])
	}
	if row["amount"] != 12.34 {
		t.Errorf("amount = %v, want 12.34", row["amount"])
	}
	if row["created_at"] == nil || row["updated_at"] == nil {
		t.Errorf("timestamps not assigned by store: %v", row)
	}
}

func TestFetchAllEmptyAndOrdering(t *testing.T) {
	c := openTestClient(t)
	ctx := context.Background()

	rows, err := c.FetchAll(ctx, "SELECT * FROM expenses")
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}

	for _, date := range []string{"2024-01-02", "2024-01-01", "2024-01-03"} {
		if _, err := c.Execute(ctx,
			"INSERT INTO expenses (date, amount, category) VALUES (?, ?, ?)",
			date, 1.0, "misc"); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	rows, err = c.FetchAll(ctx, "SELECT date FROM expenses ORDER BY date DESC")
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	want := []string{"2024-01-03", "2024-01-02", "2024-01-01"}
	for i, row := range rows {
		if row["date"] != want[i] {
			t.Errorf("row %d date = %v, want %v", i, row["date"], want[i])
		}
	}
}

func TestFetchOneNoRows(t *testing.T) {
	c := openTestClient(t)

	row, err := c.FetchOne(context.Background(), "SELECT * FROM expenses WHERE id = ?", 999)
	if err != nil {
		t.Fatalf("FetchOne: %v", err)
	}
	if row != nil {
		t.Fatalf("expected nil row, got %v", row)
	}
}

func TestErrorsWrapStorageError(t *testing.T) {
	c := openTestClient(t)
	ctx := context.Background()

	var se *StorageError
	if _, err := c.Execute(ctx, "INSERT INTO nope (x) VALUES (?)", 1); !errors.As(err, &se) {
		t.Errorf("Execute bad SQL: got %v, want *StorageError", err)
	}
	if _, err := c.FetchAll(ctx, "SELECT * FROM nope"); !errors.As(err, &se) {
		t.Errorf("FetchAll bad SQL: got %v, want *StorageError", err)
	}
	// NOT NULL constraint violation surfaces the same way.
	if _, err := c.Execute(ctx, "INSERT INTO expenses (amount, category) VALUES (?, ?)", 1.0, "x"); !errors.As(err, &se) {
		t.Errorf("constraint violation: got %v, want *StorageError", err)
	}
}
