// Package storage owns the physical expenses schema and executes
// parameterized statements against the sqlite store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Client is a thin wrapper over *sql.DB. Each call runs a single
// statement on a pooled connection; there are no long-lived transactions.
type Client struct {
	db *sql.DB
}

// ExecResult reports the outcome of a mutating statement.
type ExecResult struct {
	RowsAffected int64
	LastInsertID int64
}

// StorageError wraps a store engine failure (constraint violation, I/O
// error, closed connection).
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Open opens the sqlite database at path, creating the parent directory
// if needed, and brings the schema up to date. Safe to call on every
// process start.
func Open(path string) (*Client, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := InitSchema(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Execute runs a mutating statement and reports how many rows changed
// and, for inserts, the generated row id.
func (c *Client) Execute(ctx context.Context, query string, args ...any) (ExecResult, error) {
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ExecResult{}, &StorageError{Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return ExecResult{}, &StorageError{Err: err}
	}
	// sqlite always supports LastInsertId; for non-insert statements the
	// value is simply not meaningful.
	lastID, err := res.LastInsertId()
	if err != nil {
		return ExecResult{}, &StorageError{Err: err}
	}

	return ExecResult{RowsAffected: affected, LastInsertID: lastID}, nil
}

// FetchAll runs a read query and returns each row as a column-name to
// value mapping, in the store's result order.
func (c *Client) FetchAll(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, &StorageError{Err: err}
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Err: err}
	}

	return results, nil
}

// FetchOne returns the first row of the query, or nil when there is none.
func (c *Client) FetchOne(ctx context.Context, query string, args ...any) (map[string]any, error) {
	rows, err := c.FetchAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
