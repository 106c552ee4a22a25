package storage

import (
	"reflect"
	"testing"
)

func TestUpdateBuilderOnlySuppliedColumns(t *testing.T) {
	b := NewUpdate("expenses").
		Set("note", "hello").
		Set("amount", 12.5).
		SetExpr("updated_at", "datetime('now')").
		Where("id = ?", int64(7))

	query, args := b.Build()
	want := "UPDATE expenses SET note = ?, amount = ?, updated_at = datetime('now') WHERE id = ?"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"hello", 12.5, int64(7)}) {
		t.Errorf("args = %v", args)
	}
}

func TestUpdateBuilderEmpty(t *testing.T) {
	b := NewUpdate("expenses")
	if !b.Empty() {
		t.Error("fresh builder should be empty")
	}
	b.Set("note", "x")
	if b.Empty() {
		t.Error("builder with an assignment should not be empty")
	}
}
