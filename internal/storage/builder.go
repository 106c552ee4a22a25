package storage

import "strings"

// UpdateBuilder accumulates (column, value) pairs and renders a single
// parameterized UPDATE statement. Values are always bound as parameters,
// never interpolated into the SQL text.
type UpdateBuilder struct {
	table string
	sets  []string
	args  []any
	where string
}

func NewUpdate(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set adds a column assignment bound to value.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, column+" = ?")
	b.args = append(b.args, value)
	return b
}

// SetExpr adds a column assignment to a raw SQL expression, for
// store-computed values such as datetime('now').
func (b *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, column+" = "+expr)
	return b
}

// Where sets the statement's condition. Its placeholders bind after the
// assignment values.
func (b *UpdateBuilder) Where(cond string, args ...any) *UpdateBuilder {
	b.where = cond
	b.args = append(b.args, args...)
	return b
}

// Empty reports whether no assignments have been added.
func (b *UpdateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// Build renders the statement and its bound arguments.
func (b *UpdateBuilder) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(b.sets, ", "))
	if b.where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(b.where)
	}
	return sb.String(), b.args
}
