package repository

import (
	"fmt"
	"strings"
)

// UpdateBuilder assembles a partial UPDATE statement. Columns and their
// values are appended together, so placeholder numbering and binding order
// cannot drift apart. The updated_at column is always touched.
type UpdateBuilder struct {
	table string
	sets  []string
	conds []string
	args  []any
}

// NewUpdateBuilder starts a builder for the given table.
func NewUpdateBuilder(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set adds a column assignment for a present field.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s=$%d", column, len(b.args)))
	return b
}

// SetIf adds the assignment only when present is true.
func (b *UpdateBuilder) SetIf(present bool, column string, value any) *UpdateBuilder {
	if present {
		b.Set(column, value)
	}
	return b
}

// Where adds an equality condition; conditions are joined with AND.
func (b *UpdateBuilder) Where(column string, value any) *UpdateBuilder {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s=$%d", column, len(b.args)))
	return b
}

// WhereExpr adds a raw condition with a single bound argument. The expression
// must contain exactly one %d verb for the placeholder index.
func (b *UpdateBuilder) WhereExpr(expr string, value any) *UpdateBuilder {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf(expr, len(b.args)))
	return b
}

// Empty reports whether no field assignment was added. Callers reject empty
// updates before any store round-trip.
func (b *UpdateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// Build returns the statement and its arguments.
func (b *UpdateBuilder) Build() (string, []any) {
	sets := append(append([]string{}, b.sets...), "updated_at=NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s", b.table, strings.Join(sets, ", "))
	if len(b.conds) > 0 {
		query += " WHERE " + strings.Join(b.conds, " AND ")
	}
	return query, b.args
}
