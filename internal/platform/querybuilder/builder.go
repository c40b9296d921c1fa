package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates statement text and its positional ($n) arguments.
type sqlWriter struct {
	strings.Builder
	args []any
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.WriteString("$" + strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) list(items []string) {
	w.WriteString(strings.Join(items, ", "))
}

// expr copies text, binding one argument per '?'. Surplus '?' are kept as is.
func (w *sqlWriter) expr(text string, values []any) {
	for i := 0; i < len(text); i++ {
		if text[i] == '?' && len(values) > 0 {
			w.bind(values[0])
			values = values[1:]
			continue
		}
		w.WriteByte(text[i])
	}
}

func (w *sqlWriter) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.WriteString(" WHERE ")
		} else {
			w.WriteString(" AND ")
		}
		c.writeSQL(w)
	}
}

func (w *sqlWriter) clause(keyword string, items []string) {
	if len(items) == 0 {
		return
	}
	w.WriteString(" " + keyword + " ")
	w.list(items)
}

func (w *sqlWriter) result() (string, []any, error) {
	return w.String(), w.args, nil
}

func requireTable(verb, table string) error {
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("%s table is required", verb)
	}
	return nil
}

type Condition interface {
	writeSQL(w *sqlWriter)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) writeSQL(w *sqlWriter) {
	w.WriteString(c.column + " = ")
	w.bind(c.value)
}

// Expr is a raw condition; each '?' in text binds the next arg.
type exprCondition struct {
	text string
	args []any
}

func Expr(text string, args ...any) Condition {
	return exprCondition{text: text, args: args}
}

func (c exprCondition) writeSQL(w *sqlWriter) {
	w.expr(c.text, c.args)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, errors.New("select columns are required")
	}
	if err := requireTable("select", b.table); err != nil {
		return "", nil, err
	}

	var w sqlWriter
	w.WriteString("SELECT ")
	w.list(b.columns)
	w.WriteString(" FROM " + b.table)
	w.where(b.where)
	w.clause("ORDER BY", b.orderBy)
	return w.result()
}

type InsertBuilder struct {
	table     string
	columns   []string
	rows      [][]any
	conflict  *[]string
	returning []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflictDoNothing skips rows that collide on target, or on any unique
// constraint when no target is given.
func (b *InsertBuilder) OnConflictDoNothing(target ...string) *InsertBuilder {
	cols := append([]string(nil), target...)
	b.conflict = &cols
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if err := requireTable("insert", b.table); err != nil {
		return "", nil, err
	}
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, errors.New("insert values are required")
	}

	var w sqlWriter
	w.WriteString("INSERT INTO " + b.table + " (")
	w.list(b.columns)
	w.WriteString(") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteByte('(')
		for j, value := range row {
			if j > 0 {
				w.WriteString(", ")
			}
			w.bind(value)
		}
		w.WriteByte(')')
	}

	if b.conflict != nil {
		w.WriteString(" ON CONFLICT")
		if target := *b.conflict; len(target) > 0 {
			w.WriteString(" (")
			w.list(target)
			w.WriteByte(')')
		}
		w.WriteString(" DO NOTHING")
	}
	w.clause("RETURNING", b.returning)
	return w.result()
}

// assignment is one "column = ..." item of an UPDATE. A raw assignment is
// written through sqlWriter.expr.
type assignment struct {
	column string
	value  any
	raw    *exprCondition
}

type UpdateBuilder struct {
	table     string
	sets      []assignment
	where     []Condition
	returning []string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) SetExpr(column, text string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: &exprCondition{text: text, args: args}})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if err := requireTable("update", b.table); err != nil {
		return "", nil, err
	}
	if len(b.sets) == 0 {
		return "", nil, errors.New("update sets are required")
	}

	var w sqlWriter
	w.WriteString("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(set.column + " = ")
		if set.raw != nil {
			set.raw.writeSQL(&w)
			continue
		}
		w.bind(set.value)
	}
	w.where(b.where)
	w.clause("RETURNING", b.returning)
	return w.result()
}

// DeleteBuilder builds DELETE statements. A delete without conditions must
// be asked for explicitly through All.
type DeleteBuilder struct {
	table string
	where []Condition
	all   bool
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) All() *DeleteBuilder {
	b.all = true
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if err := requireTable("delete", b.table); err != nil {
		return "", nil, err
	}
	if len(b.where) == 0 && !b.all {
		return "", nil, errors.New("delete without conditions requires All")
	}

	var w sqlWriter
	w.WriteString("DELETE FROM " + b.table)
	w.where(b.where)
	return w.result()
}
