package persist

import (
	"context"
	"fmt"

	"github.com/roach88/feedstore/internal/querysql"
)

// Table is the static descriptor of record type T: its table name, its
// ordered columns and the columns to index. PT is always *T and is
// inferred, so descriptors are written NewTable[T](...).
//
// A Table is immutable after NewTable returns and is safe for concurrent
// use; the cursors it is given are not.
type Table[T any, PT interface {
	*T
	Entity
}] struct {
	name      string
	columns   []Column[T]
	indexable []string
}

// NewTable defines a record type's table.
//
// NewTable panics if the name, a column name or type, or an indexable
// field is invalid, if a column lacks a getter or setter, or if a column
// name repeats. Descriptors are package-level values, so these are
// programming errors caught at init.
func NewTable[T any, PT interface {
	*T
	Entity
}](name string, columns []Column[T], indexable ...string) *Table[T, PT] {
	if len(columns) == 0 {
		panic(fmt.Sprintf("persist: table %s has no columns", name))
	}

	// Compiling the CREATE TABLE validates table, column and type names.
	defs := make([]querysql.Column, len(columns))
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		if c.Get == nil || c.Set == nil {
			panic(fmt.Sprintf("persist: table %s column %s needs Get and Set", name, c.Name))
		}
		if seen[c.Name] {
			panic(fmt.Sprintf("persist: table %s repeats column %s", name, c.Name))
		}
		seen[c.Name] = true
		defs[i] = querysql.Column{Name: c.Name, Type: c.Type}
	}
	if _, err := querysql.Compile(querysql.CreateTable{Table: name, Columns: defs}); err != nil {
		panic(fmt.Sprintf("persist: %v", err))
	}

	for _, f := range indexable {
		if !seen[f] {
			panic(fmt.Sprintf("persist: table %s indexes unknown column %s", name, f))
		}
	}

	return &Table[T, PT]{
		name:      name,
		columns:   append([]Column[T](nil), columns...),
		indexable: append([]string(nil), indexable...),
	}
}

// Name returns the table name.
func (t *Table[T, PT]) Name() string {
	return t.name
}

// FieldNames returns the column names in declared order.
func (t *Table[T, PT]) FieldNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// FieldSpec returns the (name, type) pairs in declared order.
func (t *Table[T, PT]) FieldSpec() []querysql.Column {
	spec := make([]querysql.Column, len(t.columns))
	for i, c := range t.columns {
		spec[i] = querysql.Column{Name: c.Name, Type: c.Type}
	}
	return spec
}

// IndexableFields returns the indexed column names in declared order.
func (t *Table[T, PT]) IndexableFields() []string {
	return append([]string(nil), t.indexable...)
}

// CreateTableSQL renders the CREATE TABLE statement.
func (t *Table[T, PT]) CreateTableSQL() string {
	// Validated by NewTable.
	sql, _ := querysql.Compile(querysql.CreateTable{Table: t.name, Columns: t.FieldSpec()})
	return sql
}

// CreateIndicesSQL renders one CREATE INDEX statement per indexable field.
func (t *Table[T, PT]) CreateIndicesSQL() []string {
	stmts := make([]string, 0, len(t.indexable))
	for _, f := range t.indexable {
		sql, _ := querysql.Compile(querysql.CreateIndex{Table: t.name, Field: f})
		stmts = append(stmts, sql)
	}
	return stmts
}

// CreateTable creates the table. It fails if the table already exists.
func (t *Table[T, PT]) CreateTable(ctx context.Context, cur Cursor) error {
	if err := cur.Execute(ctx, t.CreateTableSQL()); err != nil {
		return fmt.Errorf("create table %s: %w", t.name, err)
	}
	return nil
}

// CreateIndices creates one index per indexable field, in declared order.
// It does nothing for a table without indexable fields.
func (t *Table[T, PT]) CreateIndices(ctx context.Context, cur Cursor) error {
	for i, sql := range t.CreateIndicesSQL() {
		if err := cur.Execute(ctx, sql); err != nil {
			return fmt.Errorf("create index %s_index on %s: %w", t.indexable[i], t.name, err)
		}
	}
	return nil
}

// SQLValues returns the record's values in column order. A value in extra
// replaces the record's own value for that column; rec is never modified.
// Keys of extra that are not columns are ignored.
func (t *Table[T, PT]) SQLValues(rec *T, extra map[string]any) []any {
	values := make([]any, len(t.columns))
	for i, c := range t.columns {
		if v, ok := extra[c.Name]; ok {
			values[i] = v
			continue
		}
		values[i] = c.Get(rec)
	}
	return values
}

// Save inserts rec and records the row id the store assigned to it.
// extra overrides column values for this insert only, which also lets a
// record type persist columns it does not hold as fields.
func (t *Table[T, PT]) Save(ctx context.Context, rec *T, extra map[string]any) error {
	m := PT(rec).persistModel()

	cur, err := m.Cursor()
	if err != nil {
		return fmt.Errorf("save %s: %w", t.name, err)
	}
	defer cur.Close()

	sql, err := querysql.Compile(querysql.Insert{Table: t.name, Columns: t.FieldNames()})
	if err != nil {
		return fmt.Errorf("save %s: %w", t.name, err)
	}

	if err := cur.Execute(ctx, sql, t.SQLValues(rec, extra)...); err != nil {
		return fmt.Errorf("save %s: %w", t.name, err)
	}

	m.setRowID(cur.LastRowID())
	return nil
}

// Update writes the given fields, in order, to the row rec was saved as.
// Only those columns change. The record's own field values are not
// touched; callers that keep the in-memory record current set them too.
func (t *Table[T, PT]) Update(ctx context.Context, rec *T, fields Fields) error {
	if len(fields) == 0 {
		return fmt.Errorf("update %s: %w", t.name, ErrEmptyUpdate)
	}

	m := PT(rec).persistModel()
	rowID, ok := m.RowID()
	if !ok {
		return fmt.Errorf("update %s: %w", t.name, ErrNoRowID)
	}

	sql, err := querysql.Compile(querysql.Update{Table: t.name, Set: fields.Names(), RowID: rowID})
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}

	cur, err := m.Cursor()
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	defer cur.Close()

	if err := cur.Execute(ctx, sql, fields.Values()...); err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	return nil
}

// Delete removes every row matching all of fields. An empty fields list
// deletes every row in the table.
//
// When no row matched and tolerant is false, Delete returns a
// *DeletionError. When tolerant is true a zero-row delete is not an error.
func (t *Table[T, PT]) Delete(ctx context.Context, cur Cursor, tolerant bool, fields Fields) error {
	sql, err := querysql.Compile(querysql.Delete{Table: t.name, Where: fields.Names()})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", t.name, err)
	}

	if err := cur.Execute(ctx, sql, fields.Values()...); err != nil {
		return fmt.Errorf("delete from %s: %w", t.name, err)
	}

	if !tolerant && cur.RowCount() == 0 {
		return &DeletionError{Table: t.name, Fields: fields}
	}
	return nil
}

// Select queries rows matching all of fields, or every row when fields is
// empty, and returns an iterator building one new record per row.
//
// The returned records are not bound to a store and carry no row id.
// The iterator reads from cur; cur must not be used again until the
// iterator is exhausted or closed. Other cursors, including the fresh ones
// Save and Update obtain, stay usable while it is open as long as the
// provider can serve them alongside it.
func (t *Table[T, PT]) Select(ctx context.Context, cur Cursor, fields Fields) (*Iter[T], error) {
	sql, err := querysql.Compile(querysql.Select{Table: t.name, Where: fields.Names()})
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", t.name, err)
	}

	if err := cur.Execute(ctx, sql, fields.Values()...); err != nil {
		return nil, fmt.Errorf("select from %s: %w", t.name, err)
	}

	return newIter(cur, t.fromRow), nil
}

// fromRow zips column names, in declared order, against a row's values.
func (t *Table[T, PT]) fromRow(values []any) (*T, error) {
	if len(values) != len(t.columns) {
		return nil, fmt.Errorf("select from %s: row has %d columns, table declares %d",
			t.name, len(values), len(t.columns))
	}

	rec := new(T)
	for i, c := range t.columns {
		if err := c.Set(rec, values[i]); err != nil {
			return nil, fmt.Errorf("select from %s: column %s: %w", t.name, c.Name, err)
		}
	}
	return rec, nil
}
