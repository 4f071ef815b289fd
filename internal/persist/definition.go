package persist

import (
	"context"
	"fmt"
)

// Definition is the type-erased view of a Table, for code that handles
// several record types by table name.
type Definition interface {
	Name() string
	FieldNames() []string
	IndexableFields() []string
	CreateTableSQL() string
	CreateIndicesSQL() []string
	CreateTable(ctx context.Context, cur Cursor) error
	CreateIndices(ctx context.Context, cur Cursor) error
	Delete(ctx context.Context, cur Cursor, tolerant bool, fields Fields) error
	SelectAny(ctx context.Context, cur Cursor, fields Fields) ([]any, error)
	ValuesOf(rec any) ([]any, error)
}

var _ Definition = (*Table[struct{ Model }, *struct{ Model }])(nil)

// SelectAny runs Select and collects the records as values of type *T.
func (t *Table[T, PT]) SelectAny(ctx context.Context, cur Cursor, fields Fields) ([]any, error) {
	it, err := t.Select(ctx, cur, fields)
	if err != nil {
		return nil, err
	}
	records, err := it.Collect()
	if err != nil {
		return nil, err
	}

	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out, nil
}

// ValuesOf returns SQLValues for a record passed as any. rec must be a *T.
func (t *Table[T, PT]) ValuesOf(rec any) ([]any, error) {
	r, ok := rec.(*T)
	if !ok {
		return nil, fmt.Errorf("table %s: record is %T, not %T", t.name, rec, (*T)(nil))
	}
	return t.SQLValues(r, nil), nil
}

// Lookup finds a definition by table name.
func Lookup(defs []Definition, name string) (Definition, bool) {
	for _, d := range defs {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}
