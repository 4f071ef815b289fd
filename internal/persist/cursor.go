package persist

import "context"

// Cursor executes statements against a store and exposes their results.
//
// After Execute of a row-returning statement, rows are read with Next and
// Values until Next returns false. RowCount and LastRowID describe the most
// recent non-query statement.
type Cursor interface {
	// Execute runs a single statement with positional parameters.
	Execute(ctx context.Context, query string, args ...any) error

	// Next advances to the next result row.
	Next() bool

	// Values returns the current row's column values in SELECT order.
	Values() ([]any, error)

	// RowCount is the number of rows affected by the last statement.
	RowCount() int64

	// LastRowID is the row id assigned by the last INSERT.
	LastRowID() int64

	// Err reports an error encountered during row iteration.
	Err() error

	// Close releases any pending result rows. The cursor may be reused.
	Close() error
}

// CursorProvider produces cursors bound to one underlying store.
type CursorProvider interface {
	Cursor() (Cursor, error)
}
