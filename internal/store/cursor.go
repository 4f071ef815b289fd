package store

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/roach88/feedstore/internal/persist"
)

// Ensure Cursor implements the interface.
var _ persist.Cursor = (*Cursor)(nil)

// Cursor executes statements on the store's database and holds the result
// of the most recent one. A Cursor is not safe for concurrent use.
type Cursor struct {
	db     *sql.DB
	logger *slog.Logger

	rows     *sql.Rows
	ncols    int
	rowCount int64
	lastID   int64
	err      error
}

func newCursor(db *sql.DB, logger *slog.Logger) *Cursor {
	return &Cursor{db: db, logger: logger, rowCount: -1}
}

// Execute runs query with positional args. Row-returning statements keep
// their rows open for Next/Values; other statements record RowCount and
// LastRowID. Rows of a previous statement are released first.
//
// Driver errors are returned as-is.
func (c *Cursor) Execute(ctx context.Context, query string, args ...any) error {
	if err := c.Close(); err != nil {
		return err
	}
	c.rowCount = -1
	c.lastID = 0
	c.err = nil

	if returnsRows(query) {
		rows, err := c.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		cols, err := rows.Columns()
		if err != nil {
			rows.Close()
			return err
		}
		c.rows = rows
		c.ncols = len(cols)
		c.logger.Debug("sql query", "sql", query, "args", len(args))
		return nil
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if c.rowCount, err = res.RowsAffected(); err != nil {
		return err
	}
	if c.lastID, err = res.LastInsertId(); err != nil {
		return err
	}
	c.logger.Debug("sql exec", "sql", query, "args", len(args), "rows_affected", c.rowCount)
	return nil
}

// Next advances to the next row. The rows are released once exhausted.
func (c *Cursor) Next() bool {
	if c.rows == nil {
		return false
	}
	if c.rows.Next() {
		return true
	}
	c.err = c.rows.Err()
	c.Close()
	return false
}

// Values scans the current row into driver values.
func (c *Cursor) Values() ([]any, error) {
	if c.rows == nil {
		return nil, sql.ErrNoRows
	}
	values := make([]any, c.ncols)
	ptrs := make([]any, c.ncols)
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	return values, nil
}

// RowCount returns rows affected by the last statement, or -1 after a query.
func (c *Cursor) RowCount() int64 {
	return c.rowCount
}

// LastRowID returns the rowid of the row inserted by the last statement.
func (c *Cursor) LastRowID() int64 {
	return c.lastID
}

// Err returns the error that ended row iteration, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases pending rows. The cursor remains usable.
func (c *Cursor) Close() error {
	if c.rows == nil {
		return nil
	}
	err := c.rows.Close()
	c.rows = nil
	c.ncols = 0
	return err
}

// returnsRows reports whether a statement produces a result set.
func returnsRows(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "PRAGMA", "WITH", "VALUES", "EXPLAIN":
		return true
	}
	return strings.Contains(strings.ToUpper(query), " RETURNING ")
}
