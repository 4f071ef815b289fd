package persist

import (
	"context"
	"errors"
)

type execCall struct {
	query string
	args  []any
}

// recordingCursor records statements and serves canned rows.
type recordingCursor struct {
	calls    []execCall
	rows     [][]any
	pos      int
	rowCount int64
	lastID   int64
	execErr  error
	closed   int
}

func (c *recordingCursor) Execute(_ context.Context, query string, args ...any) error {
	c.calls = append(c.calls, execCall{query: query, args: args})
	c.pos = -1
	return c.execErr
}

func (c *recordingCursor) Next() bool {
	c.pos++
	return c.pos < len(c.rows)
}

func (c *recordingCursor) Values() ([]any, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, errors.New("no current row")
	}
	return c.rows[c.pos], nil
}

func (c *recordingCursor) RowCount() int64  { return c.rowCount }
func (c *recordingCursor) LastRowID() int64 { return c.lastID }
func (c *recordingCursor) Err() error       { return nil }
func (c *recordingCursor) Close() error {
	c.closed++
	return nil
}

type recordingProvider struct {
	cur *recordingCursor
}

func (p *recordingProvider) Cursor() (Cursor, error) {
	return p.cur, nil
}

type person struct {
	Model
	ID   int64
	Name string
}

var people = NewTable[person]("people",
	[]Column[person]{
		Int64("id", func(p *person) *int64 { return &p.ID }),
		Text("name", func(p *person) *string { return &p.Name }),
	},
)

type place struct {
	Model
	Code string
	Lat  float64
	Lon  float64
	Rank int
}

var places = NewTable[place]("places",
	[]Column[place]{
		Text("code", func(p *place) *string { return &p.Code }),
		Real("lat", func(p *place) *float64 { return &p.Lat }),
		Real("lon", func(p *place) *float64 { return &p.Lon }),
		Int("rank", func(p *place) *int { return &p.Rank }),
	},
	"code", "rank",
)
