package store

import (
	"context"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_ExecRecordsRowCountAndLastRowID(t *testing.T) {
	s := createTestStore(t)
	createPeopleTable(t, s)
	ctx := context.Background()

	cur, err := s.Cursor()
	require.NoError(t, err)

	require.NoError(t, cur.Execute(ctx, "INSERT INTO people (id,name) VALUES (?,?);", 10, "a"))
	assert.Equal(t, int64(1), cur.RowCount())
	assert.Equal(t, int64(1), cur.LastRowID())

	require.NoError(t, cur.Execute(ctx, "INSERT INTO people (id,name) VALUES (?,?);", 11, "b"))
	assert.Equal(t, int64(2), cur.LastRowID())

	require.NoError(t, cur.Execute(ctx, "DELETE FROM people WHERE id=?;", 99))
	assert.Equal(t, int64(0), cur.RowCount())

	require.NoError(t, cur.Execute(ctx, "DELETE FROM people;"))
	assert.Equal(t, int64(2), cur.RowCount())
}

func TestCursor_QueryIteratesRows(t *testing.T) {
	s := createTestStore(t)
	createPeopleTable(t, s)
	ctx := context.Background()

	cur, err := s.Cursor()
	require.NoError(t, err)
	require.NoError(t, cur.Execute(ctx, "INSERT INTO people (id,name) VALUES (1,'a'),(2,'b');"))

	require.NoError(t, cur.Execute(ctx, "SELECT * FROM people WHERE id>?", 0))
	assert.Equal(t, int64(-1), cur.RowCount())

	var rows [][]any
	for cur.Next() {
		values, err := cur.Values()
		require.NoError(t, err)
		rows = append(rows, values)
	}
	require.NoError(t, cur.Err())

	assert.Equal(t, [][]any{
		{int64(1), "a"},
		{int64(2), "b"},
	}, rows)

	// Exhausted cursors stay exhausted until the next Execute.
	assert.False(t, cur.Next())
}

func TestCursor_ExecuteReleasesPreviousRows(t *testing.T) {
	s := createTestStore(t)
	createPeopleTable(t, s)
	ctx := context.Background()

	cur, err := s.Cursor()
	require.NoError(t, err)
	require.NoError(t, cur.Execute(ctx, "INSERT INTO people (id,name) VALUES (1,'a'),(2,'b');"))

	require.NoError(t, cur.Execute(ctx, "SELECT * FROM people"))
	require.True(t, cur.Next())

	require.NoError(t, cur.Execute(ctx, "UPDATE people SET name=? WHERE id=?;", "z", 2))
	assert.Equal(t, int64(1), cur.RowCount())
	assert.False(t, cur.Next(), "rows of the SELECT were released")
}

func TestCursor_WriteWhileOtherCursorReads(t *testing.T) {
	s := createTestStore(t)
	createPeopleTable(t, s)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	reader, err := s.Cursor()
	require.NoError(t, err)
	require.NoError(t, reader.Execute(ctx, "INSERT INTO people (id,name) VALUES (1,'a'),(2,'b');"))
	require.NoError(t, reader.Execute(ctx, "SELECT * FROM people"))
	defer reader.Close()

	n := 0
	for reader.Next() {
		n++
		writer, err := s.Cursor()
		require.NoError(t, err)
		require.NoError(t, writer.Execute(ctx, "INSERT INTO people (id,name) VALUES (?,?);", 100+n, "copy"))
	}
	require.NoError(t, reader.Err())
	assert.Equal(t, 2, n, "the reader keeps the snapshot it started with")

	count, err := s.Count(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestCursor_CloseReleasesRowsForOtherCursors(t *testing.T) {
	s := createTestStore(t)
	createPeopleTable(t, s)
	ctx := context.Background()

	reader, err := s.Cursor()
	require.NoError(t, err)
	require.NoError(t, reader.Execute(ctx, "SELECT * FROM people"))
	require.NoError(t, reader.Close())
	assert.False(t, reader.Next())

	writer, err := s.Cursor()
	require.NoError(t, err)
	require.NoError(t, writer.Execute(ctx, "INSERT INTO people (id,name) VALUES (?,?);", 3, "c"))
}

func TestCursor_ValuesWithoutRows(t *testing.T) {
	s := createTestStore(t)

	cur, err := s.Cursor()
	require.NoError(t, err)
	_, err = cur.Values()
	assert.Error(t, err)
}

func TestCursor_DriverErrorsPassThrough(t *testing.T) {
	s := createTestStore(t)
	createPeopleTable(t, s)

	cur, err := s.Cursor()
	require.NoError(t, err)

	err = cur.Execute(context.Background(), "CREATE TABLE people (id INTEGER);")
	require.Error(t, err)

	var sqliteErr sqlite3.Error
	require.ErrorAs(t, err, &sqliteErr)
	assert.Equal(t, sqlite3.ErrError, sqliteErr.Code)
}

func TestReturnsRows(t *testing.T) {
	testCases := []struct {
		query string
		want  bool
	}{
		{"SELECT * FROM people", true},
		{"  select 1", true},
		{"PRAGMA user_version", true},
		{"WITH x AS (SELECT 1) SELECT * FROM x", true},
		{"INSERT INTO people (id) VALUES (1) RETURNING id", true},
		{"INSERT INTO people (id) VALUES (?);", false},
		{"UPDATE people SET name=? WHERE rowid=1;", false},
		{"DELETE FROM people;", false},
		{"CREATE TABLE t (a TEXT);", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, returnsRows(tc.query))
		})
	}
}
