package store

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	assert.Equal(t, path, s.Path())
}

func TestOpen_OpensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	createPeopleTable(t, s1)
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer s2.Close()

	var count int
	err = s2.db.QueryRow("SELECT COUNT(*) FROM people").Scan(&count)
	if err != nil {
		t.Errorf("query failed: %v", err)
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	// One connection means every cursor sees the same in-memory database.
	createPeopleTable(t, s)
	tables, err := s.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"people"}, tables)
	assert.Equal(t, 1, s.DB().Stats().MaxOpenConnections)
}

func TestOpen_FileDatabaseIsPooled(t *testing.T) {
	s := createTestStore(t)
	assert.Equal(t, 0, s.DB().Stats().MaxOpenConnections, "no connection cap")
}

func TestDSN(t *testing.T) {
	o := options{busyTimeout: 1500 * time.Millisecond, journalMode: "WAL"}

	testCases := []struct {
		path   string
		prefix string
	}{
		{"/tmp/feed.db", "/tmp/feed.db?"},
		{":memory:", ":memory:?"},
		{"", ":memory:?"},
		{"file:feed.db?mode=ro", "file:feed.db?mode=ro&"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got := dsn(tc.path, o)
			assert.True(t, strings.HasPrefix(got, tc.prefix), got)
			assert.Contains(t, got, "_busy_timeout=1500")
			assert.Contains(t, got, "_journal_mode=WAL")
			assert.Contains(t, got, "_foreign_keys=on")
			assert.Contains(t, got, "_synchronous=NORMAL")
		})
	}
}

func TestIsMemory(t *testing.T) {
	for _, p := range []string{"", ":memory:", "file:x?mode=memory&cache=shared"} {
		assert.True(t, isMemory(p), p)
	}
	assert.False(t, isMemory(filepath.Join(t.TempDir(), "feed.db")))
}

func TestOpen_InvalidPath(t *testing.T) {
	path := "/nonexistent/dir/test.db"

	_, err := Open(path)
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestOpen_InvalidJournalMode(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "test.db"), WithJournalMode("WAL; DROP TABLE x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid journal mode")
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	err := s.Close()
	if err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestClose_MultipleCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("first Close() failed: %v", err)
	}
	assert.NoError(t, s.Close())
}

func TestCursor_AfterClose(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Cursor()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}

func TestDB_ReturnsUnderlyingConnection(t *testing.T) {
	s := createTestStore(t)

	db := s.DB()
	require.NotNil(t, db)
	assert.NoError(t, db.Ping())
}

// Pragma tests

func TestPragmas_Defaults(t *testing.T) {
	s := createTestStore(t)

	testCases := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"}, // ON = 1
	}

	for _, tc := range testCases {
		t.Run(tc.pragma, func(t *testing.T) {
			if err := s.verifyPragma(tc.pragma, tc.want); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestPragmas_Options(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path,
		WithBusyTimeout(1500*time.Millisecond),
		WithJournalMode("DELETE"),
	)
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.verifyPragma("busy_timeout", "1500"))
	assert.NoError(t, s.verifyPragma("journal_mode", "delete"))
}

func TestTables_AndCount(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	tables, err := s.Tables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)

	createPeopleTable(t, s)
	_, err = s.db.Exec("INSERT INTO people (id,name) VALUES (1,'a'),(2,'b')")
	require.NoError(t, err)

	tables, err = s.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"people"}, tables)

	n, err := s.Count(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCount_RejectsInvalidTable(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Count(context.Background(), "people; DROP TABLE people")
	require.Error(t, err)
}

func TestLogger_ReceivesStatements(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), WithLogger(logger))
	require.NoError(t, err)
	defer s.Close()

	createPeopleTable(t, s)

	assert.Contains(t, buf.String(), "sql exec")
	assert.Contains(t, buf.String(), "CREATE TABLE people")
}
