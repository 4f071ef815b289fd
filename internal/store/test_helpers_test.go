package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createPeopleTable creates a small two-column table through a cursor.
func createPeopleTable(t *testing.T, s *Store) {
	t.Helper()
	cur, err := s.Cursor()
	if err != nil {
		t.Fatalf("Cursor() failed: %v", err)
	}
	if err := cur.Execute(context.Background(), "CREATE TABLE people (id INTEGER,name TEXT);"); err != nil {
		t.Fatalf("create table failed: %v", err)
	}
}
