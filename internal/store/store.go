package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/feedstore/internal/persist"
	"github.com/roach88/feedstore/internal/querysql"
)

// Ensure Store implements the interface.
var _ persist.CursorProvider = (*Store)(nil)

// Default connection settings.
const (
	DefaultBusyTimeout = 5 * time.Second
	DefaultJournalMode = "WAL"
)

// Store provides cursors over a single SQLite database.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	closed atomic.Bool
}

type options struct {
	logger      *slog.Logger
	busyTimeout time.Duration
	journalMode string
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger statements are reported to at Debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.busyTimeout = d
		}
	}
}

// WithJournalMode sets the journal_mode pragma (WAL, DELETE, MEMORY, ...).
func WithJournalMode(mode string) Option {
	return func(o *options) {
		if mode != "" {
			o.journalMode = mode
		}
	}
}

// Open creates or opens a SQLite database at the given path.
// Use ":memory:" (or "") for a private in-memory database.
//
// The database is configured with:
//   - the requested journal mode (WAL unless overridden)
//   - NORMAL synchronous mode (balance durability/performance)
//   - the requested busy timeout (5 seconds unless overridden)
//   - Foreign key enforcement
func Open(path string, opts ...Option) (*Store, error) {
	o := options{
		logger:      slog.Default(),
		busyTimeout: DefaultBusyTimeout,
		journalMode: DefaultJournalMode,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := querysql.ValidateIdentifier(o.journalMode); err != nil {
		return nil, fmt.Errorf("invalid journal mode %q", o.journalMode)
	}

	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", dsn(path, o))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Each connection to ":memory:" is a separate database. File databases
	// keep a pool so an open SELECT does not block writes from other cursors.
	if isMemory(path) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	o.logger.Debug("store opened", "path", path, "journal_mode", o.journalMode)

	return &Store{db: db, path: path, logger: o.logger}, nil
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

// Path returns the path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer cursors and persist tables when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Cursor returns a new cursor over the store's database.
func (s *Store) Cursor() (persist.Cursor, error) {
	if s.closed.Load() {
		return nil, fmt.Errorf("store %s is closed", s.path)
	}
	return newCursor(s.db, s.logger), nil
}

// Tables lists user tables in name order.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return tables, nil
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	if err := querysql.ValidateIdentifier(table); err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// dsn appends the connection settings to path. The driver applies them to
// every connection it opens, so pooled connections agree.
func dsn(path string, o options) string {
	q := url.Values{}
	q.Set("_journal_mode", o.journalMode)
	q.Set("_synchronous", "NORMAL")
	q.Set("_busy_timeout", strconv.FormatInt(o.busyTimeout.Milliseconds(), 10))
	q.Set("_foreign_keys", "on")
	if path == "" {
		path = ":memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

// isMemory reports whether path names a private database that lives only
// as long as its connection.
func isMemory(path string) bool {
	return path == "" || path == ":memory:" || strings.Contains(path, "mode=memory")
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
