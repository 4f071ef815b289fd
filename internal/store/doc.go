// Package store provides the SQLite-backed CursorProvider that feedstore
// records persist through.
//
// A Store owns one *sql.DB opened with the mattn/go-sqlite3 driver. Every
// Cursor it hands out shares that handle, so statements from different
// cursors run against the same database in call order.
//
// # Database Configuration
//
//   - journal_mode: WAL by default (WithJournalMode)
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout: 5000ms by default (WithBusyTimeout)
//   - foreign_keys=ON: Enforce referential integrity
//
// The settings travel in the DSN, so every pooled connection gets them.
// File databases use a connection pool: rows of an unfinished SELECT keep
// one connection while other cursors write on another, and busy_timeout
// absorbs lock contention between them. ":memory:" databases are limited
// to a single connection because each connection would otherwise see its
// own empty database. There an open SELECT holds the only connection, so
// drain or close it before executing on another cursor.
//
// No transactions are started here; each statement commits on its own.
package store
