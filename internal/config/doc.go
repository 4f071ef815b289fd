// Package config loads feedstore settings from a TOML file.
//
// The file is optional. Missing keys keep their defaults, unknown keys are
// rejected, and command-line flags override whatever the file sets.
//
//	[database]
//	path = "feedstore.db"
//	busy_timeout_ms = 5000
//	journal_mode = "WAL"
//
//	[log]
//	level = "info"
package config
