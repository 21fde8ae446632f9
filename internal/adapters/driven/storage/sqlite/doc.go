// Package sqlite stores search history in ~/.sift/data/history.db using
// the pure Go modernc.org/sqlite driver, so builds need no cgo.
//
// The schema lives in schema/NNN_name.sql and is applied forward only.
// The database runs in WAL mode so the TUI can read history while a
// `sift search` in another terminal records a query.
package sqlite
