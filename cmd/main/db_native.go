//go:build !cgo_sqlite

package main

import _ "modernc.org/sqlite"

const (
	// sqliteDriver is the pure-Go database/sql driver used by default.
	sqliteDriver = "sqlite"
	// sqliteParams turns on WAL and a busy timeout in modernc's _pragma form.
	sqliteParams = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
)
