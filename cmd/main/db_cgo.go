//go:build cgo_sqlite

package main

import _ "github.com/mattn/go-sqlite3"

const (
	// sqliteDriver is the database/sql driver used for the corpus database
	// when built with -tags cgo_sqlite.
	sqliteDriver = "sqlite3"
	// sqliteParams turns on WAL and a busy timeout in go-sqlite3's form.
	sqliteParams = "?_journal_mode=WAL&_busy_timeout=5000"
)
