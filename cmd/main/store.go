package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/charkov/pkg/corpus"
)

// openStore opens the corpus database named in the config, creating its
// directory and schema on first use. The returned close func releases both
// the store and the database.
func (a *app) openStore() (*corpus.Store, func(), error) {
	dataSource := a.config.DatabasePath
	file, _, _ := strings.Cut(dataSource, "?")
	if dir := filepath.Dir(file); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(sqliteDriver, dataSource)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("error creating corpus store: %w", err)
	}
	store.SetLogger(a.logger)

	return store, func() {
		store.Close()
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
	}, nil
}
