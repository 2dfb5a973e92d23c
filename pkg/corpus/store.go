package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"
)

// SetupSchema creates the corpus and history tables in db. It is idempotent
// and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaCorpora = `
CREATE TABLE IF NOT EXISTS corpora (
    corpus_id INTEGER PRIMARY KEY,
    corpus_name TEXT NOT NULL UNIQUE,
    corpus_text TEXT NOT NULL,
    char_count INTEGER NOT NULL,
    added_at INTEGER NOT NULL
);
`
		schemaGenerations = `
CREATE TABLE IF NOT EXISTS generations (
    generation_id INTEGER PRIMARY KEY,
    corpus_label TEXT NOT NULL,
    window_length INTEGER NOT NULL,
    random_seed INTEGER,
    seed_text TEXT NOT NULL,
    target_length INTEGER NOT NULL,
    output TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaCorpora); err != nil {
		return fmt.Errorf("could not create corpora schema: %w", err)
	}

	if _, err = tx.Exec(schemaGenerations); err != nil {
		return fmt.Errorf("could not create generations schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Info describes a stored corpus without its text.
type Info struct {
	Id        int
	Name      string
	CharCount int
	AddedAt   time.Time
}

// Generation is one recorded generation run.
type Generation struct {
	Id           int
	CorpusLabel  string // stored corpus name or file path the model was trained on
	WindowLength int
	RandomSeed   *int64 // nil when the run drew from an entropy-seeded source
	SeedText     string
	TargetLength int
	Output       string
	CreatedAt    time.Time
}

// Store reads and writes corpora and generation history in a SQLite database
// prepared with SetupSchema.
type Store struct {
	db                   *sql.DB
	stmtUpsertCorpus     *sql.Stmt
	stmtGetCorpus        *sql.Stmt
	stmtListCorpora      *sql.Stmt
	stmtRemoveCorpus     *sql.Stmt
	stmtInsertGeneration *sql.Stmt
	stmtListGenerations  *sql.Stmt
	logger               *slog.Logger
}

// NewStore prepares every statement the Store needs, returning an error if
// any preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	stmtUpsertCorpus, err := db.Prepare(`INSERT INTO corpora (corpus_name, corpus_text, char_count, added_at) VALUES (?, ?, ?, ?) ON CONFLICT(corpus_name) DO UPDATE SET corpus_text = excluded.corpus_text, char_count = excluded.char_count, added_at = excluded.added_at;`)
	if err != nil {
		return nil, err
	}

	stmtGetCorpus, err := db.Prepare(`SELECT corpus_text FROM corpora WHERE corpus_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtListCorpora, err := db.Prepare(`SELECT corpus_id, corpus_name, char_count, added_at FROM corpora ORDER BY corpus_name;`)
	if err != nil {
		return nil, err
	}

	stmtRemoveCorpus, err := db.Prepare(`DELETE FROM corpora WHERE corpus_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtInsertGeneration, err := db.Prepare(`INSERT INTO generations (corpus_label, window_length, random_seed, seed_text, target_length, output, created_at) VALUES (?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtListGenerations, err := db.Prepare(`SELECT generation_id, corpus_label, window_length, random_seed, seed_text, target_length, output, created_at FROM generations ORDER BY generation_id DESC LIMIT ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:                   db,
		stmtUpsertCorpus:     stmtUpsertCorpus,
		stmtGetCorpus:        stmtGetCorpus,
		stmtListCorpora:      stmtListCorpora,
		stmtRemoveCorpus:     stmtRemoveCorpus,
		stmtInsertGeneration: stmtInsertGeneration,
		stmtListGenerations:  stmtListGenerations,
		logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases the prepared statements held by the Store. The database
// itself stays open.
func (s *Store) Close() {
	_ = s.stmtUpsertCorpus.Close()
	_ = s.stmtGetCorpus.Close()
	_ = s.stmtListCorpora.Close()
	_ = s.stmtRemoveCorpus.Close()
	_ = s.stmtInsertGeneration.Close()
	_ = s.stmtListGenerations.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Add stores text under name, replacing any corpus already stored there.
func (s *Store) Add(ctx context.Context, name, text string) error {
	if name == "" {
		return fmt.Errorf("corpus name must not be empty")
	}
	chars := utf8.RuneCountInString(text)
	if _, err := s.stmtUpsertCorpus.ExecContext(ctx, name, text, chars, time.Now().Unix()); err != nil {
		return fmt.Errorf("could not store corpus '%s': %w", name, err)
	}
	s.logger.InfoContext(ctx, "Corpus stored",
		slog.String("corpus_name", name),
		slog.Int("char_count", chars),
	)
	return nil
}

// Get returns the text stored under name. An unknown name yields
// sql.ErrNoRows.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	var text string
	if err := s.stmtGetCorpus.QueryRowContext(ctx, name).Scan(&text); err != nil {
		return "", err
	}
	return text, nil
}

// List returns every stored corpus ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtListCorpora.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []Info
	for rows.Next() {
		var info Info
		var addedAt int64
		if err = rows.Scan(&info.Id, &info.Name, &info.CharCount, &addedAt); err != nil {
			return nil, err
		}
		info.AddedAt = time.Unix(addedAt, 0)
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes the corpus stored under name. An unknown name yields
// sql.ErrNoRows. Recorded generations are kept.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.stmtRemoveCorpus.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("could not remove corpus '%s': %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	s.logger.InfoContext(ctx, "Corpus removed", slog.String("corpus_name", name))
	return nil
}

// RecordGeneration appends a run to the history. A zero CreatedAt is set to
// the current time.
func (s *Store) RecordGeneration(ctx context.Context, g Generation) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	var seed sql.NullInt64
	if g.RandomSeed != nil {
		seed = sql.NullInt64{Int64: *g.RandomSeed, Valid: true}
	}
	_, err := s.stmtInsertGeneration.ExecContext(ctx,
		g.CorpusLabel, g.WindowLength, seed, g.SeedText, g.TargetLength, g.Output, g.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("could not record generation: %w", err)
	}
	s.logger.DebugContext(ctx, "Generation recorded",
		slog.String("corpus_label", g.CorpusLabel),
		slog.Int("window_length", g.WindowLength),
		slog.Int("output_chars", utf8.RuneCountInString(g.Output)),
	)
	return nil
}

// Generations returns up to limit recorded runs, newest first.
func (s *Store) Generations(ctx context.Context, limit int) ([]Generation, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.stmtListGenerations.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var gens []Generation
	for rows.Next() {
		var g Generation
		var seed sql.NullInt64
		var createdAt int64
		if err = rows.Scan(&g.Id, &g.CorpusLabel, &g.WindowLength, &seed, &g.SeedText, &g.TargetLength, &g.Output, &createdAt); err != nil {
			return nil, err
		}
		if seed.Valid {
			v := seed.Int64
			g.RandomSeed = &v
		}
		g.CreatedAt = time.Unix(createdAt, 0)
		gens = append(gens, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return gens, nil
}

// ReadFile returns the full contents of the corpus file at path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read corpus file: %w", err)
	}
	return string(data), nil
}
