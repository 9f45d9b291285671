package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite keeps results in a sqlite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at dsn and applies
// pending migrations.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// openDB ensures the parent directory exists, then opens with busy timeout
// and WAL journaling.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every *.sql file of fsys in lexical order, each in its own
// transaction, recording applied names in _migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

const resultColumns = `id, mode, backend, date, target, guesses, state, reason, elapsed_ms, created_at`

func (s *SQLite) Save(ctx context.Context, r *Result) error {
	prepare(r)
	_, err := s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO results
            (id, mode, backend, date, target, guesses, guess_count, state, reason, elapsed_ms, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Mode, r.Backend, r.Date, r.Target, strings.Join(r.Guesses, " "), len(r.Guesses),
		r.State, r.Reason, r.ElapsedMs, r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+resultColumns+` FROM results WHERE id=?`, id)
	if err != nil {
		return Result{}, err
	}
	out, err := scanResults(rows)
	if err != nil {
		return Result{}, err
	}
	if len(out) == 0 {
		return Result{}, ErrNotFound
	}
	return out[0], nil
}

func (s *SQLite) Results(ctx context.Context, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+resultColumns+`
        FROM results
        ORDER BY created_at DESC, id ASC
        LIMIT ?`, clampLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	return scanResults(rows)
}

// Daily orders by guesses ASC, then elapsed time ASC, then created_at ASC.
func (s *SQLite) Daily(ctx context.Context, date string, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+resultColumns+`
        FROM results
        WHERE mode='daily' AND date=? AND state='solved'
        ORDER BY guess_count ASC, elapsed_ms ASC, created_at ASC
        LIMIT ?`, date, clampLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	return scanResults(rows)
}

func (s *SQLite) Summary(ctx context.Context) (Summary, error) {
	sum := Summary{Distribution: map[int]int{}}
	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(CASE WHEN state='solved' THEN 1 ELSE 0 END), 0),
               AVG(CASE WHEN state='solved' THEN guess_count END)
        FROM results`,
	).Scan(&sum.Games, &sum.Solved, &avg); err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	sum.AverageGuesses = avg.Float64

	rows, err := s.db.QueryContext(ctx, `
        SELECT guess_count, COUNT(1)
        FROM results
        WHERE state='solved'
        GROUP BY guess_count`)
	if err != nil {
		return Summary{}, fmt.Errorf("distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var guesses, n int
		if err := rows.Scan(&guesses, &n); err != nil {
			return Summary{}, err
		}
		sum.Distribution[guesses] = n
	}
	return sum, rows.Err()
}

func (s *SQLite) Close() error { return s.db.Close() }

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var (
			r       Result
			guesses string
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Mode, &r.Backend, &r.Date, &r.Target, &guesses,
			&r.State, &r.Reason, &r.ElapsedMs, &created); err != nil {
			return nil, err
		}
		r.Guesses = strings.Fields(guesses)
		if r.Guesses == nil {
			r.Guesses = []string{}
		}
		r.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
