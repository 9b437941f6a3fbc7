// Package journal keeps a SQLite history of allocation runs and the cost
// corrections applied in each.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriy-chepelev/costsheet/internal/reconcile"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Run describes one allocation run.
type Run struct {
	ID        string
	Year      int
	Month     time.Month
	CreatedAt time.Time
	Persons   int
	Projects  int
	Hours     int
}

// Entry is a journaled correction with the run it belongs to.
type Entry struct {
	RunID     string
	CreatedAt time.Time
	reconcile.Correction
}

// Store wraps the journal database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal database and applies migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			persons INTEGER NOT NULL,
			projects INTEGER NOT NULL,
			hours INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS corrections (
			run_id TEXT NOT NULL REFERENCES runs(id),
			person TEXT NOT NULL,
			summary INTEGER NOT NULL,
			total INTEGER NOT NULL,
			corrected INTEGER NOT NULL,
			factor TEXT NOT NULL,
			PRIMARY KEY (run_id, person)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_period ON runs(year, month);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record stores a run and its corrections in one transaction.
func (s *Store) Record(ctx context.Context, run Run, corrections []reconcile.Correction) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, year, month, created_at, persons, projects, hours)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Year, int(run.Month), run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Persons, run.Projects, run.Hours,
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}

	for _, c := range corrections {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO corrections (run_id, person, summary, total, corrected, factor)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, c.Person, c.Summary, c.Total, c.Corrected, c.Factor.String(),
		)
		if err != nil {
			return fmt.Errorf("recording correction for %s: %w", c.Person, err)
		}
	}

	return tx.Commit()
}

// Forget deletes every run of a period with its corrections and returns the
// number of runs removed.
func (s *Store) Forget(ctx context.Context, year int, month time.Month) (n int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM corrections WHERE run_id IN (SELECT id FROM runs WHERE year = ? AND month = ?)`,
		year, int(month))
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE year = ? AND month = ?`, year, int(month))
	if err != nil {
		return 0, err
	}
	if n, err = res.RowsAffected(); err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// Runs lists runs for a period, newest first.
func (s *Store) Runs(ctx context.Context, year int, month time.Month) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, year, month, created_at, persons, projects, hours
		 FROM runs WHERE year = ? AND month = ?
		 ORDER BY created_at DESC`, year, int(month))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			m       int
			created string
		)
		if err := rows.Scan(&r.ID, &r.Year, &m, &created, &r.Persons, &r.Projects, &r.Hours); err != nil {
			return nil, err
		}
		r.Month = time.Month(m)
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Corrections lists corrections recorded for a period, newest run first and
// persons in name order within a run.
func (s *Store) Corrections(ctx context.Context, year int, month time.Month) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.run_id, r.created_at, c.person, c.summary, c.total, c.corrected, c.factor
		 FROM corrections c JOIN runs r ON r.id = c.run_id
		 WHERE r.year = ? AND r.month = ?
		 ORDER BY r.created_at DESC, c.person`, year, int(month))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
			factor  string
		)
		if err := rows.Scan(&e.RunID, &created, &e.Person, &e.Summary, &e.Total, &e.Corrected, &factor); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %s: %w", e.RunID, err)
		}
		if e.Factor, err = decimal.NewFromString(factor); err != nil {
			return nil, fmt.Errorf("run %s: factor %q: %w", e.RunID, factor, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
