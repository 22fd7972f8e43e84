package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fortio.org/safecast"
	_ "github.com/mattn/go-sqlite3"

	"guidelint/internal/diagnostic"
	"guidelint/internal/syntax"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER,
			roots JSON,
			files INTEGER,
			diagnostics INTEGER,
			errors INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS diagnostics (
			run_id INTEGER REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER,
			rule TEXT,
			category TEXT,
			severity TEXT,
			message TEXT,
			path TEXT,
			start_byte INTEGER,
			end_byte INTEGER,
			start_line INTEGER,
			start_column INTEGER,
			end_line INTEGER,
			end_column INTEGER,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_diagnostics_rule ON diagnostics(rule);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run, diags []diagnostic.Diagnostic) (int64, error) {
	roots, err := json.Marshal(run.Roots)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var errCount int
	for _, d := range diags {
		if d.Severity == diagnostic.SevError {
			errCount++
		}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (started_at, roots, files, diagnostics, errors)
		VALUES (?, ?, ?, ?, ?)
	`, run.StartedAt.UnixNano(), roots, run.Files, len(diags), errCount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO diagnostics (run_id, seq, rule, category, severity, message, path,
			start_byte, end_byte, start_line, start_column, end_line, end_column)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, d := range diags {
		loc := d.Location
		if _, err := stmt.ExecContext(ctx, id, i, d.Rule, d.Category.String(), d.Severity.String(), d.Message, loc.Path,
			loc.StartByte, loc.EndByte, loc.Start.Line, loc.Start.Column, loc.End.Line, loc.End.Column); err != nil {
			return 0, fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return id, nil
}

const runColumns = "id, started_at, roots, files, diagnostics, errors"

func (s *SQLiteStore) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+runColumns+" FROM runs ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *SQLiteStore) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs ORDER BY id DESC LIMIT 1")

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}

	return run, err
}

func (s *SQLiteStore) Diagnostics(ctx context.Context, runID int64) ([]diagnostic.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rule, category, severity, message, path,
			start_byte, end_byte, start_line, start_column, end_line, end_column
		FROM diagnostics WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query diagnostics: %w", err)
	}
	defer rows.Close()

	var diags []diagnostic.Diagnostic
	for rows.Next() {
		var (
			d                  diagnostic.Diagnostic
			category, severity string
			startByte, endByte int64
		)
		if err := rows.Scan(&d.Rule, &category, &severity, &d.Message, &d.Location.Path,
			&startByte, &endByte, &d.Location.Start.Line, &d.Location.Start.Column,
			&d.Location.End.Line, &d.Location.End.Column); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}

		if d.Category, err = diagnostic.ParseCategory(category); err != nil {
			return nil, err
		}
		if d.Severity, err = diagnostic.ParseSeverity(severity); err != nil {
			return nil, err
		}
		if d.Location, err = offsets(d.Location, startByte, endByte); err != nil {
			return nil, err
		}
		diags = append(diags, d)
	}

	return diags, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run       Run
		startedAt int64
		roots     []byte
	)
	if err := row.Scan(&run.ID, &startedAt, &roots, &run.Files, &run.Diagnostics, &run.Errors); err != nil {
		return Run{}, err
	}

	run.StartedAt = time.Unix(0, startedAt)
	if len(roots) > 0 {
		if err := json.Unmarshal(roots, &run.Roots); err != nil {
			return Run{}, fmt.Errorf("failed to decode roots of run %d: %w", run.ID, err)
		}
	}

	return run, nil
}

// offsets narrows the stored byte offsets back to the location's width.
func offsets(loc syntax.Location, start, end int64) (syntax.Location, error) {
	var err error
	if loc.StartByte, err = safecast.Conv[uint32](start); err != nil {
		return loc, fmt.Errorf("start offset %d: %w", start, err)
	}
	if loc.EndByte, err = safecast.Conv[uint32](end); err != nil {
		return loc, fmt.Errorf("end offset %d: %w", end, err)
	}

	return loc, nil
}
