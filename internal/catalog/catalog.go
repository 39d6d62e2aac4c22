// Package catalog records classification runs and their code histograms in
// a SQLite database.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when a run ID is not in the catalog.
var ErrRunNotFound = errors.New("catalog: run not found")

type Catalog struct {
	*sql.DB
}

// Open opens (creating if needed) the catalog at path and brings its schema
// up to date.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}

	c := &Catalog{db}
	if err := c.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Run is one catalogued classification.
type Run struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Input      string
	Format     string
	Rows       int
	Cols       int
	CellSize   float64
	Radius     int
	Workers    int
	Classified int
	Version    string
}

// RecordRun stores run and its code histogram in one transaction. A run
// without an ID is assigned a new UUID, which is returned.
func (c *Catalog) RecordRun(ctx context.Context, run Run, counts map[int]int) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, started_at_ns, duration_ns, input_path, format,
			rows, cols, cell_size, radius, workers, classified, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixNano(), int64(run.Duration), run.Input, run.Format,
		run.Rows, run.Cols, run.CellSize, run.Radius, run.Workers, run.Classified, run.Version,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO code_counts (run_id, code, cells) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare code count insert: %w", err)
	}
	defer stmt.Close()

	codes := make([]int, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		if _, err := stmt.ExecContext(ctx, run.ID, code, counts[code]); err != nil {
			return "", fmt.Errorf("failed to insert code %d: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `run_id, started_at_ns, duration_ns, input_path, format,
	rows, cols, cell_size, radius, workers, classified, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (Run, error) {
	var (
		r                   Run
		startedNs, duration int64
	)
	err := s.Scan(&r.ID, &startedNs, &duration, &r.Input, &r.Format,
		&r.Rows, &r.Cols, &r.CellSize, &r.Radius, &r.Workers, &r.Classified, &r.Version)
	if err != nil {
		return Run{}, err
	}
	r.StartedAt = time.Unix(0, startedNs).UTC()
	r.Duration = time.Duration(duration)
	return r, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (c *Catalog) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := c.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at_ns DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by ID.
func (c *Catalog) GetRun(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(c.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// CodeCounts returns the canonical code histogram stored for a run.
func (c *Catalog) CodeCounts(ctx context.Context, runID string) (map[int]int, error) {
	rows, err := c.QueryContext(ctx, `SELECT code, cells FROM code_counts WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query code counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var code, cells int
		if err := rows.Scan(&code, &cells); err != nil {
			return nil, fmt.Errorf("failed to scan code count: %w", err)
		}
		counts[code] = cells
	}
	return counts, rows.Err()
}

// DeleteRun removes a run and its histogram.
func (c *Catalog) DeleteRun(ctx context.Context, id string) error {
	res, err := c.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}
