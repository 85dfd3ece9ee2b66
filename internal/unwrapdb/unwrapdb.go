// Package unwrapdb persists unwrap run metadata to SQLite so that
// repeated processing of the same acquisition can be compared and
// audited later.
package unwrapdb

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/fieldmap/internal/unwrap"
)

type UnwrapDB struct {
	*sql.DB
}

// schema.sql defines the run and per-bin tables.
//
//go:embed schema.sql
var schemaSQL string

func NewUnwrapDB(path string) (*UnwrapDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise unwrap schema: %w", err)
	}
	return &UnwrapDB{db}, nil
}

// RunRecord is one unwrap invocation as stored in unwrap_runs.
type RunRecord struct {
	RunID          string
	CreatedAt      time.Time
	SourcePath     string
	Dims           [3]int
	Bins           int
	Seed           [3]int
	VoxelsExpanded int
	Deferrals      int
	QueueGrowths   int
	Duration       time.Duration
	Error          string
}

// RecordRun stores a run and its per-bin stats, assigning and returning
// a fresh run ID. errText is empty for successful runs.
func (db *UnwrapDB) RecordRun(sourcePath string, dims [3]int, stats unwrap.Stats, duration time.Duration, errText string) (string, error) {
	runID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO unwrap_runs (
			run_id, created_unix_nanos, source_path,
			nx, ny, nz, bins,
			seed_x, seed_y, seed_z,
			voxels_expanded, deferrals, queue_growths,
			duration_nanos, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UnixNano(), sourcePath,
		dims[0], dims[1], dims[2], len(stats.Bins),
		stats.Seed[0], stats.Seed[1], stats.Seed[2],
		stats.Expanded, stats.Deferred, stats.QueueGrowths,
		duration.Nanoseconds(), errText,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert unwrap run: %w", err)
	}

	for bin, bs := range stats.Bins {
		if bs.Expanded == 0 && bs.Deferred == 0 {
			continue // most bins are empty; don't store them
		}
		if _, err := tx.Exec(`
			INSERT INTO unwrap_run_bins (run_id, bin, expanded, deferred)
			VALUES (?, ?, ?, ?)`,
			runID, bin, bs.Expanded, bs.Deferred,
		); err != nil {
			return "", fmt.Errorf("failed to insert bin stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *UnwrapDB) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT run_id, created_unix_nanos, source_path,
		       nx, ny, nz, bins,
		       seed_x, seed_y, seed_z,
		       voxels_expanded, deferrals, queue_growths,
		       duration_nanos, error
		FROM unwrap_runs
		ORDER BY created_unix_nanos DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var created, durNanos int64
		if err := rows.Scan(
			&r.RunID, &created, &r.SourcePath,
			&r.Dims[0], &r.Dims[1], &r.Dims[2], &r.Bins,
			&r.Seed[0], &r.Seed[1], &r.Seed[2],
			&r.VoxelsExpanded, &r.Deferrals, &r.QueueGrowths,
			&durNanos, &r.Error,
		); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(0, created)
		r.Duration = time.Duration(durNanos)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// BinStats returns the stored per-bin breakdown for a run, ascending by
// bin index. Empty bins were not stored and are not reconstructed.
func (db *UnwrapDB) BinStats(runID string) (map[int]unwrap.BinStats, error) {
	rows, err := db.Query(`
		SELECT bin, expanded, deferred
		FROM unwrap_run_bins
		WHERE run_id = ?
		ORDER BY bin`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]unwrap.BinStats)
	for rows.Next() {
		var bin int
		var bs unwrap.BinStats
		if err := rows.Scan(&bin, &bs.Expanded, &bs.Deferred); err != nil {
			return nil, err
		}
		out[bin] = bs
	}
	return out, rows.Err()
}
