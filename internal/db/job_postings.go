package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Haloween-arch/Jobtune/internal/jobs"
	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// -----------------------------------------------------------------------------
// Job Posting Methods
// -----------------------------------------------------------------------------

// ListJobPostings returns every stored posting in insertion order
func (db *DB) ListJobPostings(ctx context.Context) ([]JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, skills, date_posted, content_hash, created_at, updated_at
		 FROM job_postings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	postings := make([]JobPosting, 0)
	for rows.Next() {
		var p JobPosting
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Skills, &p.DatePosted,
			&p.ContentHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return postings, nil
}

// GetJobPostingByID retrieves a posting by id, returning nil when absent
func (db *DB) GetJobPostingByID(ctx context.Context, id int64) (*JobPosting, error) {
	var p JobPosting
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, skills, date_posted, content_hash, created_at, updated_at
		 FROM job_postings WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Skills, &p.DatePosted,
		&p.ContentHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return &p, nil
}

// Load implements jobs.Source over the stored postings.
func (db *DB) Load(ctx context.Context) ([]types.JobPosting, error) {
	rows, err := db.ListJobPostings(ctx)
	if err != nil {
		return nil, err
	}
	postings := make([]types.JobPosting, len(rows))
	for i := range rows {
		postings[i] = rows[i].ToPosting()
	}
	return postings, nil
}

// ImportPostings inserts postings, skipping ones already stored with the
// same content. It returns how many rows were inserted.
func (db *DB) ImportPostings(ctx context.Context, postings []types.JobPosting) (int, error) {
	if len(postings) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, p := range postings {
		skills := parsing.NormalizeSkills(p.Skills)
		var datePosted *time.Time
		if p.DatePosted != "" {
			d, err := time.Parse(jobs.DateLayout, p.DatePosted)
			if err != nil {
				return 0, fmt.Errorf("invalid date_posted %q for %q: %w", p.DatePosted, p.Title, err)
			}
			datePosted = &d
		}
		batch.Queue(
			`INSERT INTO job_postings (title, description, skills, date_posted, content_hash)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (content_hash) DO NOTHING`,
			p.Title, p.Description, skills, datePosted,
			ComputeContentHash(p.Title, p.Description, skills),
		)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for range postings {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("failed to import job posting: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to import job postings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return inserted, nil
}

// RefreshDates refreshes posting dates and records the run in
// job_refresh_runs. It implements jobs.DatesRefresher.
func (db *DB) RefreshDates(ctx context.Context, today time.Time) (int, error) {
	started := time.Now()
	n, err := db.RefreshPostingDates(ctx, today)
	if recErr := db.RecordRefreshRun(ctx, RefreshSourcePostgres, n, err, started); recErr != nil && err == nil {
		return n, recErr
	}
	return n, err
}

// RefreshPostingDates sets date_posted on every row to today minus (row
// index mod 7) days, rows ordered by id.
func (db *DB) RefreshPostingDates(ctx context.Context, today time.Time) (int, error) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	tag, err := db.pool.Exec(ctx,
		`WITH ordered AS (
		     SELECT id, (ROW_NUMBER() OVER (ORDER BY id) - 1) AS idx FROM job_postings
		 )
		 UPDATE job_postings j
		 SET date_posted = $1::date - (o.idx % $2)::int, updated_at = NOW()
		 FROM ordered o WHERE j.id = o.id`,
		day, jobs.RefreshWindowDays,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to refresh posting dates: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Version identifies the current table snapshot. Inserts raise max(id),
// deletes lower the count, and date refreshes bump updated_at.
// It implements jobs.Versioned.
func (db *DB) Version(ctx context.Context) (string, error) {
	var (
		count   int64
		maxID   int64
		updated time.Time
	)
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(id), 0), COALESCE(MAX(updated_at), 'epoch'::timestamptz)
		 FROM job_postings`,
	).Scan(&count, &maxID, &updated)
	if err != nil {
		return "", fmt.Errorf("failed to read job postings version: %w", err)
	}
	return fmt.Sprintf("pg:%d:%d:%d", count, maxID, updated.UnixMicro()), nil
}

// DeleteAllJobPostings removes every stored posting
func (db *DB) DeleteAllJobPostings(ctx context.Context) (int, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM job_postings`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete job postings: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// -----------------------------------------------------------------------------
// Refresh Run Methods
// -----------------------------------------------------------------------------

// RecordRefreshRun stores the outcome of a date refresh
func (db *DB) RecordRefreshRun(ctx context.Context, source string, rows int, runErr error, startedAt time.Time) error {
	status := RefreshStatusSuccess
	var errText *string
	if runErr != nil {
		status = RefreshStatusFailed
		msg := runErr.Error()
		errText = &msg
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO job_refresh_runs (source, rows_updated, status, error, started_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		source, rows, status, errText, startedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record refresh run: %w", err)
	}
	return nil
}

// LatestRefreshRun returns the most recent refresh run, or nil when none exist
func (db *DB) LatestRefreshRun(ctx context.Context) (*RefreshRun, error) {
	var r RefreshRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, source, rows_updated, status, error, started_at, completed_at
		 FROM job_refresh_runs ORDER BY id DESC LIMIT 1`,
	).Scan(&r.ID, &r.Source, &r.RowsUpdated, &r.Status, &r.Error, &r.StartedAt, &r.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest refresh run: %w", err)
	}
	return &r, nil
}
