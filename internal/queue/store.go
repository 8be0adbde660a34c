package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"reelsmith/internal/config"
)

// ErrNotFound indicates no job exists for the requested id.
var ErrNotFound = errors.New("job not found")

// Store manages job persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the job database and verifies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "jobs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// NewJob inserts a freshly submitted job in the queued state, retaining the
// raw payload for post-hoc debugging.
func (s *Store) NewJob(ctx context.Context, id, payloadJSON, videoURL string) (*Job, error) {
	if id == "" {
		return nil, errors.New("job id required")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO jobs (id, status, progress, payload_json, video_url, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		StatusQueued,
		0,
		nullableString(payloadJSON),
		nullableString(videoURL),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a job by its identifier. Returns ErrNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return job, nil
}

// Update overwrites the persisted snapshot for a job. The job's orchestrator
// task is the only writer, so no optimistic locking is needed, but status
// changes must respect the lifecycle ordering.
func (s *Store) Update(ctx context.Context, job *Job) error {
	if job == nil || job.ID == "" {
		return errors.New("job with id required")
	}

	var current Status
	err := s.db.QueryRowContext(ctx, "SELECT status FROM jobs WHERE id = ?", job.ID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read job status %s: %w", job.ID, err)
	}
	if current != job.Status && !current.CanTransition(job.Status) {
		return fmt.Errorf("job %s: illegal status transition %s -> %s", job.ID, current, job.Status)
	}

	job.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs SET
            status = ?, progress = ?, error_message = ?, video_url = ?,
            payload_json = ?, duration_seconds = ?, size_bytes = ?, updated_at = ?
         WHERE id = ?`,
		job.Status,
		job.Progress,
		nullableString(job.ErrorMessage),
		nullableString(job.VideoURL),
		nullableString(job.PayloadJSON),
		job.DurationSeconds,
		job.SizeBytes,
		job.UpdatedAt.Format(time.RFC3339Nano),
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job %s: %w", job.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the most recently created jobs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+" FROM jobs ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Stats returns job counts keyed by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM jobs GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

const selectColumns = `SELECT id, status, progress, error_message, video_url,
    payload_json, duration_seconds, size_bytes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(scanner rowScanner) (*Job, error) {
	var (
		job          Job
		errorMessage sql.NullString
		videoURL     sql.NullString
		payloadJSON  sql.NullString
		createdAt    string
		updatedAt    string
	)
	err := scanner.Scan(
		&job.ID,
		&job.Status,
		&job.Progress,
		&errorMessage,
		&videoURL,
		&payloadJSON,
		&job.DurationSeconds,
		&job.SizeBytes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.ErrorMessage = errorMessage.String
	job.VideoURL = videoURL.String
	job.PayloadJSON = payloadJSON.String
	job.CreatedAt = parseTimestamp(createdAt)
	job.UpdatedAt = parseTimestamp(updatedAt)
	return &job, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
