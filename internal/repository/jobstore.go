// Package repository provides PostgreSQL persistence for report jobs.
// The store is the source of truth for job lifecycle state; status
// changes are guarded in SQL so transitions can only move forward.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/hostelops/reportgen/internal/job"
)

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrIllegalTransition = errors.New("illegal job status transition")
)

// Store is the persistence contract the queue and worker depend on.
type Store interface {
	CreateJob(ctx context.Context, j *job.Job) error
	GetJob(ctx context.Context, jobID string) (*job.Job, error)
	MarkProcessing(ctx context.Context, jobID string) error
	MarkCompleted(ctx context.Context, jobID string, filePath string) error
	MarkFailed(ctx context.Context, jobID string, errorMessage string) error
	GetRecentJobs(ctx context.Context, limit int) ([]job.Job, error)
	GetJobStats(ctx context.Context) ([]JobStats, error)
}

// JobStats is one aggregate bucket for the dashboard.
type JobStats struct {
	Section string `json:"section"`
	Status  string `json:"status"`
	Count   int    `json:"count"`
}

type PostgresJobStore struct {
	db *sql.DB
}

func NewPostgresJobStore(connectionString string) (*PostgresJobStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresJobStore{db: db}, nil
}

// NewPostgresJobStoreFromDB wraps an existing connection; used by the
// server main so the store and the engines share one pool.
func NewPostgresJobStoreFromDB(db *sql.DB) *PostgresJobStore {
	return &PostgresJobStore{db: db}
}

func (s *PostgresJobStore) CreateJob(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO report_jobs (
			job_id, section, report_code, format,
			from_date, to_date, notify_email, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		j.ID,
		j.Section,
		j.Code,
		j.Format,
		j.From,
		j.To,
		nullIfEmpty(j.NotifyEmail),
		j.Status,
		j.CreatedAt,
	)

	return err
}

func (s *PostgresJobStore) GetJob(ctx context.Context, jobID string) (*job.Job, error) {
	query := `
		SELECT
			job_id, section, report_code, format,
			from_date, to_date, COALESCE(notify_email, ''),
			status, COALESCE(file_path, ''), COALESCE(error_message, ''),
			created_at, completed_at
		FROM report_jobs
		WHERE job_id = $1
	`

	var j job.Job
	var from, to, completedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, jobID).Scan(
		&j.ID,
		&j.Section,
		&j.Code,
		&j.Format,
		&from,
		&to,
		&j.NotifyEmail,
		&j.Status,
		&j.FilePath,
		&j.ErrorMessage,
		&j.CreatedAt,
		&completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if err != nil {
		return nil, err
	}

	if from.Valid {
		j.From = &from.Time
	}
	if to.Valid {
		j.To = &to.Time
	}
	if completedAt.Valid {
		j.CompletedAt = &completedAt.Time
	}

	return &j, nil
}

// MarkProcessing moves a queued job into processing. The status guard
// in the WHERE clause is what makes the lifecycle monotonic.
func (s *PostgresJobStore) MarkProcessing(ctx context.Context, jobID string) error {
	query := `
		UPDATE report_jobs
		SET status = $1
		WHERE job_id = $2 AND status = $3
	`
	return s.guardedUpdate(ctx, jobID, query, job.StatusProcessing, jobID, job.StatusQueued)
}

func (s *PostgresJobStore) MarkCompleted(ctx context.Context, jobID string, filePath string) error {
	query := `
		UPDATE report_jobs
		SET status = $1,
		    file_path = $2,
		    completed_at = NOW()
		WHERE job_id = $3 AND status = $4
	`
	return s.guardedUpdate(ctx, jobID, query, job.StatusCompleted, filePath, jobID, job.StatusProcessing)
}

func (s *PostgresJobStore) MarkFailed(ctx context.Context, jobID string, errorMessage string) error {
	query := `
		UPDATE report_jobs
		SET status = $1,
		    error_message = $2,
		    completed_at = NOW()
		WHERE job_id = $3 AND status = $4
	`
	return s.guardedUpdate(ctx, jobID, query, job.StatusFailed, errorMessage, jobID, job.StatusProcessing)
}

func (s *PostgresJobStore) guardedUpdate(ctx context.Context, jobID, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: job %s", ErrIllegalTransition, jobID)
	}

	return nil
}

func (s *PostgresJobStore) GetRecentJobs(ctx context.Context, limit int) ([]job.Job, error) {
	query := `
		SELECT
			job_id, section, report_code, format, status,
			COALESCE(file_path, ''), COALESCE(error_message, ''),
			created_at, completed_at
		FROM report_jobs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close rows")
		}
	}()

	var jobs []job.Job
	for rows.Next() {
		var j job.Job
		var completedAt sql.NullTime

		if err := rows.Scan(
			&j.ID,
			&j.Section,
			&j.Code,
			&j.Format,
			&j.Status,
			&j.FilePath,
			&j.ErrorMessage,
			&j.CreatedAt,
			&completedAt,
		); err != nil {
			return nil, err
		}

		if completedAt.Valid {
			j.CompletedAt = &completedAt.Time
		}

		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

func (s *PostgresJobStore) GetJobStats(ctx context.Context) ([]JobStats, error) {
	query := `
		SELECT section, status, COUNT(*) as count
		FROM report_jobs
		GROUP BY section, status
		ORDER BY section, status
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close rows")
		}
	}()

	var stats []JobStats
	for rows.Next() {
		var st JobStats
		if err := rows.Scan(&st.Section, &st.Status, &st.Count); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}

	return stats, rows.Err()
}

func (s *PostgresJobStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresJobStore) Close() error {
	return s.db.Close()
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}
