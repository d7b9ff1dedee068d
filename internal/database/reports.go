package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

func (db *DB) CreateExportJob(ctx context.Context, job *models.ExportJob) error {
	query := `INSERT INTO export_jobs (from_date, to_date, status, created_at) VALUES (?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query, job.FromDate.UTC(), job.ToDate.UTC(), job.Status, now)
	if err != nil {
		return fmt.Errorf("failed to create export job: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	job.ID = id
	job.CreatedAt = now
	return nil
}

func (db *DB) GetExportJob(ctx context.Context, id int64) (*models.ExportJob, error) {
	query := `SELECT id, from_date, to_date, status, file_path, last_error, created_at, processed_at
              FROM export_jobs WHERE id = ?`

	var job models.ExportJob
	var processedAt sql.NullTime
	err := db.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.FromDate, &job.ToDate, &job.Status,
		&job.FilePath, &job.LastError, &job.CreatedAt, &processedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("export job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export job: %w", err)
	}
	if processedAt.Valid {
		job.ProcessedAt = &processedAt.Time
	}
	return &job, nil
}

func (db *DB) UpdateExportJobStatus(ctx context.Context, id int64, status, filePath, lastError string) error {
	query := `UPDATE export_jobs SET status = ?, file_path = ?, last_error = ?, processed_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, status, filePath, lastError, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update export job: %w", err)
	}
	return nil
}

func (db *DB) ListExportJobs(ctx context.Context) ([]models.ExportJob, error) {
	query := `SELECT id, from_date, to_date, status, file_path, last_error, created_at, processed_at
              FROM export_jobs ORDER BY id DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list export jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.ExportJob
	for rows.Next() {
		var job models.ExportJob
		var processedAt sql.NullTime
		err := rows.Scan(
			&job.ID, &job.FromDate, &job.ToDate, &job.Status,
			&job.FilePath, &job.LastError, &job.CreatedAt, &processedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export job: %w", err)
		}
		if processedAt.Valid {
			job.ProcessedAt = &processedAt.Time
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
