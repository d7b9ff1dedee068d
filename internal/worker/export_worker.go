package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/export"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// ExportWorker generates xlsx booking reports in the background. Jobs are
// tracked in the export_jobs table so their outcome survives restarts.
type ExportWorker struct {
	db          *database.DB
	dir         string
	queue       chan int64
	retryPolicy RetryPolicy
	logger      *zerolog.Logger
}

func NewExportWorker(db *database.DB, dir string, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	return &ExportWorker{
		db:          db,
		dir:         dir,
		queue:       make(chan int64, models.ExportQueueSize),
		retryPolicy: retry.normalized(),
		logger:      logger,
	}
}

// Enqueue records a job and schedules it. The job is marked failed
// immediately when the queue is full.
func (w *ExportWorker) Enqueue(ctx context.Context, from, to time.Time) (*models.ExportJob, error) {
	if !from.Before(to) {
		return nil, apperr.Validation("from must be before to")
	}

	job := &models.ExportJob{FromDate: from, ToDate: to, Status: models.ExportQueued}
	if err := w.db.CreateExportJob(ctx, job); err != nil {
		return nil, err
	}

	select {
	case w.queue <- job.ID:
		return job, nil
	default:
		_ = w.db.UpdateExportJobStatus(ctx, job.ID, models.ExportFailed, "", "export queue is full")
		return nil, errors.New("export queue is full")
	}
}

func (w *ExportWorker) ListJobs(ctx context.Context) ([]models.ExportJob, error) {
	return w.db.ListExportJobs(ctx)
}

// Run processes jobs until ctx is canceled.
func (w *ExportWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case jobID := <-w.queue:
			w.process(ctx, jobID)
		}
	}
}

func (w *ExportWorker) process(ctx context.Context, jobID int64) {
	job, err := w.db.GetExportJob(ctx, jobID)
	if err != nil {
		w.logger.Error().Err(err).Int64("job_id", jobID).Msg("load export job")
		return
	}

	bookings, err := w.db.GetBookingsByDateRange(ctx, job.FromDate, job.ToDate)
	if err != nil {
		w.fail(ctx, jobID, err)
		return
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.fail(ctx, jobID, err)
		return
	}

	fileName := fmt.Sprintf("bookings_%d_%s_to_%s.xlsx",
		jobID,
		job.FromDate.Format("2006-01-02"),
		job.ToDate.Format("2006-01-02"))
	filePath := filepath.Join(w.dir, fileName)

	saveErr := w.retryPolicy.Do(ctx, func(attempt int) error {
		err := export.WriteBookingsReport(filePath, job.FromDate, job.ToDate, bookings)
		if err != nil {
			w.logger.Warn().Err(err).Int64("job_id", jobID).Int("attempt", attempt).Msg("export attempt failed")
		}
		return err
	})
	if saveErr != nil {
		if ctx.Err() != nil {
			return
		}
		w.fail(ctx, jobID, saveErr)
		return
	}

	if err := w.db.UpdateExportJobStatus(ctx, jobID, models.ExportDone, filePath, ""); err != nil {
		w.logger.Error().Err(err).Int64("job_id", jobID).Msg("mark export job done")
		return
	}
	metrics.IncExportJob(models.ExportDone)
	w.logger.Info().Int64("job_id", jobID).Str("file_path", filePath).Int("bookings", len(bookings)).Msg("export job done")
}

func (w *ExportWorker) fail(ctx context.Context, jobID int64, cause error) {
	metrics.IncExportJob(models.ExportFailed)
	w.logger.Error().Err(cause).Int64("job_id", jobID).Msg("export job failed")
	if err := w.db.UpdateExportJobStatus(ctx, jobID, models.ExportFailed, "", cause.Error()); err != nil {
		w.logger.Error().Err(err).Int64("job_id", jobID).Msg("mark export job failed")
	}
}
