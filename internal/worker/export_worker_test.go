package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWorker(t *testing.T) (*ExportWorker, *database.DB) {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	worker := NewExportWorker(db, filepath.Join(t.TempDir(), "exports"), RetryPolicy{
		InitialDelay: time.Millisecond,
	}, &logger)
	return worker, db
}

func waitForStatus(t *testing.T, db *database.DB, jobID int64, status string) *models.ExportJob {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := db.GetExportJob(context.Background(), jobID)
		require.NoError(t, err)
		if job.Status == status {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %d did not reach status %s", jobID, status)
	return nil
}

func TestExportWorker_Enqueue_InvalidRange(t *testing.T) {
	worker, _ := setupWorker(t)

	at := time.Now()
	_, err := worker.Enqueue(context.Background(), at, at)

	assert.True(t, apperr.IsValidation(err))
}

func TestExportWorker_ProcessesJob(t *testing.T) {
	worker, db := setupWorker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// seed one booking inside the range
	user := &models.User{Name: "anna", Email: "anna@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))
	item := &models.Item{Name: "drill", Description: "cordless", Available: true, OwnerID: user.ID}
	require.NoError(t, db.CreateItem(ctx, item))
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		ItemID: item.ID, BookerID: user.ID,
		Start: from.AddDate(0, 0, 1), End: from.AddDate(0, 0, 2),
		Status: models.StatusApproved,
	}
	require.NoError(t, db.CreateBooking(ctx, booking))

	go worker.Run(ctx)

	job, err := worker.Enqueue(ctx, from, from.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, models.ExportQueued, job.Status)

	done := waitForStatus(t, db, job.ID, models.ExportDone)
	assert.FileExists(t, done.FilePath)
	assert.NotNil(t, done.ProcessedAt)
	assert.Empty(t, done.LastError)
}

func TestExportWorker_ListJobs(t *testing.T) {
	worker, _ := setupWorker(t)
	ctx := context.Background()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := worker.Enqueue(ctx, from, from.AddDate(0, 1, 0))
	require.NoError(t, err)

	jobs, err := worker.ListJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
