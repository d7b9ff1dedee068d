package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJobLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	job := &models.ExportJob{FromDate: from, ToDate: to, Status: models.ExportQueued}
	require.NoError(t, db.CreateExportJob(ctx, job))
	require.NotZero(t, job.ID)

	loaded, err := db.GetExportJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportQueued, loaded.Status)
	assert.Nil(t, loaded.ProcessedAt)

	require.NoError(t, db.UpdateExportJobStatus(ctx, job.ID, models.ExportDone, "exports/report.xlsx", ""))

	loaded, err = db.GetExportJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportDone, loaded.Status)
	assert.Equal(t, "exports/report.xlsx", loaded.FilePath)
	require.NotNil(t, loaded.ProcessedAt)
}

func TestGetExportJob_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetExportJob(context.Background(), 12345)

	assert.True(t, apperr.IsNotFound(err))
}

func TestListExportJobs_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	first := &models.ExportJob{FromDate: from, ToDate: from.AddDate(0, 1, 0), Status: models.ExportQueued}
	require.NoError(t, db.CreateExportJob(ctx, first))
	second := &models.ExportJob{FromDate: from, ToDate: from.AddDate(0, 2, 0), Status: models.ExportQueued}
	require.NoError(t, db.CreateExportJob(ctx, second))

	jobs, err := db.ListExportJobs(ctx)

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID)
	assert.Equal(t, first.ID, jobs[1].ID)
}
