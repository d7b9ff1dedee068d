package export

import (
	"path/filepath"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookingsReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		{
			ID:       5,
			ItemName: "drill",
			BookerID: 2,
			Start:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			End:      time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
			Status:   models.StatusApproved,
		},
	}

	require.NoError(t, WriteBookingsReport(path, from, to, bookings))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Bookings", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Bookings 01.03.2026 - 31.03.2026", title)

	header, err := f.GetCellValue("Bookings", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Item", header)

	item, err := f.GetCellValue("Bookings", "B3")
	require.NoError(t, err)
	assert.Equal(t, "drill", item)

	status, err := f.GetCellValue("Bookings", "F3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, status)
}

func TestWriteBookingsReport_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, WriteBookingsReport(path, from, from.AddDate(0, 1, 0), nil))
	assert.FileExists(t, path)
}
