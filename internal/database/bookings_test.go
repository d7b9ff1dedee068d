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

func TestGetBooking_JoinsItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "anna")
	booker := createTestUser(t, db, "boris")
	item := createTestItem(t, db, owner.ID, "drill", true)

	now := time.Now().UTC()
	created := createTestBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	booking, err := db.GetBooking(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "drill", booking.ItemName)
	assert.Equal(t, owner.ID, booking.ItemOwnerID)
	assert.Equal(t, booker.ID, booking.BookerID)
	assert.Equal(t, models.StatusWaiting, booking.Status)
}

func TestGetBooking_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBooking(context.Background(), 12345)

	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateBookingStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "anna")
	booker := createTestUser(t, db, "boris")
	item := createTestItem(t, db, owner.ID, "drill", true)

	now := time.Now().UTC()
	created := createTestBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	require.NoError(t, db.UpdateBookingStatus(ctx, created.ID, models.StatusApproved))

	booking, err := db.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, booking.Status)
}

// Status-filtered listings come back ordered by start descending, while
// time-filtered listings come back ordered by id ascending.
func TestListBookings_Orderings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "anna")
	booker := createTestUser(t, db, "boris")
	item := createTestItem(t, db, owner.ID, "drill", true)

	// Insertion order deliberately disagrees with chronological order so
	// that start-descending and id-ascending results cannot coincide.
	now := time.Now().UTC()
	futureLate := createTestBooking(t, db, item.ID, booker.ID, now.Add(72*time.Hour), now.Add(96*time.Hour), models.StatusWaiting)
	pastEarly := createTestBooking(t, db, item.ID, booker.ID, now.Add(-96*time.Hour), now.Add(-72*time.Hour), models.StatusWaiting)
	futureEarly := createTestBooking(t, db, item.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting)
	pastLate := createTestBooking(t, db, item.ID, booker.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusWaiting)
	current := createTestBooking(t, db, item.ID, booker.ID, now.Add(-time.Hour), now.Add(time.Hour), models.StatusRejected)

	ids := func(bookings []models.Booking) []int64 {
		out := make([]int64, len(bookings))
		for i, b := range bookings {
			out[i] = b.ID
		}
		return out
	}

	all, err := db.ListBookings(ctx, models.RoleBooker, booker.ID, models.StateAll)
	require.NoError(t, err)
	assert.Equal(t, []int64{futureLate.ID, futureEarly.ID, current.ID, pastLate.ID, pastEarly.ID}, ids(all))

	waiting, err := db.ListBookings(ctx, models.RoleBooker, booker.ID, models.StateWaiting)
	require.NoError(t, err)
	assert.Equal(t, []int64{futureLate.ID, futureEarly.ID, pastLate.ID, pastEarly.ID}, ids(waiting))

	rejected, err := db.ListBookings(ctx, models.RoleBooker, booker.ID, models.StateRejected)
	require.NoError(t, err)
	assert.Equal(t, []int64{current.ID}, ids(rejected))

	pastList, err := db.ListBookings(ctx, models.RoleBooker, booker.ID, models.StatePast)
	require.NoError(t, err)
	assert.Equal(t, []int64{pastEarly.ID, pastLate.ID}, ids(pastList))

	currentList, err := db.ListBookings(ctx, models.RoleBooker, booker.ID, models.StateCurrent)
	require.NoError(t, err)
	assert.Equal(t, []int64{current.ID}, ids(currentList))

	futureList, err := db.ListBookings(ctx, models.RoleBooker, booker.ID, models.StateFuture)
	require.NoError(t, err)
	assert.Equal(t, []int64{futureLate.ID, futureEarly.ID}, ids(futureList))
}

// Every booking lands in exactly one of CURRENT, PAST and FUTURE.
func TestListBookings_TimePartition(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "anna")
	booker := createTestUser(t, db, "boris")
	item := createTestItem(t, db, owner.ID, "drill", true)

	now := time.Now().UTC()
	for i := -3; i <= 3; i++ {
		start := now.Add(time.Duration(i*24) * time.Hour)
		createTestBooking(t, db, item.ID, booker.ID, start, start.Add(36*time.Hour), models.StatusWaiting)
	}

	all, err := db.ListBookings(ctx, models.RoleBooker, booker.ID, models.StateAll)
	require.NoError(t, err)

	seen := map[int64]int{}
	for _, state := range []models.BookingState{models.StateCurrent, models.StatePast, models.StateFuture} {
		list, err := db.ListBookings(ctx, models.RoleBooker, booker.ID, state)
		require.NoError(t, err)
		for _, b := range list {
			seen[b.ID]++
		}
	}

	assert.Len(t, seen, len(all))
	for id, count := range seen {
		assert.Equal(t, 1, count, "booking %d appears in more than one state", id)
	}
}

func TestListBookings_ByOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "anna")
	booker := createTestUser(t, db, "boris")
	otherOwner := createTestUser(t, db, "clara")
	item := createTestItem(t, db, owner.ID, "drill", true)
	otherItem := createTestItem(t, db, otherOwner.ID, "saw", true)

	now := time.Now().UTC()
	mine := createTestBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)
	createTestBooking(t, db, otherItem.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	list, err := db.ListBookings(ctx, models.RoleOwner, owner.ID, models.StateAll)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
}

func TestGetBookingsByDateRange_Overlap(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "anna")
	booker := createTestUser(t, db, "boris")
	item := createTestItem(t, db, owner.ID, "drill", true)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inside := createTestBooking(t, db, item.ID, booker.ID, base.AddDate(0, 0, 2), base.AddDate(0, 0, 3), models.StatusApproved)
	straddling := createTestBooking(t, db, item.ID, booker.ID, base.AddDate(0, 0, -1), base.AddDate(0, 0, 1), models.StatusApproved)
	createTestBooking(t, db, item.ID, booker.ID, base.AddDate(0, 0, 30), base.AddDate(0, 0, 31), models.StatusApproved)

	list, err := db.GetBookingsByDateRange(ctx, base, base.AddDate(0, 0, 7))

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, straddling.ID, list[0].ID)
	assert.Equal(t, inside.ID, list[1].ID)
}
