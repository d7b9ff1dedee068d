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

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "anna")
	createTestItem(t, db, owner.ID, "Cordless Drill", true)
	createTestItem(t, db, owner.ID, "Hammer", true)
	hidden := &models.Item{Name: "Drill Press", Description: "heavy", Available: false, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, hidden))

	items, err := db.SearchItems(ctx, "dRiLl")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cordless Drill", items[0].Name)
}

func TestSearchItems_MatchesDescription(t *testing.T) {
	db := setupTestDB(t)

	owner := createTestUser(t, db, "anna")
	createTestItem(t, db, owner.ID, "Toolbox", true)

	items, err := db.SearchItems(context.Background(), "toolbox description")

	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDeleteItem_NotFound(t *testing.T) {
	db := setupTestDB(t)

	err := db.DeleteItem(context.Background(), 12345)

	assert.True(t, apperr.IsNotFound(err))
}

func TestGetComments_JoinsAuthorName(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "boris")
	owner := createTestUser(t, db, "anna")
	item := createTestItem(t, db, owner.ID, "drill", true)

	comment := &models.Comment{Text: "works great", ItemID: item.ID, AuthorID: author.ID}
	require.NoError(t, db.CreateComment(ctx, comment))

	comments, err := db.GetComments(ctx, item.ID)

	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "works great", comments[0].Text)
	assert.Equal(t, "boris", comments[0].AuthorName)
}

func TestCountFinishedApprovedBookings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "anna")
	booker := createTestUser(t, db, "boris")
	item := createTestItem(t, db, owner.ID, "drill", true)

	now := time.Now().UTC()

	// finished and approved: counts
	createTestBooking(t, db, item.ID, booker.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	// finished but rejected: does not count
	createTestBooking(t, db, item.ID, booker.ID, now.Add(-72*time.Hour), now.Add(-60*time.Hour), models.StatusRejected)
	// approved but still running: does not count
	createTestBooking(t, db, item.ID, booker.ID, now.Add(-time.Hour), now.Add(time.Hour), models.StatusApproved)

	count, err := db.CountFinishedApprovedBookings(ctx, item.ID, booker.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = db.CountFinishedApprovedBookings(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestBookingDates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "anna")
	booker := createTestUser(t, db, "boris")
	item := createTestItem(t, db, owner.ID, "drill", true)

	last, err := db.GetLastBookingEnd(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, last)

	next, err := db.GetNextBookingStart(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, next)

	now := time.Now().UTC()
	past := createTestBooking(t, db, item.ID, booker.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	future := createTestBooking(t, db, item.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting)

	last, err = db.GetLastBookingEnd(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.WithinDuration(t, past.End, *last, time.Second)

	next, err = db.GetNextBookingStart(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.WithinDuration(t, future.Start, *next, time.Second)
}
