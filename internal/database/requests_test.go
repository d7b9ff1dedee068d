package database

import (
	"context"
	"testing"

	"shareit/internal/apperr"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequests_FilterByRequestor(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	anna := createTestUser(t, db, "anna")
	boris := createTestUser(t, db, "boris")

	mine := &models.ItemRequest{Description: "need a drill", RequestorID: anna.ID}
	require.NoError(t, db.CreateRequest(ctx, mine))
	theirs := &models.ItemRequest{Description: "need a saw", RequestorID: boris.ID}
	require.NoError(t, db.CreateRequest(ctx, theirs))

	own, err := db.GetRequestsByRequestor(ctx, anna.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)

	others, err := db.GetRequestsExcludingRequestor(ctx, anna.ID)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, theirs.ID, others[0].ID)
}

func TestGetRequestByID_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRequestByID(context.Background(), 12345)

	assert.True(t, apperr.IsNotFound(err))
}

func TestGetItemAnswers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	anna := createTestUser(t, db, "anna")
	boris := createTestUser(t, db, "boris")

	request := &models.ItemRequest{Description: "need a drill", RequestorID: anna.ID}
	require.NoError(t, db.CreateRequest(ctx, request))

	answer := &models.Item{Name: "drill", Description: "cordless", Available: true, OwnerID: boris.ID, RequestID: request.ID}
	require.NoError(t, db.CreateItem(ctx, answer))
	createTestItem(t, db, boris.ID, "unrelated", true)

	answers, err := db.GetItemAnswers(ctx, request.ID)

	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "drill", answers[0].Name)
	assert.Equal(t, boris.ID, answers[0].OwnerID)
}
