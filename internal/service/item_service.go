package service

import (
	"context"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	store  domain.ItemStore
	users  domain.UserDirectory
	logger *zerolog.Logger
}

func NewItemService(store domain.ItemStore, users domain.UserDirectory, logger *zerolog.Logger) *ItemService {
	return &ItemService{store: store, users: users, logger: logger}
}

func (s *ItemService) CreateItem(ctx context.Context, req models.CreateItemRequest, userID int64) (*models.Item, error) {
	if err := s.users.CheckUserID(ctx, userID); err != nil {
		return nil, err
	}

	available := false
	if req.Available != nil {
		available = *req.Available
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   available,
		OwnerID:     userID,
		RequestID:   req.RequestID,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem applies a partial update; only the owner may change an item.
func (s *ItemService) UpdateItem(ctx context.Context, req models.UpdateItemRequest, userID, itemID int64) (*models.Item, error) {
	if err := s.users.CheckUserID(ctx, userID); err != nil {
		return nil, err
	}

	item, err := s.getOwnedItem(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		item.Name = *req.Name
	}
	if req.Description != nil && *req.Description != "" {
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, itemID, userID int64) error {
	if err := s.users.CheckUserID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.getOwnedItem(ctx, itemID, userID); err != nil {
		return err
	}
	return s.store.DeleteItem(ctx, itemID)
}

// GetItemByID returns the item with its comments. The owner additionally
// sees the end of the last finished booking and the start of the next one.
func (s *ItemService) GetItemByID(ctx context.Context, itemID, callerID int64) (*models.ItemDetails, error) {
	item, err := s.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details, err := s.withComments(ctx, *item)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == callerID {
		if details.LastBooking, err = s.store.GetLastBookingEnd(ctx, itemID); err != nil {
			return nil, err
		}
		if details.NextBooking, err = s.store.GetNextBookingStart(ctx, itemID); err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (s *ItemService) GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.ItemDetails, error) {
	if err := s.users.CheckUserID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.store.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	details := make([]models.ItemDetails, 0, len(items))
	for _, item := range items {
		d, err := s.withComments(ctx, item)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (s *ItemService) SearchItems(ctx context.Context, text string, userID int64) ([]models.Item, error) {
	if err := s.users.CheckUserID(ctx, userID); err != nil {
		return nil, err
	}
	if text == "" {
		return []models.Item{}, nil
	}
	return s.store.SearchItems(ctx, text)
}

// CreateComment allows feedback only from users who completed an approved
// booking of the item.
func (s *ItemService) CreateComment(ctx context.Context, req models.CreateCommentRequest, itemID, userID int64) (*models.Comment, error) {
	count, err := s.store.CountFinishedApprovedBookings(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.Validation("you have not rented this item")
	}

	if _, err := s.store.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:       req.Text,
		ItemID:     itemID,
		AuthorID:   userID,
		AuthorName: user.Name,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ItemService) getOwnedItem(ctx context.Context, itemID, userID int64) (*models.Item, error) {
	item, err := s.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, apperr.Validation("item belongs to another user")
	}
	return item, nil
}

func (s *ItemService) withComments(ctx context.Context, item models.Item) (*models.ItemDetails, error) {
	comments, err := s.store.GetComments(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return &models.ItemDetails{Item: item, Comments: comments}, nil
}
