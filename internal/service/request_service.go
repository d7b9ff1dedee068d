package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	store  domain.RequestStore
	users  domain.UserDirectory
	logger *zerolog.Logger
}

func NewRequestService(store domain.RequestStore, users domain.UserDirectory, logger *zerolog.Logger) *RequestService {
	return &RequestService{store: store, users: users, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, req models.CreateRequestRequest, userID int64) (*models.ItemRequest, error) {
	if err := s.users.CheckUserID(ctx, userID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{Description: req.Description, RequestorID: userID}
	if err := s.store.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) GetRequestsByUser(ctx context.Context, userID int64) ([]models.RequestView, error) {
	if err := s.users.CheckUserID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.store.GetRequestsByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

func (s *RequestService) GetRequestsFromOthers(ctx context.Context, userID int64) ([]models.RequestView, error) {
	if err := s.users.CheckUserID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.store.GetRequestsExcludingRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

func (s *RequestService) GetRequestByID(ctx context.Context, requestID int64) (*models.RequestView, error) {
	request, err := s.store.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	answers, err := s.store.GetItemAnswers(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []models.ItemAnswer{}
	}
	return &models.RequestView{ItemRequest: *request, Items: answers}, nil
}

func (s *RequestService) withAnswers(ctx context.Context, requests []models.ItemRequest) ([]models.RequestView, error) {
	views := make([]models.RequestView, 0, len(requests))
	for _, request := range requests {
		answers, err := s.store.GetItemAnswers(ctx, request.ID)
		if err != nil {
			return nil, err
		}
		if answers == nil {
			answers = []models.ItemAnswer{}
		}
		views = append(views, models.RequestView{ItemRequest: request, Items: answers})
	}
	return views, nil
}
