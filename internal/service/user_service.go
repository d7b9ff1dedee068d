package service

import (
	"context"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	store  domain.UserStore
	logger *zerolog.Logger
}

func NewUserService(store domain.UserStore, logger *zerolog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	user := &models.User{Name: req.Name, Email: req.Email}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update: nil fields keep their old values.
func (s *UserService) UpdateUser(ctx context.Context, req models.UpdateUserRequest, userID int64) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		user.Email = *req.Email
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.store.GetUserByID(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteUser(ctx, id)
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.store.GetAllUsers(ctx)
}

// CheckUserID reports a missing identifier as a validation failure and an
// unknown one as not-found.
func (s *UserService) CheckUserID(ctx context.Context, id int64) error {
	if id == 0 {
		return apperr.Validation("user id is required")
	}
	_, err := s.store.GetUserByID(ctx, id)
	return err
}
