package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/conorfennell/myeng/internal/domain"
	"github.com/conorfennell/myeng/internal/storage"
)

// UserService registers, looks up and removes users.
type UserService struct {
	store  UserStore
	logger *zap.Logger
}

// NewUserService creates a UserService backed by store.
func NewUserService(store UserStore, logger *zap.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// List returns every registered user in storage order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.ListUsers(ctx)
}

// Get returns ErrUserNotFound when the id is unknown.
func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.store.FindUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// Create registers a user. An already registered id yields ErrUserExists
// and the stored profile is left as it was.
func (s *UserService) Create(ctx context.Context, u domain.User) error {
	exists, err := s.store.UserExists(ctx, u.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	// The insert is conditional too, so a registration racing this one
	// still cannot overwrite the row.
	inserted, err := s.store.InsertUser(ctx, u)
	if err != nil {
		return err
	}
	if !inserted {
		return ErrUserExists
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return nil
}

// Delete removes a user. It returns ErrUserNotFound when the id is unknown.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}

	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
