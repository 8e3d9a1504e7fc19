package service

import (
	"context"
	"errors"

	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// AccountService manages user registration and account deletion.
type AccountService interface {
	// Ensure registers the user on first contact; repeated calls are no-ops.
	Ensure(ctx context.Context, userID model.UserID) error
	// Purge irrevocably removes the user and every record they own.
	Purge(ctx context.Context, userID model.UserID) error
}

type AccountServiceImpl struct {
	users repository.UserRepository
}

// NewAccountService constructs AccountService.
func NewAccountService(users repository.UserRepository) *AccountServiceImpl {
	return &AccountServiceImpl{users: users}
}

// Ensure registers the user on first contact.
func (s *AccountServiceImpl) Ensure(ctx context.Context, userID model.UserID) error {
	if userID == "" {
		return errors.New("validation: empty userID")
	}
	return s.users.Ensure(ctx, userID)
}

// Purge removes the user and all owned data in one transaction.
func (s *AccountServiceImpl) Purge(ctx context.Context, userID model.UserID) error {
	if userID == "" {
		return errors.New("validation: empty userID")
	}
	return s.users.Purge(ctx, userID)
}
