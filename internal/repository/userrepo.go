package repository

import (
	"context"

	"github.com/avdeev87/fitcoach/internal/model"
)

// UserRepository tracks known users. Users are created on first contact.
type UserRepository interface {
	// Ensure registers the user if not yet known; idempotent.
	Ensure(ctx context.Context, id model.UserID) error
	// Exists reports whether the user is known.
	Exists(ctx context.Context, id model.UserID) (bool, error)
	// Count returns the number of known users.
	Count(ctx context.Context) (int64, error)
	// Purge removes the user and all of their data across every domain.
	Purge(ctx context.Context, id model.UserID) error
}
