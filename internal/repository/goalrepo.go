package repository

import (
	"context"

	"github.com/avdeev87/fitcoach/internal/model"
)

// GoalRepository stores the per-user daily nutrition targets.
type GoalRepository interface {
	// Upsert creates or replaces the user's goal.
	Upsert(ctx context.Context, g *model.KbjuGoal) error
	// Get loads the user's goal, errs.ErrNotFound if none is set.
	Get(ctx context.Context, userID model.UserID) (*model.KbjuGoal, error)
	// Delete removes the user's goal.
	Delete(ctx context.Context, userID model.UserID) error
}
