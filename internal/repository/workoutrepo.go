// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// WorkoutRepository provides CRUD and calendar access for workout entries.
type WorkoutRepository interface {
	// Create inserts a new workout entry.
	Create(ctx context.Context, e *model.WorkoutEntry) error
	// GetByID loads one entry owned by the user.
	GetByID(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.WorkoutEntry, error)
	// GetForDate returns all entries for the exact day in insertion order.
	GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.WorkoutEntry, error)
	// GetForRange returns entries with date in [from, to].
	GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.WorkoutEntry, error)
	// UpdateCount replaces count and the precomputed calorie estimate.
	UpdateCount(ctx context.Context, userID model.UserID, id uuid.UUID, count int, calories float64) error
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// DaysWithData returns days of the month that have at least one entry.
	DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error)
}
