package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// MealRepository provides access to meal entries. The product list blob
// and the four totals are always written together in a single statement.
type MealRepository interface {
	// Create inserts a new meal entry.
	Create(ctx context.Context, e *model.MealEntry) error
	// GetByID loads one entry owned by the user.
	GetByID(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.MealEntry, error)
	// GetForDate returns all entries for the exact day in insertion order.
	GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.MealEntry, error)
	// GetForRange returns entries with date in [from, to].
	GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.MealEntry, error)
	// Replace overwrites the product list and all four totals at once.
	Replace(ctx context.Context, e *model.MealEntry) error
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// DaysWithData returns days of the month that have at least one entry.
	DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error)
}
