package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// WaterRepository provides access to water intake entries.
type WaterRepository interface {
	// Create inserts a new water entry.
	Create(ctx context.Context, e *model.WaterEntry) error
	// GetForDate returns all entries for the exact day in insertion order.
	GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.WaterEntry, error)
	// TotalForDate sums the day's entries live.
	TotalForDate(ctx context.Context, userID model.UserID, date time.Time) (float64, error)
	// TotalForRange sums entries with date in [from, to].
	TotalForRange(ctx context.Context, userID model.UserID, from, to time.Time) (float64, error)
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// DaysWithData returns days of the month that have at least one entry.
	DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error)
}
