package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// WeightRepository provides access to body-weight entries.
//
// Duplicate rows per date are possible for past days entered manually;
// "the weight for a date" is the most recently inserted row for it.
type WeightRepository interface {
	// Create inserts a new weight entry.
	Create(ctx context.Context, e *model.WeightEntry) error
	// LatestForDate returns the most recently inserted entry for the date.
	LatestForDate(ctx context.Context, userID model.UserID, date time.Time) (*model.WeightEntry, error)
	// Latest returns the user's most recent entry across all dates.
	Latest(ctx context.Context, userID model.UserID) (*model.WeightEntry, error)
	// GetForRange returns entries with date in [from, to].
	GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.WeightEntry, error)
	// UpdateValue replaces the stored value of an entry.
	UpdateValue(ctx context.Context, userID model.UserID, id uuid.UUID, raw string, value float64) error
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// DaysWithData returns days of the month that have at least one entry.
	DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error)
}
