package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// WellbeingRepository provides access to wellbeing check-ins. Quick
// surveys and free-text comments share one calendar surface.
type WellbeingRepository interface {
	// Create inserts a new wellbeing entry.
	Create(ctx context.Context, e *model.WellbeingEntry) error
	// GetForDate returns all entries for the exact day in insertion order.
	GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.WellbeingEntry, error)
	// GetForRange returns entries with date in [from, to].
	GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.WellbeingEntry, error)
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// DaysWithData returns days of the month that have at least one entry.
	DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error)
}
