package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// MeasurementRepository provides access to body-measurement entries.
type MeasurementRepository interface {
	// Create inserts a new measurement entry.
	Create(ctx context.Context, e *model.MeasurementEntry) error
	// LatestForDate returns the most recently inserted entry for the date.
	LatestForDate(ctx context.Context, userID model.UserID, date time.Time) (*model.MeasurementEntry, error)
	// GetForRange returns entries with date in [from, to].
	GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.MeasurementEntry, error)
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// DaysWithData returns days of the month that have at least one entry.
	DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error)
}
