package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// ProcedureRepository provides access to wellness procedure entries.
type ProcedureRepository interface {
	// Create inserts a new procedure entry.
	Create(ctx context.Context, e *model.ProcedureEntry) error
	// GetForDate returns all entries for the exact day in insertion order.
	GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.ProcedureEntry, error)
	// GetForRange returns entries with date in [from, to].
	GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.ProcedureEntry, error)
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// DaysWithData returns days of the month that have at least one entry.
	DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error)
}
