package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// SupplementRepository provides access to supplements and their intake history.
type SupplementRepository interface {
	// Create inserts a new supplement.
	Create(ctx context.Context, s *model.Supplement) error
	// GetByID loads one supplement owned by the user.
	GetByID(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.Supplement, error)
	// ListByUser returns all of the user's supplements ordered by name.
	ListByUser(ctx context.Context, userID model.UserID) ([]model.Supplement, error)
	// Update replaces name, schedule and notification settings.
	Update(ctx context.Context, s *model.Supplement) error
	// Delete removes a supplement and its intake history.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// ListNotifiable returns every supplement with notifications enabled,
	// across all users. Used by the reminder scheduler.
	ListNotifiable(ctx context.Context) ([]model.Supplement, error)

	// CreateEntry appends an intake record.
	CreateEntry(ctx context.Context, e *model.SupplementEntry) error
	// GetEntry loads one intake record owned by the user.
	GetEntry(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.SupplementEntry, error)
	// EntriesForDate returns intake records for the exact day in insertion order.
	EntriesForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.SupplementEntry, error)
	// DeleteEntry removes one intake record.
	DeleteEntry(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// EntryDaysWithData returns days of the month that have intake records.
	EntryDaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error)
}
