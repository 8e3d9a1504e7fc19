package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// WeightService logs body weight. Saving for today edits the existing
// record in place; saving for a past date always inserts, so duplicate
// rows for past days entered twice remain possible on purpose.
type WeightService interface {
	// Save stores the weight for a date, applying edit-in-place
	// semantics only when the date is today. Reports whether an
	// existing record was updated.
	Save(ctx context.Context, userID model.UserID, raw string, value float64, date time.Time) (entry *model.WeightEntry, updated bool, err error)
	// Latest returns the most recent entry across all dates.
	Latest(ctx context.Context, userID model.UserID) (*model.WeightEntry, error)
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
}

type WeightServiceImpl struct {
	weights repository.WeightRepository
	now     func() time.Time
}

// NewWeightService constructs WeightService.
func NewWeightService(weights repository.WeightRepository) *WeightServiceImpl {
	return &WeightServiceImpl{weights: weights, now: time.Now}
}

// Save applies the today-only upsert shortcut.
func (s *WeightServiceImpl) Save(ctx context.Context, userID model.UserID, raw string, value float64, date time.Time) (*model.WeightEntry, bool, error) {
	if userID == "" {
		return nil, false, errors.New("validation: empty userID")
	}
	if value <= 0 {
		return nil, false, errors.New("validation: weight must be positive")
	}

	if sameDay(date, s.now()) {
		existing, err := s.weights.LatestForDate(ctx, userID, date)
		switch {
		case err == nil:
			if err := s.weights.UpdateValue(ctx, userID, existing.ID, raw, value); err != nil {
				return nil, false, err
			}
			existing.RawValue = raw
			existing.Value = value
			return existing, true, nil
		case errors.Is(err, errs.ErrNotFound):
			// fall through to insert
		default:
			return nil, false, err
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, false, err
	}
	e := &model.WeightEntry{ID: id, UserID: userID, RawValue: raw, Value: value, Date: date}
	if err := s.weights.Create(ctx, e); err != nil {
		return nil, false, err
	}
	return e, false, nil
}

// Latest returns the most recent entry across all dates.
func (s *WeightServiceImpl) Latest(ctx context.Context, userID model.UserID) (*model.WeightEntry, error) {
	return s.weights.Latest(ctx, userID)
}

// Delete removes one entry.
func (s *WeightServiceImpl) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return s.weights.Delete(ctx, userID, id)
}

// sameDay reports whether two timestamps fall on one calendar day.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
