package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// MeasurementFields carries the optional measurement values of one
// submission; nil fields were not specified and stay nil in storage.
type MeasurementFields struct {
	Chest  *float64
	Waist  *float64
	Hips   *float64
	Biceps *float64
	Thigh  *float64
}

// MeasurementService logs body measurements.
type MeasurementService interface {
	// Add stores a new record carrying only the specified fields;
	// records from different submissions are never merged.
	Add(ctx context.Context, userID model.UserID, date time.Time, f MeasurementFields) (*model.MeasurementEntry, error)
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
}

type MeasurementServiceImpl struct {
	repo repository.MeasurementRepository
}

// NewMeasurementService constructs MeasurementService.
func NewMeasurementService(repo repository.MeasurementRepository) *MeasurementServiceImpl {
	return &MeasurementServiceImpl{repo: repo}
}

// Add stores a new record; at least one field must be specified.
func (s *MeasurementServiceImpl) Add(ctx context.Context, userID model.UserID, date time.Time, f MeasurementFields) (*model.MeasurementEntry, error) {
	if userID == "" {
		return nil, errors.New("validation: empty userID")
	}
	if f.Chest == nil && f.Waist == nil && f.Hips == nil && f.Biceps == nil && f.Thigh == nil {
		return nil, errors.New("validation: at least one measurement required")
	}
	for _, v := range []*float64{f.Chest, f.Waist, f.Hips, f.Biceps, f.Thigh} {
		if v != nil && *v <= 0 {
			return nil, errors.New("validation: measurements must be positive")
		}
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.MeasurementEntry{
		ID:     id,
		UserID: userID,
		Date:   date,
		Chest:  f.Chest,
		Waist:  f.Waist,
		Hips:   f.Hips,
		Biceps: f.Biceps,
		Thigh:  f.Thigh,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes one entry.
func (s *MeasurementServiceImpl) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
