package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/metrics"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// WaterProgress is the day's intake against the recommended target.
type WaterProgress struct {
	TotalMl  float64
	TargetMl float64
	Bar      metrics.Progress
}

// WaterService logs water intake and reports daily progress.
type WaterService interface {
	// Add appends one drink in ml.
	Add(ctx context.Context, userID model.UserID, amountMl float64, date time.Time) (*model.WaterEntry, error)
	// ProgressForDay sums the day live and compares it to the
	// weight-derived recommendation.
	ProgressForDay(ctx context.Context, userID model.UserID, date time.Time) (WaterProgress, error)
	// Delete removes one entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
}

type WaterServiceImpl struct {
	water   repository.WaterRepository
	weights repository.WeightRepository
	now     func() time.Time
}

// NewWaterService constructs WaterService.
func NewWaterService(water repository.WaterRepository, weights repository.WeightRepository) *WaterServiceImpl {
	return &WaterServiceImpl{water: water, weights: weights, now: time.Now}
}

// Add appends one drink.
func (s *WaterServiceImpl) Add(ctx context.Context, userID model.UserID, amountMl float64, date time.Time) (*model.WaterEntry, error) {
	if userID == "" {
		return nil, errors.New("validation: empty userID")
	}
	if amountMl <= 0 {
		return nil, errors.New("validation: amount must be positive")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.WaterEntry{
		ID:       id,
		UserID:   userID,
		Amount:   amountMl,
		Date:     date,
		LoggedAt: s.now(),
	}
	if err := s.water.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ProgressForDay compares the live daily sum to the recommendation.
func (s *WaterServiceImpl) ProgressForDay(ctx context.Context, userID model.UserID, date time.Time) (WaterProgress, error) {
	total, err := s.water.TotalForDate(ctx, userID, date)
	if err != nil {
		return WaterProgress{}, err
	}
	target := metrics.DefaultWaterMl
	if w, err := s.weights.Latest(ctx, userID); err == nil {
		target = metrics.WaterTarget(w.Value)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return WaterProgress{}, err
	}
	return WaterProgress{
		TotalMl:  total,
		TargetMl: target,
		Bar:      metrics.ProgressFor(total, target),
	}, nil
}

// Delete removes one entry.
func (s *WaterServiceImpl) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return s.water.Delete(ctx, userID, id)
}
