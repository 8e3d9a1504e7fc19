// Package service contains application services coordinating
// repositories, derived metrics and external estimators.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/metrics"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// WorkoutTotal is one (exercise, variant) aggregate for a day.
type WorkoutTotal struct {
	Exercise string
	Variant  model.VariantUnit
	Count    int
	Calories float64
}

// WorkoutService logs workouts and aggregates daily totals.
type WorkoutService interface {
	// Add persists one workout entry with a calorie estimate attached.
	Add(ctx context.Context, userID model.UserID, exercise string, variant model.VariantUnit, count int, date time.Time) (*model.WorkoutEntry, error)
	// UpdateCount replaces an entry's count and re-estimates calories.
	UpdateCount(ctx context.Context, userID model.UserID, id uuid.UUID, count int) (*model.WorkoutEntry, error)
	// Delete removes an entry.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// TotalsForDay aggregates the day's entries grouped by (exercise, variant).
	TotalsForDay(ctx context.Context, userID model.UserID, date time.Time) ([]WorkoutTotal, error)
	// BurnedForDay sums the day's estimated calories.
	BurnedForDay(ctx context.Context, userID model.UserID, date time.Time) (float64, error)
}

type WorkoutServiceImpl struct {
	workouts repository.WorkoutRepository
	weights  repository.WeightRepository
}

// NewWorkoutService constructs WorkoutService.
func NewWorkoutService(workouts repository.WorkoutRepository, weights repository.WeightRepository) *WorkoutServiceImpl {
	return &WorkoutServiceImpl{workouts: workouts, weights: weights}
}

// Add validates input, estimates calories from the user's last known
// weight (falling back to the default) and persists the entry.
func (s *WorkoutServiceImpl) Add(ctx context.Context, userID model.UserID, exercise string, variant model.VariantUnit, count int, date time.Time) (*model.WorkoutEntry, error) {
	if userID == "" || exercise == "" {
		return nil, errors.New("validation: empty userID/exercise")
	}
	if count < 1 {
		return nil, errors.New("validation: count must be >= 1")
	}

	weight := s.lastWeight(ctx, userID)
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.WorkoutEntry{
		ID:       id,
		UserID:   userID,
		Exercise: exercise,
		Variant:  variant,
		Count:    count,
		Date:     date,
		Calories: metrics.WorkoutCalories(exercise, variant, count, weight),
	}
	if err := s.workouts.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	return e, nil
}

// UpdateCount replaces count and recomputes the calorie estimate.
func (s *WorkoutServiceImpl) UpdateCount(ctx context.Context, userID model.UserID, id uuid.UUID, count int) (*model.WorkoutEntry, error) {
	if count < 1 {
		return nil, errors.New("validation: count must be >= 1")
	}
	e, err := s.workouts.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	e.Count = count
	e.Calories = metrics.WorkoutCalories(e.Exercise, e.Variant, count, s.lastWeight(ctx, userID))
	if err := s.workouts.UpdateCount(ctx, userID, id, e.Count, e.Calories); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an entry.
func (s *WorkoutServiceImpl) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return s.workouts.Delete(ctx, userID, id)
}

// TotalsForDay aggregates entries grouped by (exercise, variant),
// computed at read time; entries are never merged in storage.
func (s *WorkoutServiceImpl) TotalsForDay(ctx context.Context, userID model.UserID, date time.Time) ([]WorkoutTotal, error) {
	entries, err := s.workouts.GetForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	type key struct {
		exercise string
		variant  model.VariantUnit
	}
	agg := make(map[key]*WorkoutTotal)
	for _, e := range entries {
		k := key{e.Exercise, e.Variant}
		t, ok := agg[k]
		if !ok {
			t = &WorkoutTotal{Exercise: e.Exercise, Variant: e.Variant}
			agg[k] = t
		}
		t.Count += e.Count
		t.Calories += e.Calories
	}
	out := make([]WorkoutTotal, 0, len(agg))
	for _, t := range agg {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Exercise != out[j].Exercise {
			return out[i].Exercise < out[j].Exercise
		}
		return out[i].Variant < out[j].Variant
	})
	return out, nil
}

// BurnedForDay sums the day's calorie estimates.
func (s *WorkoutServiceImpl) BurnedForDay(ctx context.Context, userID model.UserID, date time.Time) (float64, error) {
	entries, err := s.workouts.GetForDate(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range entries {
		total += e.Calories
	}
	return total, nil
}

// lastWeight returns the most recent weight or the documented default.
func (s *WorkoutServiceImpl) lastWeight(ctx context.Context, userID model.UserID) float64 {
	w, err := s.weights.Latest(ctx, userID)
	if err != nil || w == nil {
		return metrics.DefaultWeightKg
	}
	return w.Value
}
