package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// Weekday labels accepted in supplement schedules.
var WeekdayLabels = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// SupplementService manages supplements and intake history.
type SupplementService interface {
	// Create stores a new supplement with a normalized schedule.
	Create(ctx context.Context, userID model.UserID, name string, times, days []string, duration string, notify bool) (*model.Supplement, error)
	// UpdateSchedule replaces times, days, duration and the notify flag.
	UpdateSchedule(ctx context.Context, userID model.UserID, id uuid.UUID, times, days []string, duration string, notify bool) (*model.Supplement, error)
	// List returns the user's supplements.
	List(ctx context.Context, userID model.UserID) ([]model.Supplement, error)
	// Delete removes a supplement with its history.
	Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error
	// LogIntake appends an intake record.
	LogIntake(ctx context.Context, userID model.UserID, supplementID uuid.UUID, takenAt time.Time, amount string) (*model.SupplementEntry, error)
	// EditIntake replaces an intake record: the old row is deleted and
	// a fresh one inserted, keeping ordering invariants simple.
	EditIntake(ctx context.Context, userID model.UserID, entryID uuid.UUID, takenAt time.Time, amount string) (*model.SupplementEntry, error)
	// DeleteIntake removes one intake record.
	DeleteIntake(ctx context.Context, userID model.UserID, entryID uuid.UUID) error
}

type SupplementServiceImpl struct {
	repo repository.SupplementRepository
}

// NewSupplementService constructs SupplementService.
func NewSupplementService(repo repository.SupplementRepository) *SupplementServiceImpl {
	return &SupplementServiceImpl{repo: repo}
}

// Create validates and normalizes the schedule, then stores it.
func (s *SupplementServiceImpl) Create(ctx context.Context, userID model.UserID, name string, times, days []string, duration string, notify bool) (*model.Supplement, error) {
	if userID == "" || name == "" {
		return nil, errors.New("validation: empty userID/name")
	}
	normTimes, normDays, err := normalizeSchedule(times, days)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	if duration == "" {
		duration = "ongoing"
	}
	supp := &model.Supplement{
		ID:       id,
		UserID:   userID,
		Name:     name,
		Times:    normTimes,
		Days:     normDays,
		Duration: duration,
		Notify:   notify,
	}
	if err := s.repo.Create(ctx, supp); err != nil {
		return nil, err
	}
	return supp, nil
}

// UpdateSchedule replaces the schedule of an existing supplement.
func (s *SupplementServiceImpl) UpdateSchedule(ctx context.Context, userID model.UserID, id uuid.UUID, times, days []string, duration string, notify bool) (*model.Supplement, error) {
	supp, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	normTimes, normDays, err := normalizeSchedule(times, days)
	if err != nil {
		return nil, err
	}
	supp.Times = normTimes
	supp.Days = normDays
	if duration != "" {
		supp.Duration = duration
	}
	supp.Notify = notify
	if err := s.repo.Update(ctx, supp); err != nil {
		return nil, err
	}
	return supp, nil
}

// List returns the user's supplements.
func (s *SupplementServiceImpl) List(ctx context.Context, userID model.UserID) ([]model.Supplement, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes a supplement with its history.
func (s *SupplementServiceImpl) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// LogIntake appends an intake record after checking ownership.
func (s *SupplementServiceImpl) LogIntake(ctx context.Context, userID model.UserID, supplementID uuid.UUID, takenAt time.Time, amount string) (*model.SupplementEntry, error) {
	if _, err := s.repo.GetByID(ctx, userID, supplementID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.SupplementEntry{
		ID:           id,
		UserID:       userID,
		SupplementID: supplementID,
		TakenAt:      takenAt,
		Amount:       amount,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// EditIntake deletes the old record and inserts a replacement.
func (s *SupplementServiceImpl) EditIntake(ctx context.Context, userID model.UserID, entryID uuid.UUID, takenAt time.Time, amount string) (*model.SupplementEntry, error) {
	old, err := s.repo.GetEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteEntry(ctx, userID, entryID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.SupplementEntry{
		ID:           id,
		UserID:       userID,
		SupplementID: old.SupplementID,
		TakenAt:      takenAt,
		Amount:       amount,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteIntake removes one intake record.
func (s *SupplementServiceImpl) DeleteIntake(ctx context.Context, userID model.UserID, entryID uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, userID, entryID)
}

// normalizeSchedule validates times and weekdays; times become unique
// and sorted ascending.
func normalizeSchedule(times, days []string) ([]string, []string, error) {
	if len(times) == 0 {
		return nil, nil, errors.New("validation: at least one time required")
	}
	for _, t := range times {
		if _, err := input.TimeOfDay(t); err != nil {
			return nil, nil, errors.New("validation: bad time " + t)
		}
	}
	for _, d := range days {
		if _, err := input.Choice(d, WeekdayLabels); err != nil {
			return nil, nil, errors.New("validation: bad weekday " + d)
		}
	}
	if len(days) == 0 {
		days = append([]string(nil), WeekdayLabels...)
	}
	return input.SortTimes(times), days, nil
}
