package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

type fakeWeightRepo struct {
	latest     *model.WeightEntry
	latestErr  error
	forDate    *model.WeightEntry
	forDateErr error
	rangeOut   []model.WeightEntry

	created     []model.WeightEntry
	createErr   error
	updateCalls int
	updatedID   uuid.UUID
	updatedRaw  string
	updatedVal  float64
	updateErr   error
}

var _ repository.WeightRepository = (*fakeWeightRepo)(nil)

func (f *fakeWeightRepo) Create(_ context.Context, e *model.WeightEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *e)
	return nil
}

func (f *fakeWeightRepo) LatestForDate(_ context.Context, _ model.UserID, _ time.Time) (*model.WeightEntry, error) {
	if f.forDateErr != nil {
		return nil, f.forDateErr
	}
	if f.forDate == nil {
		return nil, errs.ErrNotFound
	}
	cp := *f.forDate
	return &cp, nil
}

func (f *fakeWeightRepo) Latest(_ context.Context, _ model.UserID) (*model.WeightEntry, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	if f.latest == nil {
		return nil, errs.ErrNotFound
	}
	cp := *f.latest
	return &cp, nil
}

func (f *fakeWeightRepo) GetForRange(_ context.Context, _ model.UserID, _, _ time.Time) ([]model.WeightEntry, error) {
	return append([]model.WeightEntry(nil), f.rangeOut...), nil
}

func (f *fakeWeightRepo) UpdateValue(_ context.Context, _ model.UserID, id uuid.UUID, raw string, value float64) error {
	f.updateCalls++
	f.updatedID, f.updatedRaw, f.updatedVal = id, raw, value
	return f.updateErr
}

func (f *fakeWeightRepo) Delete(_ context.Context, _ model.UserID, _ uuid.UUID) error { return nil }

func (f *fakeWeightRepo) DaysWithData(_ context.Context, _ model.UserID, _ int, _ time.Month) ([]int, error) {
	return nil, nil
}

func TestWeightService_Save_TodayEditsInPlace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	today := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	existing := &model.WeightEntry{
		ID: uuid.Must(uuid.NewV4()), UserID: "u1", RawValue: "71.0", Value: 71, Date: today,
	}
	repo := &fakeWeightRepo{forDate: existing}
	s := NewWeightService(repo)
	s.now = func() time.Time { return today }

	e, updated, err := s.Save(ctx, "u1", "70,5", 70.5, today)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !updated {
		t.Fatalf("want updated=true on same-day re-entry")
	}
	if repo.updateCalls != 1 || repo.updatedID != existing.ID || repo.updatedVal != 70.5 {
		t.Fatalf("update not applied to existing row: %+v", repo)
	}
	if len(repo.created) != 0 {
		t.Fatalf("same-day re-entry must not insert, got %d inserts", len(repo.created))
	}
	if e.Value != 70.5 || e.RawValue != "70,5" {
		t.Fatalf("returned entry not updated: %+v", e)
	}
}

func TestWeightService_Save_TodayFirstEntryInserts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	today := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeWeightRepo{}
	s := NewWeightService(repo)
	s.now = func() time.Time { return today }

	_, updated, err := s.Save(ctx, "u1", "70.5", 70.5, today)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if updated {
		t.Fatalf("first entry of the day must insert, not update")
	}
	if len(repo.created) != 1 || repo.updateCalls != 0 {
		t.Fatalf("want exactly one insert: created=%d updates=%d", len(repo.created), repo.updateCalls)
	}
}

func TestWeightService_Save_PastDateAlwaysInserts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	today := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	// A row for yesterday already exists; a second manual entry still
	// inserts, leaving duplicates possible on purpose.
	repo := &fakeWeightRepo{forDate: &model.WeightEntry{ID: uuid.Must(uuid.NewV4()), Value: 72}}
	s := NewWeightService(repo)
	s.now = func() time.Time { return today }

	_, updated, err := s.Save(ctx, "u1", "71", 71, yesterday)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if updated || len(repo.created) != 1 || repo.updateCalls != 0 {
		t.Fatalf("past date must insert: updated=%v created=%d updates=%d",
			updated, len(repo.created), repo.updateCalls)
	}
}

func TestWeightService_Save_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWeightService(&fakeWeightRepo{})

	if _, _, err := s.Save(ctx, "", "70", 70, time.Now()); err == nil {
		t.Fatalf("want validation error on empty userID")
	}
	if _, _, err := s.Save(ctx, "u1", "0", 0, time.Now()); err == nil {
		t.Fatalf("want validation error on non-positive weight")
	}
}
