package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

type fakeSupplementRepo struct {
	byID    *model.Supplement
	byIDErr error
	listOut []model.Supplement

	created *model.Supplement
	updated *model.Supplement

	entryByID      *model.SupplementEntry
	createdEntries []model.SupplementEntry
	deletedEntries []uuid.UUID
}

var _ repository.SupplementRepository = (*fakeSupplementRepo)(nil)

func (f *fakeSupplementRepo) Create(_ context.Context, s *model.Supplement) error {
	cp := *s
	f.created = &cp
	return nil
}

func (f *fakeSupplementRepo) GetByID(_ context.Context, _ model.UserID, _ uuid.UUID) (*model.Supplement, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	if f.byID == nil {
		return nil, errs.ErrNotFound
	}
	cp := *f.byID
	return &cp, nil
}

func (f *fakeSupplementRepo) ListByUser(_ context.Context, _ model.UserID) ([]model.Supplement, error) {
	return append([]model.Supplement(nil), f.listOut...), nil
}

func (f *fakeSupplementRepo) Update(_ context.Context, s *model.Supplement) error {
	cp := *s
	f.updated = &cp
	return nil
}

func (f *fakeSupplementRepo) Delete(_ context.Context, _ model.UserID, _ uuid.UUID) error {
	return nil
}

func (f *fakeSupplementRepo) ListNotifiable(_ context.Context) ([]model.Supplement, error) {
	return append([]model.Supplement(nil), f.listOut...), nil
}

func (f *fakeSupplementRepo) CreateEntry(_ context.Context, e *model.SupplementEntry) error {
	f.createdEntries = append(f.createdEntries, *e)
	return nil
}

func (f *fakeSupplementRepo) GetEntry(_ context.Context, _ model.UserID, _ uuid.UUID) (*model.SupplementEntry, error) {
	if f.entryByID == nil {
		return nil, errs.ErrNotFound
	}
	cp := *f.entryByID
	return &cp, nil
}

func (f *fakeSupplementRepo) EntriesForDate(_ context.Context, _ model.UserID, _ time.Time) ([]model.SupplementEntry, error) {
	return nil, nil
}

func (f *fakeSupplementRepo) DeleteEntry(_ context.Context, _ model.UserID, id uuid.UUID) error {
	f.deletedEntries = append(f.deletedEntries, id)
	return nil
}

func (f *fakeSupplementRepo) EntryDaysWithData(_ context.Context, _ model.UserID, _ int, _ time.Month) ([]int, error) {
	return nil, nil
}

func TestSupplementService_Create_NormalizesSchedule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeSupplementRepo{}
	s := NewSupplementService(repo)

	supp, err := s.Create(ctx, "u1", "omega-3", []string{"21:00", "08:00", "08:00"}, nil, "", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !reflect.DeepEqual(supp.Times, []string{"08:00", "21:00"}) {
		t.Fatalf("times must be unique and sorted, got %v", supp.Times)
	}
	if !reflect.DeepEqual(supp.Days, WeekdayLabels) {
		t.Fatalf("empty days must mean every day, got %v", supp.Days)
	}
	if supp.Duration != "ongoing" {
		t.Fatalf("empty duration defaults to ongoing, got %q", supp.Duration)
	}
	if repo.created == nil || !repo.created.Notify {
		t.Fatalf("supplement not persisted: %+v", repo.created)
	}
}

func TestSupplementService_Create_BadSchedule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeSupplementRepo{}
	s := NewSupplementService(repo)

	if _, err := s.Create(ctx, "u1", "zinc", []string{"25:00"}, nil, "", false); err == nil {
		t.Fatalf("want error on bad time")
	}
	if _, err := s.Create(ctx, "u1", "zinc", []string{"08:00"}, []string{"someday"}, "", false); err == nil {
		t.Fatalf("want error on bad weekday")
	}
	if _, err := s.Create(ctx, "u1", "zinc", nil, nil, "", false); err == nil {
		t.Fatalf("want error on empty times")
	}
	if repo.created != nil {
		t.Fatalf("nothing must be stored on validation failure")
	}
}

func TestSupplementService_LogIntake_ChecksOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeSupplementRepo{}
	s := NewSupplementService(repo)

	if _, err := s.LogIntake(ctx, "u1", uuid.Must(uuid.NewV4()), time.Now(), ""); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for foreign supplement, got %v", err)
	}
	if len(repo.createdEntries) != 0 {
		t.Fatalf("intake must not be stored without ownership")
	}

	suppID := uuid.Must(uuid.NewV4())
	repo.byID = &model.Supplement{ID: suppID, UserID: "u1", Name: "omega-3"}
	e, err := s.LogIntake(ctx, "u1", suppID, time.Now(), "2 capsules")
	if err != nil {
		t.Fatalf("LogIntake: %v", err)
	}
	if e.SupplementID != suppID || e.Amount != "2 capsules" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestSupplementService_EditIntake_DeleteThenInsert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	suppID := uuid.Must(uuid.NewV4())
	oldID := uuid.Must(uuid.NewV4())
	repo := &fakeSupplementRepo{entryByID: &model.SupplementEntry{
		ID: oldID, UserID: "u1", SupplementID: suppID,
		TakenAt: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
	}}
	s := NewSupplementService(repo)

	newTime := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	e, err := s.EditIntake(ctx, "u1", oldID, newTime, "1 capsule")
	if err != nil {
		t.Fatalf("EditIntake: %v", err)
	}
	if len(repo.deletedEntries) != 1 || repo.deletedEntries[0] != oldID {
		t.Fatalf("old intake must be deleted: %v", repo.deletedEntries)
	}
	if len(repo.createdEntries) != 1 {
		t.Fatalf("replacement must be inserted")
	}
	if e.ID == oldID {
		t.Fatalf("replacement must get a fresh id")
	}
	if e.SupplementID != suppID || !e.TakenAt.Equal(newTime) {
		t.Fatalf("replacement fields wrong: %+v", e)
	}
}
