package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

type fakeWellbeingRepo struct {
	created  []model.WellbeingEntry
	forDate  []model.WellbeingEntry
	rangeOut []model.WellbeingEntry
}

var _ repository.WellbeingRepository = (*fakeWellbeingRepo)(nil)

func (f *fakeWellbeingRepo) Create(_ context.Context, e *model.WellbeingEntry) error {
	f.created = append(f.created, *e)
	return nil
}

func (f *fakeWellbeingRepo) GetForDate(_ context.Context, _ model.UserID, _ time.Time) ([]model.WellbeingEntry, error) {
	return append([]model.WellbeingEntry(nil), f.forDate...), nil
}

func (f *fakeWellbeingRepo) GetForRange(_ context.Context, _ model.UserID, _, _ time.Time) ([]model.WellbeingEntry, error) {
	return append([]model.WellbeingEntry(nil), f.rangeOut...), nil
}

func (f *fakeWellbeingRepo) Delete(_ context.Context, _ model.UserID, _ uuid.UUID) error {
	return nil
}

func (f *fakeWellbeingRepo) DaysWithData(_ context.Context, _ model.UserID, _ int, _ time.Month) ([]int, error) {
	return nil, nil
}

func TestWellbeingService_AddQuick_DifficultyRules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeWellbeingRepo{}
	s := NewWellbeingService(repo)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	// "so-so" and "bad" require the third answer.
	if _, err := s.AddQuick(ctx, "u1", day, "so-so", "sleep", ""); err == nil {
		t.Fatalf("want error: so-so without difficulty")
	}
	if _, err := s.AddQuick(ctx, "u1", day, "bad", "stress", ""); err == nil {
		t.Fatalf("want error: bad without difficulty")
	}
	// The other moods must not carry one.
	if _, err := s.AddQuick(ctx, "u1", day, "great", "sleep", "morning"); err == nil {
		t.Fatalf("want error: great with difficulty")
	}
	if len(repo.created) != 0 {
		t.Fatalf("invalid surveys must not be stored")
	}

	e, err := s.AddQuick(ctx, "u1", day, "so-so", "sleep", "morning")
	if err != nil {
		t.Fatalf("AddQuick: %v", err)
	}
	if e.Kind != model.WellbeingQuick || e.Difficulty != "morning" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	e, err = s.AddQuick(ctx, "u1", day, "great", "sleep", "")
	if err != nil {
		t.Fatalf("AddQuick: %v", err)
	}
	if e.Difficulty != "" {
		t.Fatalf("good mood must store two answers only: %+v", e)
	}
	if len(repo.created) != 2 {
		t.Fatalf("want 2 stored surveys, got %d", len(repo.created))
	}
}

func TestWellbeingService_AddComment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeWellbeingRepo{}
	s := NewWellbeingService(repo)

	if _, err := s.AddComment(ctx, "u1", time.Now(), ""); err == nil {
		t.Fatalf("want validation error on empty comment")
	}

	e, err := s.AddComment(ctx, "u1", time.Now(), "slept badly, heavy legs")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if e.Kind != model.WellbeingComment || e.Comment == "" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}
