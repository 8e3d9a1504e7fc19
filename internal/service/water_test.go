package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/metrics"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

type fakeWaterRepo struct {
	created      []model.WaterEntry
	forDate      []model.WaterEntry
	dayTotal     float64
	rangeTotal   float64
	deletedCount int
}

var _ repository.WaterRepository = (*fakeWaterRepo)(nil)

func (f *fakeWaterRepo) Create(_ context.Context, e *model.WaterEntry) error {
	f.created = append(f.created, *e)
	return nil
}

func (f *fakeWaterRepo) GetForDate(_ context.Context, _ model.UserID, _ time.Time) ([]model.WaterEntry, error) {
	return append([]model.WaterEntry(nil), f.forDate...), nil
}

func (f *fakeWaterRepo) TotalForDate(_ context.Context, _ model.UserID, _ time.Time) (float64, error) {
	return f.dayTotal, nil
}

func (f *fakeWaterRepo) TotalForRange(_ context.Context, _ model.UserID, _, _ time.Time) (float64, error) {
	return f.rangeTotal, nil
}

func (f *fakeWaterRepo) Delete(_ context.Context, _ model.UserID, _ uuid.UUID) error {
	f.deletedCount++
	return nil
}

func (f *fakeWaterRepo) DaysWithData(_ context.Context, _ model.UserID, _ int, _ time.Month) ([]int, error) {
	return nil, nil
}

func TestWaterService_ProgressForDay_TargetFromWeight(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	water := &fakeWaterRepo{dayTotal: 1300}
	weights := &fakeWeightRepo{latest: &model.WeightEntry{Value: 80}}
	s := NewWaterService(water, weights)

	p, err := s.ProgressForDay(ctx, "u1", time.Now())
	if err != nil {
		t.Fatalf("ProgressForDay: %v", err)
	}
	if p.TargetMl != 2600 {
		t.Fatalf("80 kg target want 2600 ml, got %v", p.TargetMl)
	}
	if p.TotalMl != 1300 || p.Bar.Filled != 5 || p.Bar.Bucket != metrics.BucketNormal {
		t.Fatalf("unexpected progress: %+v", p)
	}
}

func TestWaterService_ProgressForDay_DefaultTarget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	water := &fakeWaterRepo{dayTotal: 2500}
	s := NewWaterService(water, &fakeWeightRepo{})

	p, err := s.ProgressForDay(ctx, "u1", time.Now())
	if err != nil {
		t.Fatalf("ProgressForDay: %v", err)
	}
	if p.TargetMl != metrics.DefaultWaterMl {
		t.Fatalf("no weight on record must mean the default target, got %v", p.TargetMl)
	}
	if p.Bar.Bucket != metrics.BucketWarning {
		t.Fatalf("125%% of target must land in warning, got %v", p.Bar.Bucket)
	}
}

func TestWaterService_Add_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	water := &fakeWaterRepo{}
	s := NewWaterService(water, &fakeWeightRepo{})

	if _, err := s.Add(ctx, "u1", 0, time.Now()); err == nil {
		t.Fatalf("want validation error on zero amount")
	}
	if _, err := s.Add(ctx, "", 250, time.Now()); err == nil {
		t.Fatalf("want validation error on empty userID")
	}

	fixed := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	e, err := s.Add(ctx, "u1", 250, fixed)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if e.Amount != 250 || !e.LoggedAt.Equal(fixed) {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if len(water.created) != 1 {
		t.Fatalf("want one insert")
	}
}
