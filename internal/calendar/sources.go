package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// WorkoutSource adapts the workout repository to a calendar day source.
type WorkoutSource struct{ Repo repository.WorkoutRepository }

func (s WorkoutSource) Days(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	return s.Repo.DaysWithData(ctx, userID, year, month)
}

func (s WorkoutSource) Records(ctx context.Context, userID model.UserID, date time.Time) ([]Record, error) {
	entries, err := s.Repo.GetForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, Record{
			ID:     e.ID,
			Title:  e.Exercise,
			Detail: fmt.Sprintf("%d %s, %.1f kcal", e.Count, e.Variant, e.Calories),
		})
	}
	return out, nil
}

// WeightSource shows only the most recently inserted record per day,
// even when duplicates exist; edit and delete act on that record.
type WeightSource struct{ Repo repository.WeightRepository }

func (s WeightSource) Days(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	return s.Repo.DaysWithData(ctx, userID, year, month)
}

func (s WeightSource) Records(ctx context.Context, userID model.UserID, date time.Time) ([]Record, error) {
	e, err := s.Repo.LatestForDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []Record{{ID: e.ID, Title: "weight", Detail: fmt.Sprintf("%.1f kg", e.Value)}}, nil
}

// MeasurementSource shows only the most recently inserted record per day.
type MeasurementSource struct{ Repo repository.MeasurementRepository }

func (s MeasurementSource) Days(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	return s.Repo.DaysWithData(ctx, userID, year, month)
}

func (s MeasurementSource) Records(ctx context.Context, userID model.UserID, date time.Time) ([]Record, error) {
	e, err := s.Repo.LatestForDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var parts []string
	add := func(label string, v *float64) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s %.1f cm", label, *v))
		}
	}
	add("chest", e.Chest)
	add("waist", e.Waist)
	add("hips", e.Hips)
	add("biceps", e.Biceps)
	add("thigh", e.Thigh)
	return []Record{{ID: e.ID, Title: "measurements", Detail: strings.Join(parts, ", ")}}, nil
}

// MealSource adapts the meal repository to a calendar day source.
type MealSource struct{ Repo repository.MealRepository }

func (s MealSource) Days(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	return s.Repo.DaysWithData(ctx, userID, year, month)
}

func (s MealSource) Records(ctx context.Context, userID model.UserID, date time.Time) ([]Record, error) {
	entries, err := s.Repo.GetForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		title := e.RawText
		if title == "" {
			title = "meal"
		}
		out = append(out, Record{
			ID:     e.ID,
			Title:  title,
			Detail: fmt.Sprintf("%.0f kcal, P %.1f / F %.1f / C %.1f", e.Calories, e.Protein, e.Fat, e.Carbs),
		})
	}
	return out, nil
}

// SupplementSource surfaces intake history on the calendar.
type SupplementSource struct{ Repo repository.SupplementRepository }

func (s SupplementSource) Days(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	return s.Repo.EntryDaysWithData(ctx, userID, year, month)
}

func (s SupplementSource) Records(ctx context.Context, userID model.UserID, date time.Time) ([]Record, error) {
	entries, err := s.Repo.EntriesForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		supp, err := s.Repo.GetByID(ctx, userID, e.SupplementID)
		name := "supplement"
		if err == nil {
			name = supp.Name
		}
		detail := e.TakenAt.Format("15:04")
		if e.Amount != "" {
			detail += ", " + e.Amount
		}
		out = append(out, Record{ID: e.ID, Title: name, Detail: detail})
	}
	return out, nil
}

// WaterSource adapts the water repository to a calendar day source.
type WaterSource struct{ Repo repository.WaterRepository }

func (s WaterSource) Days(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	return s.Repo.DaysWithData(ctx, userID, year, month)
}

func (s WaterSource) Records(ctx context.Context, userID model.UserID, date time.Time) ([]Record, error) {
	entries, err := s.Repo.GetForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, Record{
			ID:     e.ID,
			Title:  "water",
			Detail: fmt.Sprintf("%.0f ml at %s", e.Amount, e.LoggedAt.Format("15:04")),
		})
	}
	return out, nil
}

// ProcedureSource adapts the procedure repository to a calendar day source.
type ProcedureSource struct{ Repo repository.ProcedureRepository }

func (s ProcedureSource) Days(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	return s.Repo.DaysWithData(ctx, userID, year, month)
}

func (s ProcedureSource) Records(ctx context.Context, userID model.UserID, date time.Time) ([]Record, error) {
	entries, err := s.Repo.GetForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, Record{ID: e.ID, Title: e.Name, Detail: e.Notes})
	}
	return out, nil
}

// WellbeingSource renders quick surveys and comments on one surface.
type WellbeingSource struct{ Repo repository.WellbeingRepository }

func (s WellbeingSource) Days(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	return s.Repo.DaysWithData(ctx, userID, year, month)
}

func (s WellbeingSource) Records(ctx context.Context, userID model.UserID, date time.Time) ([]Record, error) {
	entries, err := s.Repo.GetForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case model.WellbeingComment:
			out = append(out, Record{ID: e.ID, Title: "note", Detail: e.Comment})
		default:
			detail := fmt.Sprintf("mood: %s, influence: %s", e.Mood, e.Influence)
			if e.Difficulty != "" {
				detail += ", difficulty: " + e.Difficulty
			}
			out = append(out, Record{ID: e.ID, Title: "check-in", Detail: detail})
		}
	}
	return out, nil
}
