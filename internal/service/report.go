package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/estimator"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// SummaryUnavailable is shown when the narrative summarizer fails; the
// structured report is still returned.
const SummaryUnavailable = "The summary service is unavailable right now, here is the raw report."

// PeriodReport is the structured picture of one date range.
type PeriodReport struct {
	From, To time.Time

	WeightStart *float64
	WeightEnd   *float64

	WorkoutCount  int
	BurnedKcal    float64
	WorkoutTotals map[string]int // "exercise (variant)" -> summed count

	MealDays   int
	AvgPerDay  model.DayTotals
	TotalMeals int

	WaterTotalMl float64

	MoodCounts     map[string]int
	ProcedureCount int
}

// ReportService builds period reports and narrative summaries.
type ReportService interface {
	// Build assembles the structured report for [from, to].
	Build(ctx context.Context, userID model.UserID, from, to time.Time) (*PeriodReport, error)
	// Render formats a report as plain text.
	Render(r *PeriodReport) string
	// Summarize narrates a report. On summarizer failure the rendered
	// report is returned prefixed with SummaryUnavailable.
	Summarize(ctx context.Context, r *PeriodReport) string
}

type ReportServiceImpl struct {
	workouts   repository.WorkoutRepository
	weights    repository.WeightRepository
	meals      repository.MealRepository
	water      repository.WaterRepository
	wellbeing  repository.WellbeingRepository
	procedures repository.ProcedureRepository
	summarizer estimator.Summarizer
	log        *zap.Logger
}

// NewReportService constructs ReportService. The summarizer may be nil;
// Summarize then always falls back to the rendered report.
func NewReportService(
	workouts repository.WorkoutRepository,
	weights repository.WeightRepository,
	meals repository.MealRepository,
	water repository.WaterRepository,
	wellbeing repository.WellbeingRepository,
	procedures repository.ProcedureRepository,
	summarizer estimator.Summarizer,
	log *zap.Logger,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		workouts:   workouts,
		weights:    weights,
		meals:      meals,
		water:      water,
		wellbeing:  wellbeing,
		procedures: procedures,
		summarizer: summarizer,
		log:        log,
	}
}

// Build assembles the structured report for [from, to].
func (s *ReportServiceImpl) Build(ctx context.Context, userID model.UserID, from, to time.Time) (*PeriodReport, error) {
	if userID == "" {
		return nil, errors.New("validation: empty userID")
	}
	if to.Before(from) {
		return nil, errors.New("validation: range end before start")
	}
	r := &PeriodReport{
		From:          from,
		To:            to,
		WorkoutTotals: make(map[string]int),
		MoodCounts:    make(map[string]int),
	}

	weights, err := s.weights.GetForRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if len(weights) > 0 {
		start, end := weights[0].Value, weights[len(weights)-1].Value
		r.WeightStart, r.WeightEnd = &start, &end
	}

	workouts, err := s.workouts.GetForRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	r.WorkoutCount = len(workouts)
	for _, w := range workouts {
		r.BurnedKcal += w.Calories
		r.WorkoutTotals[fmt.Sprintf("%s (%s)", w.Exercise, w.Variant)] += w.Count
	}

	meals, err := s.meals.GetForRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	r.TotalMeals = len(meals)
	mealDays := make(map[string]bool)
	var sum model.DayTotals
	for _, m := range meals {
		mealDays[m.Date.Format("2006-01-02")] = true
		sum.Calories += m.Calories
		sum.Protein += m.Protein
		sum.Fat += m.Fat
		sum.Carbs += m.Carbs
	}
	r.MealDays = len(mealDays)
	if r.MealDays > 0 {
		n := float64(r.MealDays)
		r.AvgPerDay = model.DayTotals{
			Calories: sum.Calories / n,
			Protein:  sum.Protein / n,
			Fat:      sum.Fat / n,
			Carbs:    sum.Carbs / n,
		}
	}

	if r.WaterTotalMl, err = s.water.TotalForRange(ctx, userID, from, to); err != nil {
		return nil, err
	}

	moods, err := s.wellbeing.GetForRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	for _, e := range moods {
		if e.Kind == model.WellbeingQuick {
			r.MoodCounts[e.Mood]++
		}
	}

	procs, err := s.procedures.GetForRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	r.ProcedureCount = len(procs)

	return r, nil
}

// Render formats a report as plain text, one concern per line.
func (s *ReportServiceImpl) Render(r *PeriodReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report %s - %s\n", r.From.Format("02.01.2006"), r.To.Format("02.01.2006"))

	switch {
	case r.WeightStart != nil && r.WeightEnd != nil:
		fmt.Fprintf(&b, "Weight: %.1f -> %.1f kg (%+.1f)\n", *r.WeightStart, *r.WeightEnd, *r.WeightEnd-*r.WeightStart)
	default:
		b.WriteString("Weight: no entries\n")
	}

	fmt.Fprintf(&b, "Workouts: %d sets, ~%.0f kcal burned\n", r.WorkoutCount, r.BurnedKcal)
	for _, name := range sortedKeys(r.WorkoutTotals) {
		fmt.Fprintf(&b, "  %s: %d\n", name, r.WorkoutTotals[name])
	}

	if r.MealDays > 0 {
		fmt.Fprintf(&b, "Meals: %d over %d days, avg %.0f kcal (P %.0f / F %.0f / C %.0f)\n",
			r.TotalMeals, r.MealDays, r.AvgPerDay.Calories, r.AvgPerDay.Protein, r.AvgPerDay.Fat, r.AvgPerDay.Carbs)
	} else {
		b.WriteString("Meals: no entries\n")
	}

	fmt.Fprintf(&b, "Water: %.0f ml total\n", r.WaterTotalMl)

	if len(r.MoodCounts) > 0 {
		parts := make([]string, 0, len(r.MoodCounts))
		for _, mood := range sortedKeys(r.MoodCounts) {
			parts = append(parts, fmt.Sprintf("%s x%d", mood, r.MoodCounts[mood]))
		}
		fmt.Fprintf(&b, "Mood: %s\n", strings.Join(parts, ", "))
	}
	if r.ProcedureCount > 0 {
		fmt.Fprintf(&b, "Procedures: %d\n", r.ProcedureCount)
	}
	return b.String()
}

// Summarize narrates the report, falling back to the rendered text when
// the summarizer is missing or unavailable.
func (s *ReportServiceImpl) Summarize(ctx context.Context, r *PeriodReport) string {
	rendered := s.Render(r)
	if s.summarizer == nil {
		return rendered
	}
	text, err := s.summarizer.Summarize(ctx, rendered)
	if err != nil {
		if !errors.Is(err, errs.ErrUnavailable) {
			s.log.Warn("summarizer failed", zap.Error(err))
		}
		return SummaryUnavailable + "\n\n" + rendered
	}
	return text
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
