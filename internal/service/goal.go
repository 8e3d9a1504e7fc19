package service

import (
	"context"
	"errors"
	"time"

	"github.com/avdeev87/fitcoach/internal/metrics"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/repository"
)

// GoalService manages daily nutrition targets derived from the
// onboarding survey.
type GoalService interface {
	// SaveFromTest computes targets with Mifflin-St Jeor and upserts them.
	SaveFromTest(ctx context.Context, userID model.UserID, sex metrics.Sex, weightKg, heightCm float64, age int, activity, goal string) (*model.KbjuGoal, error)
	// Set upserts explicit targets, bypassing the survey.
	Set(ctx context.Context, userID model.UserID, calories, protein, fat, carbs float64) (*model.KbjuGoal, error)
	// Get loads the stored targets.
	Get(ctx context.Context, userID model.UserID) (*model.KbjuGoal, error)
	// EffectiveTargets returns the day's targets raised by workout burn.
	EffectiveTargets(ctx context.Context, userID model.UserID, date time.Time) (*model.KbjuGoal, error)
}

type GoalServiceImpl struct {
	goals    repository.GoalRepository
	workouts WorkoutService
	now      func() time.Time
}

// NewGoalService constructs GoalService.
func NewGoalService(goals repository.GoalRepository, workouts WorkoutService) *GoalServiceImpl {
	return &GoalServiceImpl{goals: goals, workouts: workouts, now: time.Now}
}

// SaveFromTest validates the survey answers, computes targets and
// upserts the single per-user goal row.
func (s *GoalServiceImpl) SaveFromTest(ctx context.Context, userID model.UserID, sex metrics.Sex, weightKg, heightCm float64, age int, activity, goal string) (*model.KbjuGoal, error) {
	if userID == "" {
		return nil, errors.New("validation: empty userID")
	}
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return nil, errors.New("validation: weight, height and age must be positive")
	}
	if sex != metrics.SexFemale && sex != metrics.SexMale {
		return nil, errors.New("validation: unknown sex")
	}
	switch activity {
	case metrics.ActivityLow, metrics.ActivityMedium, metrics.ActivityHigh:
	default:
		return nil, errors.New("validation: unknown activity level")
	}
	switch goal {
	case metrics.GoalLoss, metrics.GoalGain, metrics.GoalMaintain:
	default:
		return nil, errors.New("validation: unknown goal")
	}

	g := metrics.KbjuFromTest(sex, weightKg, heightCm, age, activity, goal)
	g.UserID = userID
	g.UpdatedAt = s.now()
	if err := s.goals.Upsert(ctx, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Set upserts explicit targets.
func (s *GoalServiceImpl) Set(ctx context.Context, userID model.UserID, calories, protein, fat, carbs float64) (*model.KbjuGoal, error) {
	if userID == "" {
		return nil, errors.New("validation: empty userID")
	}
	if calories <= 0 || protein < 0 || fat < 0 || carbs < 0 {
		return nil, errors.New("validation: targets must be positive")
	}
	g := &model.KbjuGoal{
		UserID:    userID,
		Calories:  calories,
		Protein:   protein,
		Fat:       fat,
		Carbs:     carbs,
		UpdatedAt: s.now(),
	}
	if err := s.goals.Upsert(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get loads the stored targets.
func (s *GoalServiceImpl) Get(ctx context.Context, userID model.UserID) (*model.KbjuGoal, error) {
	return s.goals.Get(ctx, userID)
}

// EffectiveTargets adds the day's workout burn to the calorie budget and
// scales macros proportionally.
func (s *GoalServiceImpl) EffectiveTargets(ctx context.Context, userID model.UserID, date time.Time) (*model.KbjuGoal, error) {
	base, err := s.goals.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	burned, err := s.workouts.BurnedForDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	adjusted := metrics.AdjustedTargets(*base, burned)
	return &adjusted, nil
}
