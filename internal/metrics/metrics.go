// Package metrics computes derived fitness values: calorie estimates,
// daily targets and progress-bar buckets. All functions are pure; when
// source data is missing they fall back to documented defaults instead
// of returning errors.
package metrics

import (
	"math"
	"strings"

	"github.com/avdeev87/fitcoach/internal/model"
)

// Defaults used when no user data is available.
const (
	DefaultMET      = 3.0
	DefaultWeightKg = 70.0
	DefaultWaterMl  = 2000.0

	// BarLength is the number of blocks in a rendered progress bar.
	BarLength = 10
)

// metTable maps exercise names to MET values. Unknown exercises use DefaultMET.
var metTable = map[string]float64{
	"push-ups":   3.5,
	"pull-ups":   8.0,
	"squats":     5.0,
	"lunges":     4.0,
	"plank":      3.3,
	"crunches":   3.8,
	"burpees":    8.0,
	"jumping":    8.8,
	"running":    9.8,
	"walking":    3.5,
	"cycling":    7.5,
	"swimming":   6.0,
	"stretching": 2.3,
	"yoga":       2.5,
}

// MET returns the metabolic equivalent for an exercise name.
func MET(exercise string) float64 {
	if v, ok := metTable[strings.ToLower(strings.TrimSpace(exercise))]; ok {
		return v
	}
	return DefaultMET
}

// WorkoutCalories estimates energy burned for a logged workout:
// MET x weight(kg) x duration(hours). Time-based variants convert the
// count directly; rep-based counts approximate every 100 reps as six
// minutes of work. The result is floored at zero.
func WorkoutCalories(exercise string, variant model.VariantUnit, count int, weightKg float64) float64 {
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}
	var hours float64
	switch variant {
	case model.UnitSeconds:
		hours = float64(count) / 3600
	case model.UnitMinutes:
		hours = float64(count) / 60
	default:
		hours = float64(count) / 100 * 0.1
	}
	cal := MET(exercise) * weightKg * hours
	if cal < 0 {
		return 0
	}
	return cal
}

// WaterTarget returns the recommended daily water intake in ml.
func WaterTarget(weightKg float64) float64 {
	if weightKg <= 0 {
		return DefaultWaterMl
	}
	return weightKg * 32.5
}

// Bucket is the discrete visual tier of a progress bar.
type Bucket string

const (
	BucketNormal  Bucket = "normal"
	BucketWarning Bucket = "warning"
	BucketOver    Bucket = "over"
)

// Progress describes a rendered progress bar: its tier and how many of
// BarLength blocks are filled.
type Progress struct {
	Percent float64
	Filled  int
	Bucket  Bucket
}

// ProgressFor maps current vs. target onto a discrete bucket. The tier
// boundaries sit exactly at 101% and 135%: values above 135% are "over",
// values above 101% are "warning", everything else is "normal".
func ProgressFor(current, target float64) Progress {
	if target <= 0 || current <= 0 {
		return Progress{Percent: 0, Filled: 0, Bucket: BucketNormal}
	}
	percent := current / target * 100

	filled := int(math.Round(current / target * BarLength))
	if filled < 0 {
		filled = 0
	}
	if filled > BarLength {
		filled = BarLength
	}

	b := BucketNormal
	switch {
	case percent > 135:
		b = BucketOver
	case percent > 101:
		b = BucketWarning
	}
	return Progress{Percent: percent, Filled: filled, Bucket: b}
}

// Sex is the biological sex used for BMR calculation.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// Activity and goal labels accepted by KbjuFromTest.
const (
	ActivityLow    = "low"
	ActivityMedium = "medium"
	ActivityHigh   = "high"

	GoalLoss     = "loss"
	GoalGain     = "gain"
	GoalMaintain = "maintain"
)

// KbjuFromTest derives daily nutrition targets from the onboarding
// survey using the Mifflin-St Jeor equation. Protein is 1.8 g and fat
// 0.9 g per kg of body weight; carbs absorb the remaining calories and
// are floored at zero.
func KbjuFromTest(sex Sex, weightKg, heightCm float64, age int, activity, goal string) model.KbjuGoal {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor := 1.2
	switch activity {
	case ActivityMedium:
		factor = 1.4
	case ActivityHigh:
		factor = 1.6
	}
	calories := bmr * factor

	switch goal {
	case GoalLoss:
		calories *= 0.8
	case GoalGain:
		calories *= 1.1
	}

	protein := weightKg * 1.8
	fat := weightKg * 0.9
	carbs := (calories - protein*4 - fat*9) / 4
	if carbs < 0 {
		carbs = 0
	}

	return model.KbjuGoal{
		Calories: calories,
		Protein:  protein,
		Fat:      fat,
		Carbs:    carbs,
		Goal:     goal,
		Activity: activity,
	}
}

// AdjustedTargets raises the calorie budget by the calories burned in
// today's workouts and scales the macro targets by the same ratio, so
// the macro proportions stay constant.
func AdjustedTargets(base model.KbjuGoal, burned float64) model.KbjuGoal {
	if burned <= 0 || base.Calories <= 0 {
		return base
	}
	ratio := (base.Calories + burned) / base.Calories
	out := base
	out.Calories = base.Calories + burned
	out.Protein = base.Protein * ratio
	out.Fat = base.Fat * ratio
	out.Carbs = base.Carbs * ratio
	return out
}
