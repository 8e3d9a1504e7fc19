package flows

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/service"
)

// KeyWorkoutID selects the workout record a count edit applies to.
const KeyWorkoutID = "workout_id"

type exerciseDef struct {
	Name    string
	Variant model.VariantUnit
}

// Exercise catalog shown by the add-workout flow, grouped by category.
var (
	workoutCategories = []string{"bodyweight", "cardio", "recovery"}

	exerciseCatalog = map[string][]exerciseDef{
		"bodyweight": {
			{"Push-ups", model.UnitReps},
			{"Pull-ups", model.UnitReps},
			{"Squats", model.UnitReps},
			{"Lunges", model.UnitReps},
			{"Crunches", model.UnitReps},
			{"Burpees", model.UnitReps},
			{"Plank", model.UnitSeconds},
		},
		"cardio": {
			{"Running", model.UnitMinutes},
			{"Walking", model.UnitSteps},
			{"Cycling", model.UnitMinutes},
			{"Swimming", model.UnitMinutes},
			{"Jumping", model.UnitJumps},
		},
		"recovery": {
			{"Stretching", model.UnitMinutes},
			{"Yoga", model.UnitMinutes},
		},
	}
)

func exerciseNames(category string) []string {
	defs := exerciseCatalog[category]
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Name)
	}
	return out
}

func variantFor(category, exercise string) model.VariantUnit {
	for _, d := range exerciseCatalog[category] {
		if d.Name == exercise {
			return d.Variant
		}
	}
	return model.UnitReps
}

func countQuestion(variant model.VariantUnit) string {
	switch variant {
	case model.UnitSeconds:
		return "How many seconds?"
	case model.UnitMinutes:
		return "How many minutes?"
	case model.UnitSteps:
		return "How many steps?"
	case model.UnitJumps:
		return "How many jumps?"
	default:
		return "How many reps?"
	}
}

// addWorkoutFlow: category -> exercise -> count -> save with a calorie
// estimate attached.
func addWorkoutFlow(svc service.WorkoutService) *dialog.Flow {
	return &dialog.Flow{
		ID:    AddWorkout,
		Entry: "category",
		States: map[dialog.StateID]dialog.State{
			"category": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{
						Text:    "What kind of workout?",
						Options: workoutCategories,
						Menu:    "workout-category",
					}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, err := input.Choice(in.Text, workoutCategories)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					return dialog.Result{Set: dialog.Context{"category": v}, Next: "exercise"}
				},
			},
			"exercise": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					category, _ := fc.String("category")
					return dialog.Prompt{
						Text:    "Which exercise?",
						Options: exerciseNames(category),
						Menu:    "workout-exercise",
					}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					category, _ := fc.String("category")
					v, err := input.Choice(in.Text, exerciseNames(category))
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					return dialog.Result{
						Set:  dialog.Context{"exercise": v, "variant": string(variantFor(category, v))},
						Next: "count",
					}
				},
			},
			"count": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					variant, _ := fc.String("variant")
					return dialog.Prompt{Text: countQuestion(model.VariantUnit(variant))}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					n, err := input.PositiveInt(in.Text)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					exercise, _ := fc.String("exercise")
					variant, _ := fc.String("variant")
					e, err := svc.Add(ctx, userOf(fc), exercise, model.VariantUnit(variant), n, dateOf(fc))
					if err != nil {
						return saveFailed()
					}
					return dialog.Result{
						Done:  true,
						Reply: fmt.Sprintf("Logged %s: %d %s, ~%.1f kcal burned.", e.Exercise, e.Count, variant, e.Calories),
					}
				},
			},
		},
	}
}

// editWorkoutFlow updates the count of a record picked from a calendar
// day view; the calorie estimate is recomputed by the service.
func editWorkoutFlow(svc service.WorkoutService) *dialog.Flow {
	return &dialog.Flow{
		ID:    EditWorkout,
		Entry: "count",
		States: map[dialog.StateID]dialog.State{
			"count": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "New count:"}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					n, err := input.PositiveInt(in.Text)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					idStr, _ := fc.String(KeyWorkoutID)
					id, err := uuid.FromString(idStr)
					if err != nil {
						return saveFailed()
					}
					e, err := svc.UpdateCount(ctx, userOf(fc), id, n)
					if err != nil {
						return saveFailed()
					}
					return dialog.Result{
						Done:  true,
						Reply: fmt.Sprintf("Updated %s: %d, ~%.1f kcal burned.", e.Exercise, e.Count, e.Calories),
					}
				},
			},
		},
	}
}
