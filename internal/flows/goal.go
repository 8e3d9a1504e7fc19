package flows

import (
	"context"
	"fmt"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/metrics"
	"github.com/avdeev87/fitcoach/internal/service"
)

var (
	sexOptions      = []string{string(metrics.SexFemale), string(metrics.SexMale)}
	activityOptions = []string{metrics.ActivityLow, metrics.ActivityMedium, metrics.ActivityHigh}
	goalOptions     = []string{metrics.GoalLoss, metrics.GoalMaintain, metrics.GoalGain}
)

// kbjuTestFlow runs the onboarding survey and saves the derived daily
// targets in a single terminal write.
func kbjuTestFlow(svc service.GoalService) *dialog.Flow {
	return &dialog.Flow{
		ID:    KbjuTest,
		Entry: "sex",
		States: map[dialog.StateID]dialog.State{
			"sex": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Your sex:", Options: sexOptions, Menu: "kbju-test"}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, err := input.Choice(in.Text, sexOptions)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					return dialog.Result{Set: dialog.Context{"sex": v}, Next: "weight"}
				},
			},
			"weight": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Your weight, kg:"}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, _, err := input.PositiveDecimal(in.Text)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					return dialog.Result{Set: dialog.Context{"weight": v}, Next: "height"}
				},
			},
			"height": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Your height, cm:"}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, _, err := input.PositiveDecimal(in.Text)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					return dialog.Result{Set: dialog.Context{"height": v}, Next: "age"}
				},
			},
			"age": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Your age:"}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, err := input.PositiveInt(in.Text)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					return dialog.Result{Set: dialog.Context{"age": v}, Next: "activity"}
				},
			},
			"activity": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Activity level:", Options: activityOptions}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, err := input.Choice(in.Text, activityOptions)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					return dialog.Result{Set: dialog.Context{"activity": v}, Next: "goal"}
				},
			},
			"goal": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Your goal:", Options: goalOptions}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					goal, err := input.Choice(in.Text, goalOptions)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					sex, _ := fc.String("sex")
					weight, _ := fc.Float("weight")
					height, _ := fc.Float("height")
					age, _ := fc.Int("age")
					activity, _ := fc.String("activity")
					g, err := svc.SaveFromTest(ctx, userOf(fc), metrics.Sex(sex), weight, height, age, activity, goal)
					if err != nil {
						return saveFailed()
					}
					return dialog.Result{
						Done: true,
						Reply: fmt.Sprintf("Your daily targets: %.0f kcal, protein %.0f g, fat %.0f g, carbs %.0f g.",
							g.Calories, g.Protein, g.Fat, g.Carbs),
					}
				},
			},
		},
	}
}
