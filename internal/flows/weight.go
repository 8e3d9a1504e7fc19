package flows

import (
	"context"
	"fmt"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/service"
)

// addWeightFlow is a single step: re-entering weight on the same day
// edits today's record instead of stacking duplicates.
func addWeightFlow(svc service.WeightService) *dialog.Flow {
	return &dialog.Flow{
		ID:    AddWeight,
		Entry: "value",
		States: map[dialog.StateID]dialog.State{
			"value": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Your weight, kg:"}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, raw, err := input.PositiveDecimal(in.Text)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					e, updated, err := svc.Save(ctx, userOf(fc), raw, v, dateOf(fc))
					if err != nil {
						return saveFailed()
					}
					if updated {
						return dialog.Result{Done: true, Reply: fmt.Sprintf("Updated today's weight to %s kg.", e.RawValue)}
					}
					return dialog.Result{Done: true, Reply: fmt.Sprintf("Saved weight %s kg.", e.RawValue)}
				},
			},
		},
	}
}
