package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/metrics"
	"github.com/avdeev87/fitcoach/internal/service"
)

var waterPresets = []string{"250", "350", "500"}

// addWaterFlow: one amount step, replying with the day's progress bar.
func addWaterFlow(svc service.WaterService) *dialog.Flow {
	return &dialog.Flow{
		ID:    AddWater,
		Entry: "amount",
		States: map[dialog.StateID]dialog.State{
			"amount": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "How much water, ml?", Options: waterPresets}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, _, err := input.PositiveDecimal(in.Text)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					if _, err := svc.Add(ctx, userOf(fc), v, dateOf(fc)); err != nil {
						return saveFailed()
					}
					p, err := svc.ProgressForDay(ctx, userOf(fc), dateOf(fc))
					if err != nil {
						return dialog.Result{Done: true, Reply: fmt.Sprintf("Added %.0f ml.", v)}
					}
					return dialog.Result{
						Done:  true,
						Reply: fmt.Sprintf("%s %.0f / %.0f ml", RenderBar(p.Bar), p.TotalMl, p.TargetMl),
					}
				},
			},
		},
	}
}

// RenderBar draws a textual progress bar of metrics.BarLength blocks.
func RenderBar(p metrics.Progress) string {
	return strings.Repeat("▓", p.Filled) + strings.Repeat("░", metrics.BarLength-p.Filled)
}
