package flows

import (
	"context"
	"fmt"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/service"
)

const skipOption = "skip"

// measurementSteps are asked in order; every one may be skipped.
var measurementSteps = []struct {
	Key   string
	Label string
}{
	{"chest", "Chest, cm"},
	{"waist", "Waist, cm"},
	{"hips", "Hips, cm"},
	{"biceps", "Biceps, cm"},
	{"thigh", "Thigh, cm"},
}

// addMeasurementFlow asks the five measurements in sequence. The record
// keeps only the answered fields; answering nothing saves nothing.
func addMeasurementFlow(svc service.MeasurementService) *dialog.Flow {
	states := make(map[dialog.StateID]dialog.State, len(measurementSteps))
	for i, step := range measurementSteps {
		states[dialog.StateID(step.Key)] = measurementState(svc, i)
	}
	return &dialog.Flow{
		ID:     AddMeasurement,
		Entry:  dialog.StateID(measurementSteps[0].Key),
		States: states,
	}
}

func measurementState(svc service.MeasurementService, idx int) dialog.State {
	step := measurementSteps[idx]
	last := idx == len(measurementSteps)-1
	return dialog.State{
		Prompt: func(fc dialog.Context) dialog.Prompt {
			return dialog.Prompt{
				Text:    fmt.Sprintf("%s (or skip):", step.Label),
				Options: []string{skipOption},
			}
		},
		Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
			set := dialog.Context{}
			if in.Text != skipOption {
				v, _, err := input.PositiveDecimal(in.Text)
				if err != nil {
					return dialog.Invalid(err.Error())
				}
				set[step.Key] = v
			}
			if !last {
				return dialog.Result{Set: set, Next: dialog.StateID(measurementSteps[idx+1].Key)}
			}

			merged := make(dialog.Context, len(fc)+len(set))
			for k, v := range fc {
				merged[k] = v
			}
			for k, v := range set {
				merged[k] = v
			}
			fields := measurementFields(merged)
			if fields == (service.MeasurementFields{}) {
				return dialog.Result{Done: true, Reply: "Nothing to save."}
			}
			if _, err := svc.Add(ctx, userOf(fc), dateOf(fc), fields); err != nil {
				return saveFailed()
			}
			return dialog.Result{Done: true, Reply: "Measurements saved."}
		},
	}
}

func measurementFields(fc dialog.Context) service.MeasurementFields {
	get := func(key string) *float64 {
		if v, ok := fc.Float(key); ok {
			return &v
		}
		return nil
	}
	return service.MeasurementFields{
		Chest:  get("chest"),
		Waist:  get("waist"),
		Hips:   get("hips"),
		Biceps: get("biceps"),
		Thigh:  get("thigh"),
	}
}
