package flows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/service"
)

// Context keys seeded by the router for supplement flows.
const (
	// KeySupplementID selects the supplement a schedule edit applies to.
	KeySupplementID = "supplement_id"
	// KeySupplementNames and KeySupplementIDs carry the user's
	// supplements (parallel slices) into the intake flow's menu.
	KeySupplementNames = "supplement_names"
	KeySupplementIDs   = "supplement_ids"
	// KeyIntakeID selects the intake record an edit applies to.
	KeyIntakeID = "intake_id"
)

const (
	everyDayOption = "every day"
	ongoingOption  = "ongoing"
	nowOption      = "now"
)

// addSupplementFlow: name -> times -> days -> duration -> notify -> save.
func addSupplementFlow(svc service.SupplementService) *dialog.Flow {
	states := map[dialog.StateID]dialog.State{
		"name": {
			Prompt: func(fc dialog.Context) dialog.Prompt {
				return dialog.Prompt{Text: "Supplement name:"}
			},
			Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
				name, err := input.Name(in.Text)
				if err != nil {
					return dialog.Invalid(err.Error())
				}
				return dialog.Result{Set: dialog.Context{"name": name}, Next: "times"}
			},
		},
	}
	addScheduleStates(states, func(ctx context.Context, fc dialog.Context, notify bool) dialog.Result {
		name, _ := fc.String("name")
		supp, err := svc.Create(ctx, userOf(fc), name, scheduleTimes(fc), scheduleDays(fc), scheduleDuration(fc), notify)
		if err != nil {
			return saveFailed()
		}
		return dialog.Result{
			Done:  true,
			Reply: fmt.Sprintf("Added %s at %s.", supp.Name, strings.Join(supp.Times, ", ")),
		}
	})
	return &dialog.Flow{ID: AddSupplement, Entry: "name", States: states}
}

// editSupplementFlow picks one of the user's supplements and reuses the
// schedule steps against it. The router seeds the supplement menu.
func editSupplementFlow(svc service.SupplementService) *dialog.Flow {
	states := map[dialog.StateID]dialog.State{
		"which": pickSupplementState("times"),
	}
	addScheduleStates(states, func(ctx context.Context, fc dialog.Context, notify bool) dialog.Result {
		idStr, _ := fc.String(KeySupplementID)
		id, err := uuid.FromString(idStr)
		if err != nil {
			return saveFailed()
		}
		supp, err := svc.UpdateSchedule(ctx, userOf(fc), id, scheduleTimes(fc), scheduleDays(fc), scheduleDuration(fc), notify)
		if err != nil {
			return saveFailed()
		}
		return dialog.Result{
			Done:  true,
			Reply: fmt.Sprintf("Updated %s: %s.", supp.Name, strings.Join(supp.Times, ", ")),
		}
	})
	return &dialog.Flow{ID: EditSupplement, Entry: "which", States: states}
}

// pickSupplementState matches the answer against the router-seeded
// supplement names and stores the paired id.
func pickSupplementState(next dialog.StateID) dialog.State {
	return dialog.State{
		Prompt: func(fc dialog.Context) dialog.Prompt {
			names, _ := fc[KeySupplementNames].([]string)
			return dialog.Prompt{Text: "Which supplement?", Options: names, Menu: "supplement-which"}
		},
		Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
			names, _ := fc[KeySupplementNames].([]string)
			ids, _ := fc[KeySupplementIDs].([]string)
			name, err := input.Choice(in.Text, names)
			if err != nil {
				return dialog.Invalid(err.Error())
			}
			for i, n := range names {
				if n == name && i < len(ids) {
					return dialog.Result{Set: dialog.Context{KeySupplementID: ids[i]}, Next: next}
				}
			}
			return dialog.Invalid("pick one of the menu options")
		},
	}
}

// addScheduleStates installs the times -> days -> duration -> notify
// steps; the terminal decision is supplied by the caller.
func addScheduleStates(states map[dialog.StateID]dialog.State, finish func(ctx context.Context, fc dialog.Context, notify bool) dialog.Result) {
	states["times"] = dialog.State{
		Prompt: func(fc dialog.Context) dialog.Prompt {
			return dialog.Prompt{Text: "Intake times, comma separated (e.g. 08:00, 21:00):"}
		},
		Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
			parts := strings.Split(in.Text, ",")
			times := make([]string, 0, len(parts))
			for _, p := range parts {
				t, err := input.TimeOfDay(p)
				if err != nil {
					return dialog.Invalid(err.Error())
				}
				times = append(times, t)
			}
			if len(times) == 0 {
				return dialog.Invalid("enter at least one time")
			}
			return dialog.Result{Set: dialog.Context{"times": input.SortTimes(times)}, Next: "days"}
		},
	}
	states["days"] = dialog.State{
		Prompt: func(fc dialog.Context) dialog.Prompt {
			return dialog.Prompt{
				Text:    "On which days? Pick \"every day\" or list weekdays, comma separated.",
				Options: append([]string{everyDayOption}, service.WeekdayLabels...),
			}
		},
		Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
			if strings.TrimSpace(in.Text) == everyDayOption {
				return dialog.Result{Set: dialog.Context{"days": []string(nil)}, Next: "duration"}
			}
			parts := strings.Split(in.Text, ",")
			days := make([]string, 0, len(parts))
			for _, p := range parts {
				d, err := input.Choice(strings.TrimSpace(p), service.WeekdayLabels)
				if err != nil {
					return dialog.Invalid(err.Error())
				}
				days = append(days, d)
			}
			return dialog.Result{Set: dialog.Context{"days": days}, Next: "duration"}
		},
	}
	states["duration"] = dialog.State{
		Prompt: func(fc dialog.Context) dialog.Prompt {
			return dialog.Prompt{
				Text:    "For how long? Pick \"ongoing\" or enter a number of days.",
				Options: []string{ongoingOption},
			}
		},
		Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
			v := strings.TrimSpace(in.Text)
			if v != ongoingOption {
				if _, err := input.PositiveInt(v); err != nil {
					return dialog.Invalid(err.Error())
				}
			}
			return dialog.Result{Set: dialog.Context{"duration": v}, Next: "notify"}
		},
	}
	states["notify"] = dialog.State{
		Prompt: func(fc dialog.Context) dialog.Prompt {
			return dialog.Prompt{Text: "Remind you at those times?", Options: []string{"yes", "no"}}
		},
		Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
			v, err := input.Choice(in.Text, []string{"yes", "no"})
			if err != nil {
				return dialog.Invalid(err.Error())
			}
			return finish(ctx, fc, v == "yes")
		},
	}
}

func scheduleTimes(fc dialog.Context) []string {
	v, _ := fc["times"].([]string)
	return v
}

func scheduleDays(fc dialog.Context) []string {
	v, _ := fc["days"].([]string)
	return v
}

func scheduleDuration(fc dialog.Context) string {
	v, _ := fc.String("duration")
	return v
}

// logIntakeFlow: pick a supplement -> time -> optional amount -> save.
// The router seeds the supplement menu from the user's list.
func logIntakeFlow(svc service.SupplementService) *dialog.Flow {
	return &dialog.Flow{
		ID:    LogIntake,
		Entry: "which",
		States: map[dialog.StateID]dialog.State{
			"which": pickSupplementState("when"),
			"when":  intakeWhenState(),
			"amount": intakeAmountState(func(ctx context.Context, fc dialog.Context, amount string) dialog.Result {
				idStr, _ := fc.String(KeySupplementID)
				id, err := uuid.FromString(idStr)
				if err != nil {
					return saveFailed()
				}
				if _, err := svc.LogIntake(ctx, userOf(fc), id, takenAt(fc), amount); err != nil {
					return saveFailed()
				}
				return dialog.Result{Done: true, Reply: "Intake logged."}
			}),
		},
	}
}

// editIntakeFlow re-asks the time and amount for an intake record
// picked from a calendar day view.
func editIntakeFlow(svc service.SupplementService) *dialog.Flow {
	return &dialog.Flow{
		ID:    EditIntake,
		Entry: "when",
		States: map[dialog.StateID]dialog.State{
			"when": intakeWhenState(),
			"amount": intakeAmountState(func(ctx context.Context, fc dialog.Context, amount string) dialog.Result {
				idStr, _ := fc.String(KeyIntakeID)
				id, err := uuid.FromString(idStr)
				if err != nil {
					return saveFailed()
				}
				if _, err := svc.EditIntake(ctx, userOf(fc), id, takenAt(fc), amount); err != nil {
					return saveFailed()
				}
				return dialog.Result{Done: true, Reply: "Intake updated."}
			}),
		},
	}
}

func intakeWhenState() dialog.State {
	return dialog.State{
		Prompt: func(fc dialog.Context) dialog.Prompt {
			return dialog.Prompt{Text: "When did you take it? (HH:MM or \"now\")", Options: []string{nowOption}}
		},
		Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
			v := strings.TrimSpace(in.Text)
			if v != nowOption {
				t, err := input.TimeOfDay(v)
				if err != nil {
					return dialog.Invalid(err.Error())
				}
				v = t
			}
			return dialog.Result{Set: dialog.Context{"taken_time": v}, Next: "amount"}
		},
	}
}

func intakeAmountState(finish func(ctx context.Context, fc dialog.Context, amount string) dialog.Result) dialog.State {
	return dialog.State{
		Prompt: func(fc dialog.Context) dialog.Prompt {
			return dialog.Prompt{Text: "Amount (or skip):", Options: []string{skipOption}}
		},
		Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
			amount := strings.TrimSpace(in.Text)
			if amount == skipOption {
				amount = ""
			}
			return finish(ctx, fc, amount)
		},
	}
}

// takenAt combines the flow's date with the answered time of day.
func takenAt(fc dialog.Context) time.Time {
	day := dateOf(fc)
	v, _ := fc.String("taken_time")
	if v == nowOption || v == "" {
		now := time.Now()
		return time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), 0, 0, day.Location())
	}
	var h, m int
	fmt.Sscanf(v, "%d:%d", &h, &m)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}
