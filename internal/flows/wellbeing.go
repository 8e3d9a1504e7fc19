package flows

import (
	"context"
	"strings"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/service"
)

// wellbeingSurveyFlow asks mood, then influence, and a third difficulty
// question only for moods that warrant it. The next state is decided
// from the accumulated context, not a fixed sequence.
func wellbeingSurveyFlow(svc service.WellbeingService) *dialog.Flow {
	return &dialog.Flow{
		ID:    WellbeingSurvey,
		Entry: "mood",
		States: map[dialog.StateID]dialog.State{
			"mood": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "How are you feeling?", Options: service.MoodOptions, Menu: "wellbeing-mood"}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, err := input.Choice(in.Text, service.MoodOptions)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					return dialog.Result{Set: dialog.Context{"mood": v}, Next: "influence"}
				},
			},
			"influence": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "What influenced it most?", Options: service.InfluenceOptions}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, err := input.Choice(in.Text, service.InfluenceOptions)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					mood, _ := fc.String("mood")
					if service.MoodNeedsDifficulty(mood) {
						return dialog.Result{Set: dialog.Context{"influence": v}, Next: "difficulty"}
					}
					if _, err := svc.AddQuick(ctx, userOf(fc), dateOf(fc), mood, v, ""); err != nil {
						return saveFailed()
					}
					return dialog.Result{Done: true, Reply: "Noted, take care!"}
				},
			},
			"difficulty": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "When was it hardest?", Options: service.DifficultyOptions}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					v, err := input.Choice(in.Text, service.DifficultyOptions)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					mood, _ := fc.String("mood")
					influence, _ := fc.String("influence")
					if _, err := svc.AddQuick(ctx, userOf(fc), dateOf(fc), mood, influence, v); err != nil {
						return saveFailed()
					}
					return dialog.Result{Done: true, Reply: "Noted, hope tomorrow is easier."}
				},
			},
		},
	}
}

// wellbeingCommentFlow stores one free-text check-in.
func wellbeingCommentFlow(svc service.WellbeingService) *dialog.Flow {
	return &dialog.Flow{
		ID:    WellbeingComment,
		Entry: "comment",
		States: map[dialog.StateID]dialog.State{
			"comment": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "How was your day?"}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					if strings.TrimSpace(in.Text) == "" {
						return dialog.Invalid("Write a few words, please.")
					}
					if _, err := svc.AddComment(ctx, userOf(fc), dateOf(fc), strings.TrimSpace(in.Text)); err != nil {
						return saveFailed()
					}
					return dialog.Result{Done: true, Reply: "Saved."}
				},
			},
		},
	}
}
