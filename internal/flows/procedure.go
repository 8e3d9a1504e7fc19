package flows

import (
	"context"
	"fmt"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/service"
)

// addProcedureFlow: one step; a comma separates the name from a note.
func addProcedureFlow(svc service.ProcedureService) *dialog.Flow {
	return &dialog.Flow{
		ID:    AddProcedure,
		Entry: "name",
		States: map[dialog.StateID]dialog.State{
			"name": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "What procedure? Add a note after a comma if you like."}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					name, notes, err := input.NameWithNotes(in.Text)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					if _, err := svc.Add(ctx, userOf(fc), name, notes, dateOf(fc)); err != nil {
						return saveFailed()
					}
					return dialog.Result{Done: true, Reply: fmt.Sprintf("Logged %s.", name)}
				},
			},
		},
	}
}
