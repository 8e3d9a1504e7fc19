package flows

import (
	"context"
	"strings"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/service"
)

const (
	confirmPhrase = "delete everything"
	cancelOption  = "cancel"
)

// deleteAccountFlow purges the user's account only after the exact
// confirmation phrase is typed back.
func deleteAccountFlow(svc service.AccountService) *dialog.Flow {
	return &dialog.Flow{
		ID:    DeleteAccount,
		Entry: "confirm",
		States: map[dialog.StateID]dialog.State{
			"confirm": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{
						Text:    "This removes your account and every record for good. Type \"delete everything\" to confirm.",
						Options: []string{cancelOption},
					}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					switch strings.TrimSpace(in.Text) {
					case cancelOption:
						return dialog.Result{Done: true, Reply: "Nothing was deleted."}
					case confirmPhrase:
						if err := svc.Purge(ctx, userOf(fc)); err != nil {
							return saveFailed()
						}
						return dialog.Result{Done: true, Reply: "Your account and all data have been deleted."}
					default:
						return dialog.Invalid("Type the exact phrase \"delete everything\" or pick cancel.")
					}
				},
			},
		},
	}
}
