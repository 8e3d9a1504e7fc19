package flows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/estimator"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/service"
)

const (
	estimatorDownMsg  = "The nutrition service is unavailable right now, try again in a minute."
	nothingFoundMsg   = "I couldn't recognize any food there, try describing it differently."
	needPhotoMsg      = "Send a photo, please."
	unknownBarcodeMsg = "This barcode is not in the database. Try the nutrition label instead."

	// KeyMealID seeds the meal-edit flow with the record to edit.
	KeyMealID = "meal_id"

	packageOption = "whole package"
)

func mealReply(e *model.MealEntry) string {
	return fmt.Sprintf("Saved: %.0f kcal, protein %.1f g, fat %.1f g, carbs %.1f g.",
		e.Calories, e.Protein, e.Fat, e.Carbs)
}

// addMealTextFlow: one free-text step, estimated and saved.
func addMealTextFlow(svc service.MealService) *dialog.Flow {
	return &dialog.Flow{
		ID:    AddMealText,
		Entry: "describe",
		States: map[dialog.StateID]dialog.State{
			"describe": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "What did you eat?"}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					if strings.TrimSpace(in.Text) == "" {
						return dialog.Invalid("Describe the meal, please.")
					}
					e, err := svc.AddFromText(ctx, userOf(fc), in.Text, dateOf(fc))
					switch {
					case errors.Is(err, errs.ErrUnavailable):
						return dialog.Invalid(estimatorDownMsg)
					case errors.Is(err, errs.ErrNotFound):
						return dialog.Invalid(nothingFoundMsg)
					case err != nil:
						return saveFailed()
					}
					return dialog.Result{Done: true, Reply: mealReply(e)}
				},
			},
		},
	}
}

// addMealPhotoFlow: one photo step, recognized and saved.
func addMealPhotoFlow(svc service.MealService) *dialog.Flow {
	return &dialog.Flow{
		ID:    AddMealPhoto,
		Entry: "photo",
		States: map[dialog.StateID]dialog.State{
			"photo": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Send a photo of your meal."}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					if len(in.Photo) == 0 {
						return dialog.Invalid(needPhotoMsg)
					}
					e, err := svc.AddFromPhoto(ctx, userOf(fc), in.Photo, dateOf(fc))
					switch {
					case errors.Is(err, errs.ErrUnavailable):
						return dialog.Invalid(estimatorDownMsg)
					case errors.Is(err, errs.ErrNotFound):
						return dialog.Invalid(nothingFoundMsg)
					case err != nil:
						return saveFailed()
					}
					return dialog.Result{Done: true, Reply: mealReply(e)}
				},
			},
		},
	}
}

// addMealLabelFlow: photo of a nutrition label -> per-100g facts -> grams -> save.
func addMealLabelFlow(svc service.MealService) *dialog.Flow {
	return &dialog.Flow{
		ID:    AddMealLabel,
		Entry: "photo",
		States: map[dialog.StateID]dialog.State{
			"photo": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Send a photo of the nutrition label."}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					if len(in.Photo) == 0 {
						return dialog.Invalid(needPhotoMsg)
					}
					p, err := svc.ReadLabel(ctx, in.Photo)
					if err != nil {
						return dialog.Invalid(estimatorDownMsg)
					}
					return dialog.Result{Set: per100gContext(p), Next: "grams"}
				},
			},
			"grams": per100gGramsState(svc),
		},
	}
}

// addMealBarcodeFlow: photo of a barcode -> product lookup -> grams -> save.
func addMealBarcodeFlow(svc service.MealService) *dialog.Flow {
	return &dialog.Flow{
		ID:    AddMealBarcode,
		Entry: "photo",
		States: map[dialog.StateID]dialog.State{
			"photo": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{Text: "Send a photo of the barcode."}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					if len(in.Photo) == 0 {
						return dialog.Invalid(needPhotoMsg)
					}
					p, err := svc.ResolveBarcode(ctx, in.Photo)
					switch {
					case errors.Is(err, errs.ErrNotFound):
						return dialog.Invalid(unknownBarcodeMsg)
					case err != nil:
						return dialog.Invalid(estimatorDownMsg)
					}
					return dialog.Result{Set: per100gContext(p), Next: "grams"}
				},
			},
			"grams": per100gGramsState(svc),
		},
	}
}

func per100gContext(p estimator.Per100g) dialog.Context {
	return dialog.Context{
		"p_name":  p.Name,
		"p_brand": p.Brand,
		"p_cal":   p.Calories,
		"p_prot":  p.Protein,
		"p_fat":   p.Fat,
		"p_carbs": p.Carbs,
		"p_pack":  p.PackageGrams,
	}
}

func per100gFromContext(fc dialog.Context) estimator.Per100g {
	name, _ := fc.String("p_name")
	brand, _ := fc.String("p_brand")
	cal, _ := fc.Float("p_cal")
	prot, _ := fc.Float("p_prot")
	fat, _ := fc.Float("p_fat")
	carbs, _ := fc.Float("p_carbs")
	pack, _ := fc.Float("p_pack")
	return estimator.Per100g{
		Name: name, Brand: brand,
		Calories: cal, Protein: prot, Fat: fat, Carbs: carbs,
		PackageGrams: pack,
	}
}

// per100gGramsState asks the eaten weight and saves the scaled meal; it
// is shared by the label and barcode flows.
func per100gGramsState(svc service.MealService) dialog.State {
	return dialog.State{
		Prompt: func(fc dialog.Context) dialog.Prompt {
			name, _ := fc.String("p_name")
			p := dialog.Prompt{Text: fmt.Sprintf("%s — how many grams did you eat?", name)}
			if pack, ok := fc.Float("p_pack"); ok && pack > 0 {
				p.Options = []string{packageOption}
			}
			return p
		},
		Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
			var grams float64
			if in.Text == packageOption {
				pack, ok := fc.Float("p_pack")
				if !ok || pack <= 0 {
					return dialog.Invalid("The package weight is unknown, enter grams.")
				}
				grams = pack
			} else {
				v, _, err := input.PositiveDecimal(in.Text)
				if err != nil {
					return dialog.Invalid(err.Error())
				}
				grams = v
			}
			e, err := svc.AddFromPer100g(ctx, userOf(fc), per100gFromContext(fc), grams, dateOf(fc))
			if err != nil {
				return saveFailed()
			}
			return dialog.Result{Done: true, Reply: mealReply(e)}
		},
	}
}

// editMealPortionsFlow collects "name grams" lines and rewrites the meal
// in one terminal write. The router seeds KeyMealID.
func editMealPortionsFlow(svc service.MealService) *dialog.Flow {
	return &dialog.Flow{
		ID:    EditMealPortions,
		Entry: "portions",
		States: map[dialog.StateID]dialog.State{
			"portions": {
				Prompt: func(fc dialog.Context) dialog.Prompt {
					return dialog.Prompt{
						Text:    "Send new portions as \"name grams\", one per message. Send \"done\" to apply.",
						Options: []string{"done"},
					}
				},
				Handle: func(ctx context.Context, fc dialog.Context, in dialog.Input) dialog.Result {
					updates, _ := fc["updates"].([]service.PortionUpdate)

					if strings.TrimSpace(in.Text) == "done" {
						if len(updates) == 0 {
							return dialog.Invalid("No portions given yet.")
						}
						idStr, _ := fc.String(KeyMealID)
						id, err := uuid.FromString(idStr)
						if err != nil {
							return saveFailed()
						}
						e, err := svc.EditPortions(ctx, userOf(fc), id, updates)
						if err != nil {
							if errors.Is(err, errs.ErrNotFound) {
								return dialog.Result{Done: true, Reply: "That meal no longer exists."}
							}
							return saveFailed()
						}
						return dialog.Result{Done: true, Reply: mealReply(e)}
					}

					name, grams, err := parsePortion(in.Text)
					if err != nil {
						return dialog.Invalid(err.Error())
					}
					next := append(append([]service.PortionUpdate(nil), updates...), service.PortionUpdate{Name: name, Grams: grams})
					return dialog.Result{
						Set:   dialog.Context{"updates": next},
						Next:  "portions",
						Reply: fmt.Sprintf("%s — %.0f g. Anything else?", name, grams),
					}
				},
			},
		},
	}
}

// parsePortion splits "chicken breast 100" into a name and grams.
func parsePortion(s string) (string, float64, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 2 {
		return "", 0, errors.New("send the product name and grams, e.g. \"chicken 100\"")
	}
	grams, _, err := input.PositiveDecimal(fields[len(fields)-1])
	if err != nil {
		return "", 0, errors.New("the last word must be the weight in grams")
	}
	return strings.Join(fields[:len(fields)-1], " "), grams, nil
}
