// Package flows declares the multi-step dialogues the assistant runs:
// logging workouts, weight, measurements, meals, supplements, water,
// procedures and wellbeing, plus onboarding and account deletion. Each
// flow performs its single repository write in its terminal handler.
package flows

import (
	"time"

	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/service"
)

// Flow identifiers, used by the command router to launch flows.
const (
	AddWorkout       dialog.FlowID = "add-workout"
	EditWorkout      dialog.FlowID = "edit-workout"
	AddWeight        dialog.FlowID = "add-weight"
	AddMeasurement   dialog.FlowID = "add-measurement"
	AddMealText      dialog.FlowID = "add-meal-text"
	AddMealPhoto     dialog.FlowID = "add-meal-photo"
	AddMealLabel     dialog.FlowID = "add-meal-label"
	AddMealBarcode   dialog.FlowID = "add-meal-barcode"
	EditMealPortions dialog.FlowID = "edit-meal-portions"
	AddSupplement    dialog.FlowID = "add-supplement"
	EditSupplement   dialog.FlowID = "edit-supplement"
	LogIntake        dialog.FlowID = "log-supplement-intake"
	EditIntake       dialog.FlowID = "edit-supplement-intake"
	AddWater         dialog.FlowID = "add-water"
	AddProcedure     dialog.FlowID = "add-procedure"
	WellbeingSurvey  dialog.FlowID = "wellbeing-survey"
	WellbeingComment dialog.FlowID = "wellbeing-comment"
	KbjuTest         dialog.FlowID = "kbju-test"
	DeleteAccount    dialog.FlowID = "delete-account"
)

// Context keys seeded by the router when a flow begins.
const (
	KeyUser = "user"
	KeyDate = "date"
)

const saveFailedMsg = "Could not save right now, please try again."

// saveFailed aborts the flow to idle. The accumulated answers are
// discarded with it; a retry against a half-failed write must start
// from a clean context.
func saveFailed() dialog.Result {
	return dialog.Result{Done: true, Reply: saveFailedMsg}
}

// Services bundles everything the flow handlers write through.
type Services struct {
	Workouts     service.WorkoutService
	Weights      service.WeightService
	Measurements service.MeasurementService
	Meals        service.MealService
	Supplements  service.SupplementService
	Water        service.WaterService
	Procedures   service.ProcedureService
	Wellbeing    service.WellbeingService
	Goals        service.GoalService
	Account      service.AccountService
}

// All returns every flow definition wired to the given services.
func All(s Services) []*dialog.Flow {
	return []*dialog.Flow{
		addWorkoutFlow(s.Workouts),
		editWorkoutFlow(s.Workouts),
		addWeightFlow(s.Weights),
		addMeasurementFlow(s.Measurements),
		addMealTextFlow(s.Meals),
		addMealPhotoFlow(s.Meals),
		addMealLabelFlow(s.Meals),
		addMealBarcodeFlow(s.Meals),
		editMealPortionsFlow(s.Meals),
		addSupplementFlow(s.Supplements),
		editSupplementFlow(s.Supplements),
		logIntakeFlow(s.Supplements),
		editIntakeFlow(s.Supplements),
		addWaterFlow(s.Water),
		addProcedureFlow(s.Procedures),
		wellbeingSurveyFlow(s.Wellbeing),
		wellbeingCommentFlow(s.Wellbeing),
		kbjuTestFlow(s.Goals),
		deleteAccountFlow(s.Account),
	}
}

// userOf reads the user id the router seeded into the flow context.
func userOf(fc dialog.Context) model.UserID {
	v, _ := fc.String(KeyUser)
	return model.UserID(v)
}

// dateOf returns the day the flow logs against: the calendar-selected
// date when launched from a day view, today otherwise.
func dateOf(fc dialog.Context) time.Time {
	if v, ok := fc[KeyDate].(time.Time); ok {
		return v
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
