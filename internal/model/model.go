// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// UserID is the opaque chat-platform user identifier. The platform
// authenticates users before events reach the core, so no further
// attributes are required here.
type UserID string

// VariantUnit describes how a workout count should be interpreted.
type VariantUnit string

// Known workout variant units.
const (
	UnitReps    VariantUnit = "reps"
	UnitSeconds VariantUnit = "seconds"
	UnitMinutes VariantUnit = "minutes"
	UnitSteps   VariantUnit = "steps"
	UnitJumps   VariantUnit = "jumps"
)

// WorkoutEntry is one logged set of an exercise on a calendar day.
// Multiple entries per (user, day) are allowed and are never merged;
// totals are aggregated at read time grouped by (exercise, variant).
type WorkoutEntry struct {
	ID       uuid.UUID
	UserID   UserID
	Exercise string
	Variant  VariantUnit
	Count    int // >= 1
	Date     time.Time
	Calories float64 // precomputed estimate, optional
}

// WeightEntry is a body-weight measurement. The raw value is kept as
// entered (locale decimal separators tolerated) next to the normalized
// float used for computation.
type WeightEntry struct {
	ID       uuid.UUID
	UserID   UserID
	RawValue string
	Value    float64
	Date     time.Time
}

// MeasurementEntry holds up to five independent body measurements in cm.
// A later submission creates a new record carrying only the fields the
// user specified; records are never merged.
type MeasurementEntry struct {
	ID     uuid.UUID
	UserID UserID
	Date   time.Time
	Chest  *float64
	Waist  *float64
	Hips   *float64
	Biceps *float64
	Thigh  *float64
}

// Product is a single meal line-item.
type Product struct {
	Name     string  `json:"name"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// MealEntry is one logged meal. The four totals must equal the sum of
// the line items at save time; editing re-parses a new product list and
// recomputes the totals from scratch.
type MealEntry struct {
	ID       uuid.UUID
	UserID   UserID
	Date     time.Time
	RawText  string
	Products []Product
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}

// Sum of a product list as the four-part nutrition total.
func SumProducts(ps []Product) (cal, prot, fat, carbs float64) {
	for _, p := range ps {
		cal += p.Calories
		prot += p.Protein
		fat += p.Fat
		carbs += p.Carbs
	}
	return cal, prot, fat, carbs
}

// Supplement is a scheduled supplement with reminder settings.
// Times are unique HH:MM strings sorted ascending; Days holds weekday
// labels the schedule applies to.
type Supplement struct {
	ID       uuid.UUID
	UserID   UserID
	Name     string
	Times    []string
	Days     []string
	Duration string // "ongoing" or a fixed day count label like "30"
	Notify   bool
}

// SupplementEntry is one intake record. Editing an intake is modeled as
// delete-old-then-insert-new, never in-place timestamp mutation.
type SupplementEntry struct {
	ID           uuid.UUID
	UserID       UserID
	SupplementID uuid.UUID
	TakenAt      time.Time
	Amount       string // optional
}

// WaterEntry is a single logged drink in ml. Daily totals are summed
// live, never cached.
type WaterEntry struct {
	ID      uuid.UUID
	UserID  UserID
	Amount  float64 // ml, > 0
	Date    time.Time
	LoggedAt time.Time
}

// ProcedureEntry is a logged wellness procedure with optional notes.
type ProcedureEntry struct {
	ID     uuid.UUID
	UserID UserID
	Name   string
	Date   time.Time
	Notes  string
}

// WellbeingKind separates quick check-ins from free-text comments; both
// share one calendar surface.
type WellbeingKind string

const (
	WellbeingQuick   WellbeingKind = "quick"
	WellbeingComment WellbeingKind = "comment"
)

// WellbeingEntry is one wellbeing check-in. Quick entries carry mood and
// influence; Difficulty is set only when the mood requires it.
type WellbeingEntry struct {
	ID         uuid.UUID
	UserID     UserID
	Date       time.Time
	Kind       WellbeingKind
	Mood       string
	Influence  string
	Difficulty string
	Comment    string
}

// KbjuGoal holds a user's daily nutrition targets. At most one per user;
// saving upserts.
type KbjuGoal struct {
	UserID    UserID
	Calories  float64
	Protein   float64
	Fat       float64
	Carbs     float64
	Goal      string // optional label: loss/gain/maintain
	Activity  string // optional label: low/medium/high
	UpdatedAt time.Time
}

// DayTotals is an aggregated nutrition picture for one day.
type DayTotals struct {
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}
