// Package calendar projects per-domain day records onto renderable
// month grids and single-day views.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// Domain names one calendar surface.
type Domain string

// Calendar domains.
const (
	DomainWorkouts     Domain = "workouts"
	DomainWeights      Domain = "weights"
	DomainMeasurements Domain = "measurements"
	DomainMeals        Domain = "meals"
	DomainSupplements  Domain = "supplements"
	DomainWater        Domain = "water"
	DomainProcedures   Domain = "procedures"
	DomainWellbeing    Domain = "wellbeing"
)

// Action is a permitted operation on a day view.
type Action string

const (
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// editableDomains lists the domains whose records support an edit
// action; the rest are add/delete only.
var editableDomains = map[Domain]bool{
	DomainWorkouts:     true,
	DomainWeights:      true,
	DomainMeasurements: true,
	DomainMeals:        true,
	DomainSupplements:  true,
}

// Record is one day-level record rendered in a day view.
type Record struct {
	ID     uuid.UUID
	Title  string
	Detail string
}

// MonthGrid is a renderable month: which days of it carry data.
type MonthGrid struct {
	Domain Domain
	Year   int
	Month  time.Month
	Marked map[int]bool
}

// DayView lists a day's records and the actions permitted on them.
// A day with zero records still carries the add action.
type DayView struct {
	Domain  Domain
	Date    time.Time
	Records []Record
	Actions []Action
}

// DaySource supplies day markers and day records for one domain.
type DaySource interface {
	// Days returns days of the month that have at least one record.
	Days(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error)
	// Records returns the day's records in insertion order. Domains
	// with a latest-only convention return at most one record.
	Records(ctx context.Context, userID model.UserID, date time.Time) ([]Record, error)
}

// Projector translates (user, domain, year/month or date) queries into
// month grids and day views.
type Projector struct {
	sources map[Domain]DaySource
}

// NewProjector constructs an empty projector; domains are attached with Register.
func NewProjector() *Projector {
	return &Projector{sources: make(map[Domain]DaySource)}
}

// Register attaches a day source for a domain.
func (p *Projector) Register(d Domain, s DaySource) { p.sources[d] = s }

// MonthGrid produces the month grid for one domain.
func (p *Projector) MonthGrid(ctx context.Context, userID model.UserID, d Domain, year int, month time.Month) (MonthGrid, error) {
	src, ok := p.sources[d]
	if !ok {
		return MonthGrid{}, fmt.Errorf("calendar: no source for domain %q", d)
	}
	days, err := src.Days(ctx, userID, year, month)
	if err != nil {
		return MonthGrid{}, fmt.Errorf("calendar: days for %s %d-%02d: %w", d, year, month, err)
	}
	marked := make(map[int]bool, len(days))
	for _, day := range days {
		marked[day] = true
	}
	return MonthGrid{Domain: d, Year: year, Month: month, Marked: marked}, nil
}

// DayView produces the record list plus permitted actions for one day.
// Empty days never error; they carry only the add action.
func (p *Projector) DayView(ctx context.Context, userID model.UserID, d Domain, date time.Time) (DayView, error) {
	src, ok := p.sources[d]
	if !ok {
		return DayView{}, fmt.Errorf("calendar: no source for domain %q", d)
	}
	recs, err := src.Records(ctx, userID, date)
	if err != nil {
		return DayView{}, fmt.Errorf("calendar: records for %s %s: %w", d, date.Format("2006-01-02"), err)
	}
	actions := []Action{ActionAdd}
	if len(recs) > 0 {
		if editableDomains[d] {
			actions = append(actions, ActionEdit)
		}
		actions = append(actions, ActionDelete)
	}
	return DayView{Domain: d, Date: date, Records: recs, Actions: actions}, nil
}

// NextMonth advances one month, rolling December into January of the next year.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// PrevMonth steps back one month, rolling January into December of the prior year.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
