// Package bot routes inbound chat messages: while a flow is active every
// event goes to the dialogue engine; otherwise a global command table
// resolves calendars, day views, totals, summaries and flow launches.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/avdeev87/fitcoach/internal/calendar"
	"github.com/avdeev87/fitcoach/internal/dialog"
	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/flows"
	"github.com/avdeev87/fitcoach/internal/input"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/service"
)

// MenuMain is the root of the menu stack.
const MenuMain dialog.MenuID = "main"

const unknownCommandMsg = "I don't know that command. Send \"menu\" to see what I can do."

// Response is what the transport should render for one inbound message.
type Response struct {
	Messages []string
	Prompt   *dialog.Prompt
}

// Router dispatches messages between the dialogue engine and the idle
// command table.
type Router struct {
	engine  *dialog.Engine
	cal     *calendar.Projector
	svcs    flows.Services
	reports service.ReportService
	log     *zap.Logger
	now     func() time.Time
}

// NewRouter constructs a router over an engine with all flows registered.
func NewRouter(engine *dialog.Engine, cal *calendar.Projector, svcs flows.Services, reports service.ReportService, log *zap.Logger) *Router {
	return &Router{
		engine:  engine,
		cal:     cal,
		svcs:    svcs,
		reports: reports,
		log:     log,
		now:     time.Now,
	}
}

var calendarDomains = map[string]calendar.Domain{
	"workouts":     calendar.DomainWorkouts,
	"weights":      calendar.DomainWeights,
	"measurements": calendar.DomainMeasurements,
	"meals":        calendar.DomainMeals,
	"supplements":  calendar.DomainSupplements,
	"water":        calendar.DomainWater,
	"procedures":   calendar.DomainProcedures,
	"wellbeing":    calendar.DomainWellbeing,
}

// launchCommands maps idle commands to the flow they start.
var launchCommands = map[string]dialog.FlowID{
	"add workout":      flows.AddWorkout,
	"add weight":       flows.AddWeight,
	"add measurements": flows.AddMeasurement,
	"add meal":         flows.AddMealText,
	"add meal photo":   flows.AddMealPhoto,
	"add label":        flows.AddMealLabel,
	"add barcode":      flows.AddMealBarcode,
	"add supplement":   flows.AddSupplement,
	"add water":        flows.AddWater,
	"add procedure":    flows.AddProcedure,
	"check-in":         flows.WellbeingSurvey,
	"note":             flows.WellbeingComment,
	"kbju test":        flows.KbjuTest,
	"delete account":   flows.DeleteAccount,
}

// HandleMessage processes one inbound event for a user.
func (r *Router) HandleMessage(ctx context.Context, userID model.UserID, in dialog.Input) Response {
	if err := r.svcs.Account.Ensure(ctx, userID); err != nil {
		r.log.Warn("ensure user failed", zap.String("user", string(userID)), zap.Error(err))
	}

	cmd := strings.ToLower(strings.TrimSpace(in.Text))

	if _, active := r.engine.Active(userID); active {
		switch cmd {
		case "cancel":
			r.engine.Cancel(userID)
			return Response{Messages: []string{"Cancelled."}}
		case "back":
			// Abandoning mid-flow discards its context and returns
			// to the menu shown before the flow began.
			r.engine.Cancel(userID)
			if m, ok := r.engine.CurrentMenu(userID); ok {
				return r.renderMenu(ctx, userID, m)
			}
			return r.mainMenu(userID)
		case "menu", "main menu":
			r.engine.Cancel(userID)
			return r.mainMenu(userID)
		}
		reply, err := r.engine.HandleInput(ctx, userID, in)
		if err != nil {
			r.log.Error("engine failed", zap.String("user", string(userID)), zap.Error(err))
		}
		return Response{Messages: reply.Messages, Prompt: reply.Prompt}
	}

	switch cmd {
	case "menu", "start", "main menu", "":
		return r.mainMenu(userID)
	case "back":
		if m, ok := r.engine.PopMenu(userID); ok {
			return r.renderMenu(ctx, userID, m)
		}
		return r.mainMenu(userID)
	case "today":
		return r.todayTotals(ctx, userID)
	case "summary", "summary week":
		return r.summary(ctx, userID, 7)
	case "summary month":
		return r.summary(ctx, userID, 30)
	case "log intake":
		return r.launchSupplementPick(ctx, userID, flows.LogIntake, nil)
	case "edit supplement":
		return r.launchSupplementPick(ctx, userID, flows.EditSupplement, nil)
	}

	if id, ok := launchCommands[cmd]; ok {
		return r.launch(userID, id, nil)
	}
	if d, ok := calendarDomains[cmd]; ok {
		return r.monthView(ctx, userID, d, r.now())
	}
	if resp, ok := r.dayView(ctx, userID, cmd); ok {
		return resp
	}

	return Response{Messages: []string{unknownCommandMsg}}
}

// launch begins a flow, seeding the user id and any extra context.
func (r *Router) launch(userID model.UserID, id dialog.FlowID, extra dialog.Context) Response {
	fc := dialog.Context{flows.KeyUser: string(userID)}
	for k, v := range extra {
		fc[k] = v
	}
	p, err := r.engine.Begin(userID, id, fc)
	if err != nil {
		r.log.Error("begin flow failed", zap.String("flow", string(id)), zap.Error(err))
		return Response{Messages: []string{dialog.ErrorReply}}
	}
	return Response{Prompt: &p}
}

// mainMenu resets menu history to the root and renders it.
func (r *Router) mainMenu(userID model.UserID) Response {
	r.engine.ResetMenus(userID)
	r.engine.PushMenu(userID, MenuMain)
	return Response{Messages: []string{mainMenuText}}
}

// renderMenu redraws a previously shown menu by its id.
func (r *Router) renderMenu(ctx context.Context, userID model.UserID, m dialog.MenuID) Response {
	if name, ok := strings.CutPrefix(string(m), "calendar-"); ok {
		if d, ok := calendarDomains[name]; ok {
			now := r.now()
			grid, err := r.cal.MonthGrid(ctx, userID, d, now.Year(), now.Month())
			if err != nil {
				r.log.Error("month grid failed", zap.String("domain", string(d)), zap.Error(err))
				return Response{Messages: []string{dialog.ErrorReply}}
			}
			return Response{Messages: []string{renderMonth(grid)}}
		}
	}
	return Response{Messages: []string{mainMenuText}}
}

// launchSupplementPick seeds a supplement-picking flow with the user's
// supplement list.
func (r *Router) launchSupplementPick(ctx context.Context, userID model.UserID, id dialog.FlowID, extra dialog.Context) Response {
	supps, err := r.svcs.Supplements.List(ctx, userID)
	if err != nil {
		return Response{Messages: []string{dialog.ErrorReply}}
	}
	if len(supps) == 0 {
		return Response{Messages: []string{"You have no supplements yet. Send \"add supplement\" first."}}
	}
	names := make([]string, 0, len(supps))
	ids := make([]string, 0, len(supps))
	for _, s := range supps {
		names = append(names, s.Name)
		ids = append(ids, s.ID.String())
	}
	seed := dialog.Context{
		flows.KeySupplementNames: names,
		flows.KeySupplementIDs:   ids,
	}
	for k, v := range extra {
		seed[k] = v
	}
	return r.launch(userID, id, seed)
}

// monthView renders a domain's month grid and pushes its menu.
func (r *Router) monthView(ctx context.Context, userID model.UserID, d calendar.Domain, at time.Time) Response {
	grid, err := r.cal.MonthGrid(ctx, userID, d, at.Year(), at.Month())
	if err != nil {
		r.log.Error("month grid failed", zap.String("domain", string(d)), zap.Error(err))
		return Response{Messages: []string{dialog.ErrorReply}}
	}
	r.engine.PushMenu(userID, dialog.MenuID("calendar-"+string(d)))
	return Response{Messages: []string{renderMonth(grid)}}
}

// dayView handles "<domain> <date> [action [n]]" queries: a bare
// "meals 07.05.2025" renders the day, while "meals 07.05.2025 edit 1"
// acts on its first record.
func (r *Router) dayView(ctx context.Context, userID model.UserID, cmd string) (Response, bool) {
	fields := strings.Fields(cmd)
	if len(fields) < 2 {
		return Response{}, false
	}
	d, ok := calendarDomains[fields[0]]
	if !ok {
		return Response{}, false
	}

	rest := fields[1:]
	var action calendar.Action
	index := 0
	for i, f := range rest {
		a := calendar.Action(f)
		if a != calendar.ActionAdd && a != calendar.ActionEdit && a != calendar.ActionDelete {
			continue
		}
		action = a
		if a != calendar.ActionAdd {
			if i+1 >= len(rest) {
				return Response{Messages: []string{fmt.Sprintf("Give the entry number, e.g. \"%s 1\".", a)}}, true
			}
			n, err := strconv.Atoi(rest[i+1])
			if err != nil {
				return Response{Messages: []string{fmt.Sprintf("Give the entry number, e.g. \"%s 1\".", a)}}, true
			}
			index = n
		}
		rest = rest[:i]
		break
	}
	if len(rest) == 0 {
		return Response{}, false
	}

	date, err := input.Date(strings.Join(rest, " "), r.now())
	if err != nil {
		return Response{Messages: []string{err.Error()}}, true
	}

	if action == "" {
		view, err := r.cal.DayView(ctx, userID, d, date)
		if err != nil {
			r.log.Error("day view failed", zap.String("domain", string(d)), zap.Error(err))
			return Response{Messages: []string{dialog.ErrorReply}}, true
		}
		return Response{Messages: []string{renderDay(view)}}, true
	}
	return r.dayAction(ctx, userID, d, date, action, index), true
}

// dayAction executes one of a day view's advertised actions.
func (r *Router) dayAction(ctx context.Context, userID model.UserID, d calendar.Domain, date time.Time, action calendar.Action, index int) Response {
	if action == calendar.ActionAdd {
		return r.launchAdd(ctx, userID, d, date)
	}

	view, err := r.cal.DayView(ctx, userID, d, date)
	if err != nil {
		r.log.Error("day view failed", zap.String("domain", string(d)), zap.Error(err))
		return Response{Messages: []string{dialog.ErrorReply}}
	}
	if len(view.Records) == 0 {
		return Response{Messages: []string{"No entries that day."}}
	}
	if index < 1 || index > len(view.Records) {
		return Response{Messages: []string{fmt.Sprintf("Pick an entry number between 1 and %d.", len(view.Records))}}
	}
	rec := view.Records[index-1]

	if action == calendar.ActionDelete {
		if err := r.deleteRecord(ctx, userID, d, rec.ID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return Response{Messages: []string{"That entry is already gone."}}
			}
			r.log.Error("delete record failed", zap.String("domain", string(d)), zap.Error(err))
			return Response{Messages: []string{dialog.ErrorReply}}
		}
		return Response{Messages: []string{"Deleted."}}
	}
	return r.launchEdit(ctx, userID, d, date, rec)
}

// dayAddFlows maps a calendar domain to the flow its add action starts.
var dayAddFlows = map[calendar.Domain]dialog.FlowID{
	calendar.DomainWorkouts:     flows.AddWorkout,
	calendar.DomainWeights:      flows.AddWeight,
	calendar.DomainMeasurements: flows.AddMeasurement,
	calendar.DomainMeals:        flows.AddMealText,
	calendar.DomainWater:        flows.AddWater,
	calendar.DomainProcedures:   flows.AddProcedure,
	calendar.DomainWellbeing:    flows.WellbeingSurvey,
}

// launchAdd starts the domain's add flow logging against the selected day.
func (r *Router) launchAdd(ctx context.Context, userID model.UserID, d calendar.Domain, date time.Time) Response {
	if d == calendar.DomainSupplements {
		return r.launchSupplementPick(ctx, userID, flows.LogIntake, dialog.Context{flows.KeyDate: date})
	}
	id, ok := dayAddFlows[d]
	if !ok {
		return Response{Messages: []string{unknownCommandMsg}}
	}
	return r.launch(userID, id, dialog.Context{flows.KeyDate: date})
}

// launchEdit starts the edit flow matching the domain, seeded with the
// selected record and day.
func (r *Router) launchEdit(ctx context.Context, userID model.UserID, d calendar.Domain, date time.Time, rec calendar.Record) Response {
	seed := dialog.Context{flows.KeyDate: date}
	switch d {
	case calendar.DomainWorkouts:
		seed[flows.KeyWorkoutID] = rec.ID.String()
		return r.launch(userID, flows.EditWorkout, seed)
	case calendar.DomainWeights:
		// Re-entering a weight for the day applies the edit-in-place
		// shortcut.
		return r.launch(userID, flows.AddWeight, seed)
	case calendar.DomainMeasurements:
		// A fresh set becomes the day's latest measurements.
		return r.launch(userID, flows.AddMeasurement, seed)
	case calendar.DomainMeals:
		seed[flows.KeyMealID] = rec.ID.String()
		return r.launch(userID, flows.EditMealPortions, seed)
	case calendar.DomainSupplements:
		seed[flows.KeyIntakeID] = rec.ID.String()
		return r.launch(userID, flows.EditIntake, seed)
	}
	return Response{Messages: []string{fmt.Sprintf("Editing is not available for %s.", d)}}
}

// deleteRecord routes a day-view delete to the owning service.
func (r *Router) deleteRecord(ctx context.Context, userID model.UserID, d calendar.Domain, id uuid.UUID) error {
	switch d {
	case calendar.DomainWorkouts:
		return r.svcs.Workouts.Delete(ctx, userID, id)
	case calendar.DomainWeights:
		return r.svcs.Weights.Delete(ctx, userID, id)
	case calendar.DomainMeasurements:
		return r.svcs.Measurements.Delete(ctx, userID, id)
	case calendar.DomainMeals:
		return r.svcs.Meals.Delete(ctx, userID, id)
	case calendar.DomainSupplements:
		return r.svcs.Supplements.DeleteIntake(ctx, userID, id)
	case calendar.DomainWater:
		return r.svcs.Water.Delete(ctx, userID, id)
	case calendar.DomainProcedures:
		return r.svcs.Procedures.Delete(ctx, userID, id)
	case calendar.DomainWellbeing:
		return r.svcs.Wellbeing.Delete(ctx, userID, id)
	}
	return fmt.Errorf("no delete for domain %q", d)
}

// todayTotals renders nutrition against the effective targets, water
// progress and calories burned for the current day.
func (r *Router) todayTotals(ctx context.Context, userID model.UserID) Response {
	now := r.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	totals, err := r.svcs.Meals.TotalsForDay(ctx, userID, day)
	if err != nil {
		return Response{Messages: []string{dialog.ErrorReply}}
	}
	var goal *model.KbjuGoal
	if g, err := r.svcs.Goals.EffectiveTargets(ctx, userID, day); err == nil {
		goal = g
	} else if !errors.Is(err, errs.ErrNotFound) {
		r.log.Warn("effective targets failed", zap.Error(err))
	}
	water, err := r.svcs.Water.ProgressForDay(ctx, userID, day)
	if err != nil {
		return Response{Messages: []string{dialog.ErrorReply}}
	}
	burned, err := r.svcs.Workouts.BurnedForDay(ctx, userID, day)
	if err != nil {
		return Response{Messages: []string{dialog.ErrorReply}}
	}
	return Response{Messages: []string{renderToday(day, totals, goal, water, burned)}}
}

// summary builds and narrates the report for the trailing N days.
func (r *Router) summary(ctx context.Context, userID model.UserID, days int) Response {
	now := r.now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := to.AddDate(0, 0, -(days - 1))
	rep, err := r.reports.Build(ctx, userID, from, to)
	if err != nil {
		r.log.Error("report build failed", zap.Error(err))
		return Response{Messages: []string{dialog.ErrorReply}}
	}
	return Response{Messages: []string{r.reports.Summarize(ctx, rep)}}
}

var mainMenuText = strings.Join([]string{
	"What would you like to do?",
	"  add workout / add weight / add measurements",
	"  add meal / add meal photo / add label / add barcode",
	"  add supplement / edit supplement / log intake",
	"  add water / add procedure / check-in / note / kbju test",
	"  workouts, meals, water, ... - month calendars",
	"  meals 07.05.2025 - a day view (then: add, edit 1, delete 1)",
	"  today - totals, summary - weekly report",
	"  delete account",
}, "\n")
