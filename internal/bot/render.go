package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/avdeev87/fitcoach/internal/calendar"
	"github.com/avdeev87/fitcoach/internal/flows"
	"github.com/avdeev87/fitcoach/internal/metrics"
	"github.com/avdeev87/fitcoach/internal/model"
	"github.com/avdeev87/fitcoach/internal/service"
)

// renderMonth draws a compact month grid; days carrying data are marked
// with an asterisk.
func renderMonth(g calendar.MonthGrid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s %d\n", g.Domain, g.Month, g.Year)
	b.WriteString(" Mo  Tu  We  Th  Fr  Sa  Su\n")

	first := time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC)
	// Monday-first column index for the 1st of the month.
	col := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("    ", col))

	days := calendar.DaysIn(g.Year, g.Month)
	for day := 1; day <= days; day++ {
		mark := " "
		if g.Marked[day] {
			mark = "*"
		}
		fmt.Fprintf(&b, "%2d%s ", day, mark)
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Send \"%s 07.%02d.%d\" for a day view.\n", g.Domain, g.Month, g.Year)
	return b.String()
}

// renderDay lists a day's records with the permitted actions.
func renderDay(v calendar.DayView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s\n", v.Domain, v.Date.Format("02.01.2006"))
	if len(v.Records) == 0 {
		b.WriteString("No entries.\n")
	}
	for i, rec := range v.Records {
		fmt.Fprintf(&b, "%d. %s", i+1, rec.Title)
		if rec.Detail != "" {
			fmt.Fprintf(&b, " - %s", rec.Detail)
		}
		b.WriteString("\n")
	}
	actions := make([]string, 0, len(v.Actions))
	for _, a := range v.Actions {
		actions = append(actions, string(a))
	}
	fmt.Fprintf(&b, "Actions: %s\n", strings.Join(actions, ", "))
	return b.String()
}

// renderToday shows the day's nutrition against the effective targets,
// the water bar and calories burned. Without a saved goal only raw
// totals are shown.
func renderToday(day time.Time, totals model.DayTotals, goal *model.KbjuGoal, water service.WaterProgress, burned float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today, %s\n", day.Format("02.01.2006"))

	if goal != nil {
		writeTarget(&b, "Calories", totals.Calories, goal.Calories, "kcal")
		writeTarget(&b, "Protein", totals.Protein, goal.Protein, "g")
		writeTarget(&b, "Fat", totals.Fat, goal.Fat, "g")
		writeTarget(&b, "Carbs", totals.Carbs, goal.Carbs, "g")
	} else {
		fmt.Fprintf(&b, "Calories: %.0f kcal (P %.0f / F %.0f / C %.0f g)\n",
			totals.Calories, totals.Protein, totals.Fat, totals.Carbs)
		b.WriteString("Take the kbju test to get daily targets.\n")
	}

	fmt.Fprintf(&b, "Water: %s %.0f / %.0f ml\n", flows.RenderBar(water.Bar), water.TotalMl, water.TargetMl)
	if burned > 0 {
		fmt.Fprintf(&b, "Burned: ~%.0f kcal\n", burned)
	}
	return b.String()
}

func writeTarget(b *strings.Builder, label string, current, target float64, unit string) {
	p := metrics.ProgressFor(current, target)
	fmt.Fprintf(b, "%s: %s %.0f / %.0f %s\n", label, flows.RenderBar(p), current, target, unit)
}
