// Package input parses and validates free-text dialogue answers. Every
// parser rejects bad input with an error instead of clamping or
// defaulting, so flow steps can re-prompt without mutating state.
package input

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Relative day labels selectable from date menus.
const (
	DayToday           = "today"
	DayYesterday       = "yesterday"
	DayBeforeYesterday = "day before yesterday"
)

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// PositiveInt parses a strictly positive integer.
func PositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("enter a whole number")
	}
	if n <= 0 {
		return 0, errors.New("enter a number greater than zero")
	}
	return n, nil
}

// PositiveDecimal parses a strictly positive decimal, accepting both
// '.' and ',' as the separator. Returns the normalized raw string along
// with the value.
func PositiveDecimal(s string) (float64, string, error) {
	raw := strings.TrimSpace(s)
	normalized := strings.Replace(raw, ",", ".", 1)
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, "", errors.New("enter a number, e.g. 70.5")
	}
	if v <= 0 {
		return 0, "", errors.New("enter a number greater than zero")
	}
	return v, normalized, nil
}

// Date parses either a relative day label or manual day.month.year
// input. Invalid manual dates are rejected, never defaulted to today.
func Date(s string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case DayToday:
		return today, nil
	case DayYesterday:
		return today.AddDate(0, 0, -1), nil
	case DayBeforeYesterday:
		return today.AddDate(0, 0, -2), nil
	}

	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return time.Time{}, errors.New("enter a date as day.month.year, e.g. 07.05.2025")
	}
	d, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, errors.New("enter a date as day.month.year, e.g. 07.05.2025")
	}
	if y < 1900 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, errors.New("that date does not exist")
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, now.Location())
	// time.Date normalizes overflow (31.02 -> 02.03); treat that as invalid.
	if t.Day() != d || t.Month() != time.Month(m) || t.Year() != y {
		return time.Time{}, errors.New("that date does not exist")
	}
	return t, nil
}

// TimeOfDay validates strict HH:MM with hours 00-23 and minutes 00-59.
// Pattern-matched, not calendar-parsed.
func TimeOfDay(s string) (string, error) {
	v := strings.TrimSpace(s)
	if !timeOfDayRe.MatchString(v) {
		return "", errors.New("enter a time as HH:MM, e.g. 08:30")
	}
	return v, nil
}

// Choice validates that the input is one of the allowed options, with
// no fuzzy matching.
func Choice(s string, allowed []string) (string, error) {
	v := strings.TrimSpace(s)
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("pick one of the menu options")
}

// Name validates any non-empty trimmed string.
func Name(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", errors.New("the name cannot be empty")
	}
	return v, nil
}

// NameWithNotes splits a free-text answer at the first comma into a
// name and an optional trailing note. The comma is a deliberate
// separator, not a list delimiter.
func NameWithNotes(s string) (name, notes string, err error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", "", errors.New("the name cannot be empty")
	}
	if i := strings.Index(v, ","); i >= 0 {
		name = strings.TrimSpace(v[:i])
		notes = strings.TrimSpace(v[i+1:])
		if name == "" {
			return "", "", errors.New("the name cannot be empty")
		}
		return name, notes, nil
	}
	return v, "", nil
}

// SortTimes returns unique HH:MM strings sorted ascending. Input values
// must already be validated by TimeOfDay.
func SortTimes(times []string) []string {
	seen := make(map[string]bool, len(times))
	out := make([]string, 0, len(times))
	for _, t := range times {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	// Lexicographic order equals chronological order for zero-padded HH:MM.
	sort.Strings(out)
	return out
}
