// Package calendar does arithmetic on canonical YYYY-MM-DD calendar days.
//
// Every day is pinned to 12:00 UTC before it is shifted, so neighbouring days
// never drift across a daylight-saving or zone boundary. Only the functions in
// local.go consult a clock or a time zone.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/errors"
)

// DaysPerWeek is the length of a Week.
const DaysPerWeek = 7

// Week is Monday through Sunday of one calendar week.
type Week [DaysPerWeek]string

// Start returns the Monday of the week.
func (w Week) Start() string { return w[0] }

// End returns the Sunday of the week.
func (w Week) End() string { return w[DaysPerWeek-1] }

// Contains reports whether day falls inside the week.
func (w Week) Contains(day string) bool {
	return day >= w.Start() && day <= w.End()
}

// FormatDay formats t as YYYY-MM-DD in t's own location.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD string and returns that day at the UTC anchor hour.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", errors.ErrMalformedDate, day)
	}
	return anchor(t.Year(), t.Month(), t.Day()), nil
}

// Valid reports whether day is a canonical calendar day.
func Valid(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

func anchor(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, constants.AnchorHour, 0, 0, 0, time.UTC)
}

// AddDays returns the day n days after day (n may be negative).
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return FormatDay(anchor(t.Year(), t.Month(), t.Day()+n)), nil
}

// PreviousDay returns the day before day.
func PreviousDay(day string) (string, error) {
	return AddDays(day, -1)
}

// NextDay returns the day after day.
func NextDay(day string) (string, error) {
	return AddDays(day, 1)
}

// WeekdayIndex returns the position of day inside its week, Monday = 0 through Sunday = 6.
func WeekdayIndex(day string) (int, error) {
	t, err := ParseDay(day)
	if err != nil {
		return 0, err
	}
	return mondayOffset(t.Weekday()), nil
}

// mondayOffset maps time.Weekday (Sunday = 0) onto a Monday-first week,
// so Sunday is the last day rather than the first.
func mondayOffset(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// WeekStart returns the Monday of the week containing day.
func WeekStart(day string) (string, error) {
	offset, err := WeekdayIndex(day)
	if err != nil {
		return "", err
	}
	return AddDays(day, -offset)
}

// WeekWindow returns Monday through Sunday of the week containing day.
func WeekWindow(day string) (Week, error) {
	t, err := ParseDay(day)
	if err != nil {
		return Week{}, err
	}
	offset := mondayOffset(t.Weekday())

	var w Week
	for i := range w {
		w[i] = FormatDay(anchor(t.Year(), t.Month(), t.Day()+i-offset))
	}
	return w, nil
}

// LastNDays returns the n days strictly before day, oldest first.
func LastNDays(n int, day string) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("lookback must not be negative, got %d", n)
	}
	t, err := ParseDay(day)
	if err != nil {
		return nil, err
	}

	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = FormatDay(anchor(t.Year(), t.Month(), t.Day()-n+i))
	}
	return days, nil
}

// DaysBetween returns the number of days from start to end (negative when end is earlier).
func DaysBetween(start, end string) (int, error) {
	s, err := ParseDay(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDay(end)
	if err != nil {
		return 0, err
	}
	return int(e.Sub(s).Hours() / 24), nil
}
