package calendar

import (
	"fmt"
	"time"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// Today returns the calendar day the wall clock shows in loc.
func Today(loc *time.Location) string {
	return FormatDay(time.Now().In(loc))
}

// TodayIn returns the calendar day the wall clock shows in the named timezone.
func TodayIn(timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return Today(loc), nil
}

// IsToday reports whether day is the calendar day of now, read in now's location.
func IsToday(day string, now time.Time) bool {
	return day == FormatDay(now)
}
