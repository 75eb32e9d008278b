package adherence

import (
	"slices"
	"time"

	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/logger"
	"github.com/julianstephens/rythm/internal/models"
)

// ComebackStatus summarizes the recent misses of one system.
type ComebackStatus struct {
	SystemID          string
	ConsecutiveMisses int
	IsComeback        bool
	MissedDates       []string // oldest first
}

// Comeback counts consecutive missed days walking back from the day before
// today. Today is never inspected: only finished days decide a comeback.
// Absent, cleared and skipped days all count as misses.
func Comeback(systemID string, lookup StatusFunc, today string, opts Options) (ComebackStatus, error) {
	yesterday, err := calendar.PreviousDay(today)
	if err != nil {
		return ComebackStatus{}, err
	}

	missed, err := scanBack(lookup, yesterday, models.Status.Missed, opts.window(), opts.Since)
	if err != nil {
		return ComebackStatus{}, err
	}
	slices.Reverse(missed)

	return ComebackStatus{
		SystemID:          systemID,
		ConsecutiveMisses: len(missed),
		IsComeback:        len(missed) >= constants.ComebackThreshold,
		MissedDates:       missed,
	}, nil
}

// Comebacks runs Comeback for every active system and returns the flagged ones
// in input order. Each scan is floored at the system's creation day in loc.
func Comebacks(systems []models.System, lookupFor func(models.System) StatusFunc, today string, loc *time.Location, opts Options) ([]ComebackStatus, error) {
	var flagged []ComebackStatus
	for _, s := range systems {
		if !s.Active() {
			continue
		}
		status, err := Comeback(s.ID, lookupFor(s), today, opts.ForSystem(s, loc))
		if err != nil {
			return nil, err
		}
		logger.Debug("Comeback check", "system", s.Name, "misses", status.ConsecutiveMisses, "comeback", status.IsComeback)
		if status.IsComeback {
			flagged = append(flagged, status)
		}
	}
	return flagged, nil
}
