package tracker

import (
	"fmt"

	"github.com/julianstephens/rythm/internal/adherence"
	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/logger"
	"github.com/julianstephens/rythm/internal/models"
)

// SystemDay is one system's state on the viewed day.
type SystemDay struct {
	System models.System
	Status models.Status
	// Streak is only meaningful when StreakErr is nil.
	Streak    int
	StreakErr error
}

// Dashboard is everything the today view and the TUI render.
type Dashboard struct {
	Day          string
	Today        string
	SurvivalMode bool
	Systems      []SystemDay
	Comebacks    []adherence.ComebackStatus
	Recorded     int
}

// IsToday reports whether the dashboard shows the current day.
func (d Dashboard) IsToday() bool { return d.Day == d.Today }

// Mark records status for a system on day. Days after today are rejected.
func (t *Tracker) Mark(ref, day string, status models.Status) (models.System, error) {
	if !status.Recorded() && status != models.StatusCleared {
		return models.System{}, fmt.Errorf("invalid status %q", status.String())
	}
	if _, err := calendar.ParseDay(day); err != nil {
		return models.System{}, err
	}
	settings, err := t.Settings()
	if err != nil {
		return models.System{}, err
	}
	if today := t.Today(settings); day > today {
		return models.System{}, fmt.Errorf("cannot log %s: it is after today (%s)", day, today)
	}
	sys, err := t.FindSystem(ref)
	if err != nil {
		return models.System{}, err
	}

	err = t.store.SaveLog(models.DailyLog{
		UserID:   t.userID,
		SystemID: sys.ID,
		Day:      day,
		Status:   status,
	})
	if err != nil {
		return models.System{}, fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err)
	}
	logger.Debug("Marked system", "system", sys.Name, "day", day, "status", status)
	return sys, nil
}

// RestartWithSurvival turns survival mode on and logs a survival day for
// the system today, the suggested response to a comeback.
func (t *Tracker) RestartWithSurvival(ref string) (models.System, error) {
	settings, err := t.SetSurvivalMode(true)
	if err != nil {
		return models.System{}, err
	}
	return t.Mark(ref, t.Today(settings), models.StatusSurvival)
}

// Streak computes the streak of sys ending at day. Days logged before the
// system was created still count, so the scan is bounded only by the
// lookback setting.
func (t *Tracker) Streak(sys models.System, day string, settings models.Settings) (int, error) {
	return adherence.Streak(adherence.Lookup(t.store, t.userID, sys.ID), day, t.Options(settings))
}

// Comebacks returns the active systems that were missed on the last
// consecutive days up to yesterday.
func (t *Tracker) Comebacks(systems []models.System, settings models.Settings) ([]adherence.ComebackStatus, error) {
	lookupFor := func(s models.System) adherence.StatusFunc {
		return adherence.Lookup(t.store, t.userID, s.ID)
	}
	return adherence.Comebacks(systems, lookupFor, t.Today(settings), t.Location(settings), t.Options(settings))
}

// History returns the statuses of sys over the n days ending at day, oldest
// first, read with a single range query.
func (t *Tracker) History(sys models.System, day string, n int) ([]string, []models.Status, error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("history length must not be negative, got %d", n)
	}
	if n == 0 {
		return nil, nil, nil
	}
	days, err := calendar.LastNDays(n-1, day)
	if err != nil {
		return nil, nil, err
	}
	days = append(days, day)
	logs, err := t.store.GetLogsForSystem(t.userID, sys.ID, days[0], days[len(days)-1])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err)
	}
	lookup := adherence.FromLogs(logs)
	statuses := make([]models.Status, len(days))
	for i, d := range days {
		statuses[i], _ = lookup(d)
	}
	return days, statuses, nil
}

// Dashboard assembles the state of every active system on the viewed day.
// A streak that cannot be computed is reported on its row and does not fail
// the dashboard; a failed comeback check does.
func (t *Tracker) Dashboard() (Dashboard, error) {
	settings, err := t.Settings()
	if err != nil {
		return Dashboard{}, err
	}
	systems, err := t.Systems(false)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Day:          t.ViewedDay(settings),
		Today:        t.Today(settings),
		SurvivalMode: settings.SurvivalMode,
	}

	logs, err := t.store.GetLogsForDay(t.userID, d.Day)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err)
	}
	bySystem := make(map[string]models.Status, len(logs))
	for _, l := range logs {
		bySystem[l.SystemID] = l.Status
	}

	for _, sys := range systems {
		status := bySystem[sys.ID]
		row := SystemDay{System: sys, Status: status}
		if status.Recorded() {
			d.Recorded++
		}
		row.Streak, row.StreakErr = t.Streak(sys, d.Day, settings)
		if row.StreakErr != nil {
			logger.Error("Unable to compute streak", "system", sys.Name, "error", row.StreakErr)
		}
		d.Systems = append(d.Systems, row)
	}

	d.Comebacks, err = t.Comebacks(systems, settings)
	if err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
