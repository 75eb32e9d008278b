// Package tracker binds the adherence core to a store for one user. It is
// the single entry point the CLI commands and the TUI use to read and change
// tracking state.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/rythm/internal/adherence"
	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/logger"
	"github.com/julianstephens/rythm/internal/models"
	"github.com/julianstephens/rythm/internal/storage"
)

// Tracker is scoped to one authenticated user.
type Tracker struct {
	store  storage.Provider
	userID string
	now    func() time.Time
}

// New returns a tracker for userID. An empty user id is ErrNotAuthenticated.
func New(store storage.Provider, userID string) (*Tracker, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.ErrNotAuthenticated
	}
	return &Tracker{store: store, userID: userID, now: time.Now}, nil
}

func (t *Tracker) UserID() string { return t.userID }

func (t *Tracker) Store() storage.Provider { return t.store }

func (t *Tracker) Settings() (models.Settings, error) {
	settings, err := t.store.GetSettings(t.userID)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (t *Tracker) SaveSettings(settings models.Settings) error {
	if !calendar.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	if settings.TrackerDate != "" && !calendar.Valid(settings.TrackerDate) {
		return fmt.Errorf("tracker date %q: %w", settings.TrackerDate, errors.ErrMalformedDate)
	}
	if settings.MaxLookbackDays < 1 {
		return fmt.Errorf("max lookback must be positive")
	}
	if settings.ComebackWindow < constants.ComebackThreshold {
		return fmt.Errorf("comeback window must be at least %d days", constants.ComebackThreshold)
	}
	return t.store.SaveSettings(t.userID, settings)
}

// Location returns the user's configured timezone, falling back to the
// system zone when the stored name cannot be loaded.
func (t *Tracker) Location(settings models.Settings) *time.Location {
	loc, err := calendar.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, using local time", "timezone", settings.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// Today is the calendar day of the wall clock in the user's timezone.
func (t *Tracker) Today(settings models.Settings) string {
	return calendar.FormatDay(t.now().In(t.Location(settings)))
}

// Options builds scan options from the user's settings.
func (t *Tracker) Options(settings models.Settings) adherence.Options {
	return adherence.Options{
		MaxLookback: settings.MaxLookbackDays,
		Window:      settings.ComebackWindow,
	}
}

// ViewedDay is the day the tracker is showing. A missing, malformed or
// future tracker date falls back to today.
func (t *Tracker) ViewedDay(settings models.Settings) string {
	today := t.Today(settings)
	if settings.TrackerDate == "" || !calendar.Valid(settings.TrackerDate) || settings.TrackerDate > today {
		return today
	}
	return settings.TrackerDate
}

// SetViewedDay persists day as the tracker date. An empty day resets the
// tracker to follow today.
func (t *Tracker) SetViewedDay(day string) (string, error) {
	settings, err := t.Settings()
	if err != nil {
		return "", err
	}
	today := t.Today(settings)
	if day != "" {
		if _, err := calendar.ParseDay(day); err != nil {
			return "", err
		}
		if day > today {
			return "", fmt.Errorf("cannot track %s: it is after today (%s)", day, today)
		}
		if day == today {
			day = ""
		}
	}
	settings.TrackerDate = day
	if err := t.store.SaveSettings(t.userID, settings); err != nil {
		return "", fmt.Errorf("failed to save tracker date: %w", err)
	}
	return t.ViewedDay(settings), nil
}

// StepViewedDay moves the tracker date by delta days, never past today.
func (t *Tracker) StepViewedDay(delta int) (string, error) {
	settings, err := t.Settings()
	if err != nil {
		return "", err
	}
	next, err := calendar.AddDays(t.ViewedDay(settings), delta)
	if err != nil {
		return "", err
	}
	if today := t.Today(settings); next > today {
		next = today
	}
	return t.SetViewedDay(next)
}

// SetSurvivalMode toggles survival mode and returns the new settings.
func (t *Tracker) SetSurvivalMode(on bool) (models.Settings, error) {
	settings, err := t.Settings()
	if err != nil {
		return models.Settings{}, err
	}
	settings.SurvivalMode = on
	if err := t.store.SaveSettings(t.userID, settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to save survival mode: %w", err)
	}
	return settings, nil
}

func (t *Tracker) newID() string {
	return uuid.NewString()
}
