package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rythm/internal/adherence"
	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/logger"
	"github.com/julianstephens/rythm/internal/models"
)

// Review builds the weekly review of the week containing day. Paused
// systems are included so their pattern is still visible.
func (t *Tracker) Review(day string) (adherence.Review, error) {
	week, err := calendar.WeekWindow(day)
	if err != nil {
		return adherence.Review{}, err
	}
	systems, err := t.Systems(true)
	if err != nil {
		return adherence.Review{}, fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err)
	}
	return adherence.ReviewWeek(t.store, t.userID, systems, week)
}

// CurrentWeekStart is the Monday of the week the tracker is showing.
func (t *Tracker) CurrentWeekStart() (string, error) {
	settings, err := t.Settings()
	if err != nil {
		return "", err
	}
	return calendar.WeekStart(t.ViewedDay(settings))
}

// WeeklySync returns the saved reflection for the week containing day.
func (t *Tracker) WeeklySync(day string) (models.WeeklySync, error) {
	start, err := calendar.WeekStart(day)
	if err != nil {
		return models.WeeklySync{}, err
	}
	return t.store.GetWeeklySync(t.userID, start)
}

// SaveWeeklySync validates and upserts a reflection. WeekStart may be any
// day of the week; it is normalized to that week's Monday.
func (t *Tracker) SaveWeeklySync(w models.WeeklySync) (models.WeeklySync, error) {
	start, err := calendar.WeekStart(w.WeekStart)
	if err != nil {
		return models.WeeklySync{}, err
	}
	w.WeekStart = start
	w.UserID = t.userID
	w.Win = strings.TrimSpace(w.Win)
	w.Pattern = strings.TrimSpace(w.Pattern)
	if w.Win == "" {
		return models.WeeklySync{}, fmt.Errorf("a weekly sync needs a win")
	}
	if w.Pattern == "" {
		return models.WeeklySync{}, fmt.Errorf("a weekly sync needs a pattern")
	}
	if w.AdjustedSystemID != nil && *w.AdjustedSystemID != "" {
		sys, err := t.FindSystem(*w.AdjustedSystemID)
		if err != nil {
			return models.WeeklySync{}, fmt.Errorf("adjusted system: %w", err)
		}
		w.AdjustedSystemID = &sys.ID
	} else {
		w.AdjustedSystemID = nil
		w.AdjustmentNote = ""
	}
	w.UpdatedAt = t.now().UTC()

	if err := t.store.SaveWeeklySync(w); err != nil {
		return models.WeeklySync{}, err
	}
	// The store keeps the first row's id and creation time on update.
	saved, err := t.store.GetWeeklySync(t.userID, w.WeekStart)
	if err != nil {
		return models.WeeklySync{}, fmt.Errorf("failed to read back weekly sync: %w", err)
	}
	logger.Info("Saved weekly sync", "week", saved.WeekStart, "id", saved.ID)
	return saved, nil
}

// SyncHistory lists past reflections, newest week first.
func (t *Tracker) SyncHistory(limit int) ([]models.WeeklySync, error) {
	if limit <= 0 {
		limit = 12
	}
	return t.store.GetWeeklySyncs(t.userID, limit)
}
