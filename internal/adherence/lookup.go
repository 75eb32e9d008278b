package adherence

import (
	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/models"
)

// StatusFunc returns the status of one system on one calendar day.
// A day without a record yields models.StatusAbsent and a nil error; a non-nil
// error means the status could not be determined.
type StatusFunc func(day string) (models.Status, error)

// LogReader reads single log records. It must return errors.ErrNotFound when no
// record exists for the key.
type LogReader interface {
	GetLog(userID, systemID, day string) (models.DailyLog, error)
}

// DayReader lists every log a user recorded on one day.
type DayReader interface {
	GetLogsForDay(userID, day string) ([]models.DailyLog, error)
}

// Lookup adapts a LogReader into a StatusFunc scoped to one (user, system).
func Lookup(r LogReader, userID, systemID string) StatusFunc {
	return func(day string) (models.Status, error) {
		log, err := r.GetLog(userID, systemID, day)
		if errors.Is(err, errors.ErrNotFound) {
			return models.StatusAbsent, nil
		}
		if err != nil {
			return models.StatusAbsent, err
		}
		return log.Status, nil
	}
}

// FromLogs builds a StatusFunc over logs that were already fetched for one system.
func FromLogs(logs []models.DailyLog) StatusFunc {
	byDay := make(map[string]models.Status, len(logs))
	for _, l := range logs {
		byDay[l.Day] = l.Status
	}
	return FromMap(byDay)
}

// FromMap builds a StatusFunc over a day -> status map. Missing days are absent.
func FromMap(byDay map[string]models.Status) StatusFunc {
	return func(day string) (models.Status, error) {
		return byDay[day], nil
	}
}
