package storage

import "github.com/julianstephens/rythm/internal/models"

// Provider is the persistence boundary for every rythm command. All reads
// and writes are scoped to a user id. Single-record getters return an error
// wrapping errors.ErrNotFound when no live row matches.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Settings
	GetSettings(userID string) (models.Settings, error)
	SaveSettings(userID string, settings models.Settings) error

	// Systems
	AddSystem(models.System) error
	GetSystem(userID, id string) (models.System, error)
	GetSystemByName(userID, name string) (models.System, error)
	GetAllSystems(userID string, includePaused, includeDeleted bool) ([]models.System, error)
	// CountSystems returns the number of non-deleted systems, paused included.
	CountSystems(userID string) (int, error)
	UpdateSystem(models.System) error
	// DeleteSystem soft-deletes the system together with its daily logs.
	DeleteSystem(userID, id string) error
	RestoreSystem(userID, id string) error

	// Daily logs
	// SaveLog inserts or replaces the single log for (user, system, day).
	SaveLog(models.DailyLog) error
	GetLog(userID, systemID, day string) (models.DailyLog, error)
	GetLogsForDay(userID, day string) ([]models.DailyLog, error)
	// GetLogsForSystem returns the logs of one system between startDay and
	// endDay inclusive, oldest first.
	GetLogsForSystem(userID, systemID, startDay, endDay string) ([]models.DailyLog, error)

	// Weekly syncs
	// SaveWeeklySync inserts or replaces the sync for (user, week start).
	SaveWeeklySync(models.WeeklySync) error
	GetWeeklySync(userID, weekStart string) (models.WeeklySync, error)
	// GetWeeklySyncs returns up to limit syncs, newest week first. A limit of
	// zero or less returns every sync.
	GetWeeklySyncs(userID string, limit int) ([]models.WeeklySync, error)
}
