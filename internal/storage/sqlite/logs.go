package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/rythm/internal/models"
	"github.com/julianstephens/rythm/internal/storage"
)

const logColumns = "id, user_id, system_id, day, status, created_at, updated_at"

func scanLog(row rowScanner) (models.DailyLog, error) {
	var l models.DailyLog
	var status sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&l.ID, &l.UserID, &l.SystemID, &l.Day, &status, &createdAt, &updatedAt); err != nil {
		return models.DailyLog{}, err
	}
	l.Status = storage.StatusFromNull(status)

	var err error
	if l.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.DailyLog{}, err
	}
	if l.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.DailyLog{}, err
	}
	return l, nil
}

// SaveLog upserts on (user_id, system_id, day). The id and created_at of an
// existing row are kept, and a soft-deleted row is revived.
func (s *Store) SaveLog(l models.DailyLog) error {
	status, err := storage.NullStatus(l.Status)
	if err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_logs (`+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, system_id, day) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at,
			deleted_at = NULL`,
		l.ID, l.UserID, l.SystemID, l.Day, status, formatTime(l.CreatedAt), formatTime(l.UpdatedAt))
	return err
}

func (s *Store) GetLog(userID, systemID, day string) (models.DailyLog, error) {
	row := s.db.QueryRow(`
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE user_id = ? AND system_id = ? AND day = ? AND deleted_at IS NULL`, userID, systemID, day)

	l, err := scanLog(row)
	if err != nil {
		return models.DailyLog{}, storage.NotFound(err, "log for %s on %s", systemID, day)
	}
	return l, nil
}

func (s *Store) GetLogsForDay(userID, day string) ([]models.DailyLog, error) {
	return s.queryLogs(`
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE user_id = ? AND day = ? AND deleted_at IS NULL
		ORDER BY system_id`, userID, day)
}

func (s *Store) GetLogsForSystem(userID, systemID, startDay, endDay string) ([]models.DailyLog, error) {
	return s.queryLogs(`
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE user_id = ? AND system_id = ? AND day >= ? AND day <= ? AND deleted_at IS NULL
		ORDER BY day`, userID, systemID, startDay, endDay)
}

func (s *Store) queryLogs(query string, args ...any) ([]models.DailyLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
