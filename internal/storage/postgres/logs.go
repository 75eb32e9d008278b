package postgres

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

	if err := row.Scan(&l.ID, &l.UserID, &l.SystemID, &l.Day, &status, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return models.DailyLog{}, err
	}
	l.Status = storage.StatusFromNull(status)
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return l, nil
}

func (s *Store) SaveLog(l models.DailyLog) error {
	status, err := storage.NullStatus(l.Status)
	if err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_logs (`+logColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, system_id, day) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at,
			deleted_at = NULL`,
		l.ID, l.UserID, l.SystemID, l.Day, status, l.CreatedAt, l.UpdatedAt)
	return err
}

func (s *Store) GetLog(userID, systemID, day string) (models.DailyLog, error) {
	row := s.db.QueryRow(`
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE user_id = $1 AND system_id = $2 AND day = $3 AND deleted_at IS NULL`, userID, systemID, day)

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
		WHERE user_id = $1 AND day = $2 AND deleted_at IS NULL
		ORDER BY system_id`, userID, day)
}

func (s *Store) GetLogsForSystem(userID, systemID, startDay, endDay string) ([]models.DailyLog, error) {
	return s.queryLogs(`
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE user_id = $1 AND system_id = $2 AND day >= $3 AND day <= $4 AND deleted_at IS NULL
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
