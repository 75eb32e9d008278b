package sqlite

import (
	"database/sql"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/rythm/internal/models"
	"github.com/julianstephens/rythm/internal/storage"
)

const syncColumns = "id, user_id, week_start, win, pattern, hard_days, adjusted_system_id, adjustment_note, intention, created_at, updated_at"

func scanSync(row rowScanner) (models.WeeklySync, error) {
	var w models.WeeklySync
	var adjusted sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&w.ID, &w.UserID, &w.WeekStart, &w.Win, &w.Pattern, &w.HardDays,
		&adjusted, &w.AdjustmentNote, &w.Intention, &createdAt, &updatedAt); err != nil {
		return models.WeeklySync{}, err
	}
	w.AdjustedSystemID = storage.StringPtr(adjusted)

	var err error
	if w.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.WeeklySync{}, err
	}
	if w.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.WeeklySync{}, err
	}
	return w, nil
}

func (s *Store) SaveWeeklySync(w models.WeeklySync) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	now := time.Now()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = now
	}

	_, err := s.db.Exec(`
		INSERT INTO weekly_syncs (`+syncColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, week_start) DO UPDATE SET
			win = excluded.win,
			pattern = excluded.pattern,
			hard_days = excluded.hard_days,
			adjusted_system_id = excluded.adjusted_system_id,
			adjustment_note = excluded.adjustment_note,
			intention = excluded.intention,
			updated_at = excluded.updated_at`,
		w.ID, w.UserID, w.WeekStart, w.Win, w.Pattern, w.HardDays, storage.NullString(w.AdjustedSystemID),
		w.AdjustmentNote, w.Intention, formatTime(w.CreatedAt), formatTime(w.UpdatedAt))
	return err
}

func (s *Store) GetWeeklySync(userID, weekStart string) (models.WeeklySync, error) {
	row := s.db.QueryRow(`
		SELECT `+syncColumns+`
		FROM weekly_syncs WHERE user_id = ? AND week_start = ?`, userID, weekStart)

	w, err := scanSync(row)
	if err != nil {
		return models.WeeklySync{}, storage.NotFound(err, "weekly sync for %s", weekStart)
	}
	return w, nil
}

func (s *Store) GetWeeklySyncs(userID string, limit int) ([]models.WeeklySync, error) {
	if limit <= 0 {
		limit = math.MaxInt32
	}
	rows, err := s.db.Query(`
		SELECT `+syncColumns+`
		FROM weekly_syncs WHERE user_id = ?
		ORDER BY week_start DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var syncs []models.WeeklySync
	for rows.Next() {
		w, err := scanSync(rows)
		if err != nil {
			return nil, err
		}
		syncs = append(syncs, w)
	}
	return syncs, rows.Err()
}
