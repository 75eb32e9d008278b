package postgres

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

	if err := row.Scan(&w.ID, &w.UserID, &w.WeekStart, &w.Win, &w.Pattern, &w.HardDays,
		&adjusted, &w.AdjustmentNote, &w.Intention, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return models.WeeklySync{}, err
	}
	w.AdjustedSystemID = storage.StringPtr(adjusted)
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return w, nil
}

func (s *Store) SaveWeeklySync(w models.WeeklySync) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = now
	}

	_, err := s.db.Exec(`
		INSERT INTO weekly_syncs (`+syncColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			win = EXCLUDED.win,
			pattern = EXCLUDED.pattern,
			hard_days = EXCLUDED.hard_days,
			adjusted_system_id = EXCLUDED.adjusted_system_id,
			adjustment_note = EXCLUDED.adjustment_note,
			intention = EXCLUDED.intention,
			updated_at = EXCLUDED.updated_at`,
		w.ID, w.UserID, w.WeekStart, w.Win, w.Pattern, w.HardDays, storage.NullString(w.AdjustedSystemID),
		w.AdjustmentNote, w.Intention, w.CreatedAt, w.UpdatedAt)
	return err
}

func (s *Store) GetWeeklySync(userID, weekStart string) (models.WeeklySync, error) {
	row := s.db.QueryRow(`
		SELECT `+syncColumns+`
		FROM weekly_syncs WHERE user_id = $1 AND week_start = $2`, userID, weekStart)

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
		FROM weekly_syncs WHERE user_id = $1
		ORDER BY week_start DESC LIMIT $2`, userID, limit)
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
