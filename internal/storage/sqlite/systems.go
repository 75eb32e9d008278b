package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/rythm/internal/models"
	"github.com/julianstephens/rythm/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

const systemColumns = "id, user_id, name, trigger, full_action, survival_action, paused, created_at, deleted_at"

func scanSystem(row rowScanner) (models.System, error) {
	var sys models.System
	var createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&sys.ID, &sys.UserID, &sys.Name, &sys.Trigger, &sys.FullAction,
		&sys.SurvivalAction, &sys.Paused, &createdAt, &deletedAt); err != nil {
		return models.System{}, err
	}

	var err error
	if sys.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.System{}, err
	}
	if sys.DeletedAt, err = parseNullTime("deleted_at", deletedAt); err != nil {
		return models.System{}, err
	}
	return sys, nil
}

func (s *Store) AddSystem(sys models.System) error {
	return s.UpdateSystem(sys)
}

func (s *Store) GetSystem(userID, id string) (models.System, error) {
	row := s.db.QueryRow(`
		SELECT `+systemColumns+`
		FROM systems WHERE user_id = ? AND id = ? AND deleted_at IS NULL`, userID, id)

	sys, err := scanSystem(row)
	if err != nil {
		return models.System{}, storage.NotFound(err, "system %s", id)
	}
	return sys, nil
}

func (s *Store) GetSystemByName(userID, name string) (models.System, error) {
	row := s.db.QueryRow(`
		SELECT `+systemColumns+`
		FROM systems WHERE user_id = ? AND name = ? COLLATE NOCASE AND deleted_at IS NULL`, userID, name)

	sys, err := scanSystem(row)
	if err != nil {
		return models.System{}, storage.NotFound(err, "system %q", name)
	}
	return sys, nil
}

func (s *Store) GetAllSystems(userID string, includePaused, includeDeleted bool) ([]models.System, error) {
	query := "SELECT " + systemColumns + " FROM systems WHERE user_id = ?"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includePaused {
		query += " AND paused = 0"
	}
	query += " ORDER BY created_at, name"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var systems []models.System
	for rows.Next() {
		sys, err := scanSystem(rows)
		if err != nil {
			return nil, err
		}
		systems = append(systems, sys)
	}
	return systems, rows.Err()
}

func (s *Store) CountSystems(userID string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM systems WHERE user_id = ? AND deleted_at IS NULL", userID).Scan(&n)
	return n, err
}

func (s *Store) UpdateSystem(sys models.System) error {
	_, err := s.db.Exec(`
		INSERT INTO systems (`+systemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			trigger = excluded.trigger,
			full_action = excluded.full_action,
			survival_action = excluded.survival_action,
			paused = excluded.paused,
			deleted_at = excluded.deleted_at`,
		sys.ID, sys.UserID, sys.Name, sys.Trigger, sys.FullAction, sys.SurvivalAction,
		sys.Paused, formatTime(sys.CreatedAt), nullTime(sys.DeletedAt))
	return err
}

func (s *Store) DeleteSystem(userID, id string) error {
	now := formatTime(time.Now())

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec("UPDATE systems SET deleted_at = ? WHERE user_id = ? AND id = ? AND deleted_at IS NULL", now, userID, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return storage.NotFound(sql.ErrNoRows, "system %s", id)
	}
	if _, err := tx.Exec("UPDATE daily_logs SET deleted_at = ? WHERE user_id = ? AND system_id = ? AND deleted_at IS NULL", now, userID, id); err != nil {
		return fmt.Errorf("failed to delete logs for system %s: %w", id, err)
	}
	return tx.Commit()
}

func (s *Store) RestoreSystem(userID, id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deletedAt sql.NullString
	err = tx.QueryRow("SELECT deleted_at FROM systems WHERE user_id = ? AND id = ?", userID, id).Scan(&deletedAt)
	if err != nil {
		return storage.NotFound(err, "system %s", id)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("system %s is not deleted", id)
	}

	if _, err := tx.Exec("UPDATE systems SET deleted_at = NULL WHERE user_id = ? AND id = ?", userID, id); err != nil {
		return err
	}
	// Only logs removed together with the system come back.
	if _, err := tx.Exec("UPDATE daily_logs SET deleted_at = NULL WHERE user_id = ? AND system_id = ? AND deleted_at = ?", userID, id, deletedAt.String); err != nil {
		return fmt.Errorf("failed to restore logs for system %s: %w", id, err)
	}
	return tx.Commit()
}
