package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/rythm/internal/models"
	"github.com/julianstephens/rythm/internal/storage"
)

const systemColumns = "id, user_id, name, trigger, full_action, survival_action, paused, created_at, deleted_at"

func scanSystem(row rowScanner) (models.System, error) {
	var sys models.System
	var deletedAt sql.NullTime

	if err := row.Scan(&sys.ID, &sys.UserID, &sys.Name, &sys.Trigger, &sys.FullAction,
		&sys.SurvivalAction, &sys.Paused, &sys.CreatedAt, &deletedAt); err != nil {
		return models.System{}, err
	}
	sys.CreatedAt = sys.CreatedAt.UTC()
	sys.DeletedAt = timePtr(deletedAt)
	return sys, nil
}

func (s *Store) AddSystem(sys models.System) error {
	return s.UpdateSystem(sys)
}

func (s *Store) GetSystem(userID, id string) (models.System, error) {
	row := s.db.QueryRow(`
		SELECT `+systemColumns+`
		FROM systems WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL`, userID, id)

	sys, err := scanSystem(row)
	if err != nil {
		return models.System{}, storage.NotFound(err, "system %s", id)
	}
	return sys, nil
}

func (s *Store) GetSystemByName(userID, name string) (models.System, error) {
	row := s.db.QueryRow(`
		SELECT `+systemColumns+`
		FROM systems WHERE user_id = $1 AND lower(name) = lower($2) AND deleted_at IS NULL`, userID, name)

	sys, err := scanSystem(row)
	if err != nil {
		return models.System{}, storage.NotFound(err, "system %q", name)
	}
	return sys, nil
}

func (s *Store) GetAllSystems(userID string, includePaused, includeDeleted bool) ([]models.System, error) {
	query := "SELECT " + systemColumns + " FROM systems WHERE user_id = $1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includePaused {
		query += " AND NOT paused"
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
	err := s.db.QueryRow("SELECT COUNT(*) FROM systems WHERE user_id = $1 AND deleted_at IS NULL", userID).Scan(&n)
	return n, err
}

func (s *Store) UpdateSystem(sys models.System) error {
	_, err := s.db.Exec(`
		INSERT INTO systems (`+systemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			trigger = EXCLUDED.trigger,
			full_action = EXCLUDED.full_action,
			survival_action = EXCLUDED.survival_action,
			paused = EXCLUDED.paused,
			deleted_at = EXCLUDED.deleted_at`,
		sys.ID, sys.UserID, sys.Name, sys.Trigger, sys.FullAction, sys.SurvivalAction,
		sys.Paused, sys.CreatedAt.UTC(), nullTime(sys.DeletedAt))
	return err
}

func (s *Store) DeleteSystem(userID, id string) error {
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec("UPDATE systems SET deleted_at = $1 WHERE user_id = $2 AND id = $3 AND deleted_at IS NULL", now, userID, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return storage.NotFound(sql.ErrNoRows, "system %s", id)
	}
	if _, err := tx.Exec("UPDATE daily_logs SET deleted_at = $1 WHERE user_id = $2 AND system_id = $3 AND deleted_at IS NULL", now, userID, id); err != nil {
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

	var deletedAt sql.NullTime
	err = tx.QueryRow("SELECT deleted_at FROM systems WHERE user_id = $1 AND id = $2", userID, id).Scan(&deletedAt)
	if err != nil {
		return storage.NotFound(err, "system %s", id)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("system %s is not deleted", id)
	}

	if _, err := tx.Exec("UPDATE systems SET deleted_at = NULL WHERE user_id = $1 AND id = $2", userID, id); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE daily_logs SET deleted_at = NULL WHERE user_id = $1 AND system_id = $2 AND deleted_at = $3", userID, id, deletedAt.Time); err != nil {
		return fmt.Errorf("failed to restore logs for system %s: %w", id, err)
	}
	return tx.Commit()
}
