package sqlite

import (
	"github.com/julianstephens/rythm/internal/models"
)

// GetSettings returns the user's settings with defaults filled in for any
// key that has never been saved.
func (s *Store) GetSettings(userID string) (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings WHERE user_id = ?", userID)
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	settings, err := models.MapToSettings(data)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *Store) SaveSettings(userID string, settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (user_id, key, value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.Exec(userID, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}
