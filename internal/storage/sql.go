package storage

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/models"
)

// NullStatus converts a status into its column value. A cleared status is
// stored as NULL; an absent status has no row and cannot be saved.
func NullStatus(s models.Status) (sql.NullString, error) {
	switch s {
	case models.StatusCleared:
		return sql.NullString{}, nil
	case models.StatusDone, models.StatusSurvival, models.StatusSkip:
		return sql.NullString{String: string(s), Valid: true}, nil
	default:
		return sql.NullString{}, fmt.Errorf("cannot store status %q", s.String())
	}
}

// StatusFromNull is the inverse of NullStatus.
func StatusFromNull(v sql.NullString) models.Status {
	if !v.Valid {
		return models.StatusCleared
	}
	return models.Status(v.String)
}

// NotFound translates sql.ErrNoRows into errors.ErrNotFound, naming the
// record that was looked up. Other errors are returned unchanged.
func NotFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", errors.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}

// NullString maps the empty string to NULL.
func NullString(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// StringPtr is the inverse of NullString.
func StringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
