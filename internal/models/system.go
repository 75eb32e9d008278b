package models

import (
	"fmt"
	"strings"
	"time"
)

// System is a user-defined habit with a full-effort and a minimal "survival" action.
type System struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Trigger        string     `json:"trigger"`
	FullAction     string     `json:"full_action"`
	SurvivalAction string     `json:"survival_action"`
	Paused         bool       `json:"paused"`
	CreatedAt      time.Time  `json:"created_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// Active reports whether the system is neither paused nor deleted.
func (s System) Active() bool {
	return !s.Paused && s.DeletedAt == nil
}

// Validate checks that the user-editable fields of a system are present.
func (s *System) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("system name cannot be empty")
	}
	if strings.TrimSpace(s.FullAction) == "" {
		return fmt.Errorf("full action cannot be empty")
	}
	if strings.TrimSpace(s.SurvivalAction) == "" {
		return fmt.Errorf("survival action cannot be empty")
	}
	return nil
}

// ActionFor returns the action to emphasize given the user's survival mode.
func (s System) ActionFor(survivalMode bool) string {
	if survivalMode {
		return s.SurvivalAction
	}
	return s.FullAction
}
