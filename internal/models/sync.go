package models

import "time"

// WeeklySync is the once-per-week reflection, unique per (user, week start).
type WeeklySync struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	WeekStart        string    `json:"week_start"` // Monday, YYYY-MM-DD
	Win              string    `json:"win"`
	Pattern          string    `json:"pattern"`
	HardDays         string    `json:"hard_days"`
	AdjustedSystemID *string   `json:"adjusted_system_id,omitempty"`
	AdjustmentNote   string    `json:"adjustment_note,omitempty"`
	Intention        string    `json:"intention"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
