package models

import "time"

// DailyLog is the single record for one (user, system, day).
type DailyLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SystemID  string    `json:"system_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
