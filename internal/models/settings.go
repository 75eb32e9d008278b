package models

// Settings holds per-user preferences
type Settings struct {
	SurvivalMode    bool   `json:"survival_mode"`     // emphasize the survival action of every system
	TrackerDate     string `json:"tracker_date"`      // the day the tracker view is showing, YYYY-MM-DD; empty means today
	Timezone        string `json:"timezone"`          // IANA timezone name (e.g. "Europe/London", or "Local" for system timezone)
	MaxLookbackDays int    `json:"max_lookback_days"` // upper bound on the backward streak scan
	ComebackWindow  int    `json:"comeback_window"`   // number of past days inspected for a comeback
}
