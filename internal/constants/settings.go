package constants

const (
	SettingSurvivalMode    = "survival_mode"
	SettingTrackerDate     = "tracker_date"
	SettingTimezone        = "timezone"
	SettingMaxLookbackDays = "max_lookback_days"
	SettingComebackWindow  = "comeback_window"

	DefaultSurvivalMode = false
	DefaultTimezone     = "Local" // Use system local timezone by default

	// DefaultMaxLookbackDays bounds the backward streak scan (three years of days)
	DefaultMaxLookbackDays = 3 * 365
	DefaultComebackWindow  = ComebackThreshold
)
