package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/rythm/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingSurvivalMode:
			settings.SurvivalMode = value == "true"
		case constants.SettingTrackerDate:
			settings.TrackerDate = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingMaxLookbackDays:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.MaxLookbackDays = n
		case constants.SettingComebackWindow:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.ComebackWindow = n
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingSurvivalMode:    strconv.FormatBool(settings.SurvivalMode),
		constants.SettingTrackerDate:     settings.TrackerDate,
		constants.SettingTimezone:        settings.Timezone,
		constants.SettingMaxLookbackDays: strconv.Itoa(settings.MaxLookbackDays),
		constants.SettingComebackWindow:  strconv.Itoa(settings.ComebackWindow),
	}
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings() Settings {
	return Settings{
		SurvivalMode:    constants.DefaultSurvivalMode,
		Timezone:        constants.DefaultTimezone,
		MaxLookbackDays: constants.DefaultMaxLookbackDays,
		ComebackWindow:  constants.DefaultComebackWindow,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.MaxLookbackDays <= 0 {
		settings.MaxLookbackDays = constants.DefaultMaxLookbackDays
	}
	if settings.ComebackWindow <= 0 {
		settings.ComebackWindow = constants.DefaultComebackWindow
	}
}
