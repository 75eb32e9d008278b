package settings

import (
	"fmt"

	"github.com/julianstephens/rythm/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone       *string `help:"IANA timezone used to decide what day it is (or 'Local')."`
	MaxLookback    *int    `help:"Maximum number of days a streak scan walks back."`
	ComebackWindow *int    `help:"Number of past days inspected for a comeback."`
	Survival       *bool   `help:"Emphasize survival actions everywhere."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		trackerDate := settings.TrackerDate
		if trackerDate == "" {
			trackerDate = "today"
		}
		fmt.Println("Current Settings:")
		fmt.Printf("  User:              %s\n", ctx.Tracker.UserID())
		fmt.Printf("  Timezone:          %s\n", settings.Timezone)
		fmt.Printf("  Tracked Day:       %s\n", trackerDate)
		fmt.Printf("  Survival Mode:     %v\n", settings.SurvivalMode)
		fmt.Printf("  Max Lookback:      %d days\n", settings.MaxLookbackDays)
		fmt.Printf("  Comeback Window:   %d days\n", settings.ComebackWindow)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.MaxLookback != nil {
		settings.MaxLookbackDays = *c.MaxLookback
		updated = true
	}
	if c.ComebackWindow != nil {
		settings.ComebackWindow = *c.ComebackWindow
		updated = true
	}
	if c.Survival != nil {
		settings.SurvivalMode = *c.Survival
		updated = true
	}

	if updated {
		if err := ctx.Tracker.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
