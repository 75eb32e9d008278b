package tracking

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rythm/internal/cli"
)

type ComebackCmd struct {
	Restart string `help:"Turn on survival mode and log a survival day for this system today." placeholder:"SYSTEM"`
}

func (c *ComebackCmd) Run(ctx *cli.Context) error {
	if c.Restart != "" {
		sys, err := ctx.Tracker.RestartWithSurvival(c.Restart)
		if err != nil {
			return err
		}
		fmt.Printf("Survival mode on. Logged a survival day for %s: %s\n", sys.Name, sys.SurvivalAction)
		return nil
	}

	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}
	systems, err := ctx.Tracker.Systems(false)
	if err != nil {
		return err
	}
	flagged, err := ctx.Tracker.Comebacks(systems, settings)
	if err != nil {
		return err
	}
	if len(flagged) == 0 {
		fmt.Println("No comebacks needed. Keep going.")
		return nil
	}

	names := make(map[string]string, len(systems))
	for _, sys := range systems {
		names[sys.ID] = sys.Name
	}
	for _, cb := range flagged {
		fmt.Printf("%s %s: missed %d days in a row (%s)\n", cli.WarnStyle.Render("!"), names[cb.SystemID], cb.ConsecutiveMisses, strings.Join(cb.MissedDates, ", "))
	}
	return nil
}

type SurvivalCmd struct {
	State string `arg:"" optional:"" enum:"on,off,status" default:"status" help:"on, off or status."`
}

func (c *SurvivalCmd) Run(ctx *cli.Context) error {
	switch c.State {
	case "on", "off":
		if _, err := ctx.Tracker.SetSurvivalMode(c.State == "on"); err != nil {
			return err
		}
		fmt.Printf("Survival mode %s\n", c.State)
	default:
		settings, err := ctx.Tracker.Settings()
		if err != nil {
			return err
		}
		state := "off"
		if settings.SurvivalMode {
			state = "on"
		}
		fmt.Printf("Survival mode is %s\n", state)
	}
	return nil
}
