package tracking

import (
	"fmt"

	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/models"
)

type MarkCmd struct {
	System string `arg:"" help:"System name or ID."`
	Status string `arg:"" help:"done (d), survival (s), skip (x) or clear."`
	Date   string `help:"Day in YYYY-MM-DD format (default: the tracked day)."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	sys, err := ctx.Tracker.Mark(c.System, day, status)
	if err != nil {
		return err
	}

	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}
	streak, streakErr := ctx.Tracker.Streak(sys, day, settings)
	fmt.Printf("%s %s: %s on %s (streak: %s)\n", cli.StatusCell(status), sys.Name, status, day, cli.FormatStreak(streak, streakErr))
	return nil
}
