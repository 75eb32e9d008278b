package tracking

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rythm/internal/cli"
)

type StreakCmd struct {
	System string `arg:"" optional:"" help:"System name or ID (default: all active systems)."`
	Date   string `help:"Day the streak ends on (default: the tracked day)."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}

	systems, err := ctx.Tracker.Systems(false)
	if err != nil {
		return err
	}
	if c.System != "" {
		sys, err := ctx.Tracker.FindSystem(c.System)
		if err != nil {
			return err
		}
		systems = systems[:0]
		systems = append(systems, sys)
	}

	for _, sys := range systems {
		n, err := ctx.Tracker.Streak(sys, day, settings)
		fmt.Printf("%-24s %s\n", sys.Name, cli.FormatStreak(n, err))
	}
	return nil
}

type HistoryCmd struct {
	Days   int    `help:"Number of days to show." default:"14"`
	System string `help:"Show one system only."`
	Date   string `help:"Last day shown (default: the tracked day)."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	systems, err := ctx.Tracker.Systems(true)
	if err != nil {
		return err
	}
	if c.System != "" {
		sys, err := ctx.Tracker.FindSystem(c.System)
		if err != nil {
			return err
		}
		systems = append(systems[:0], sys)
	}
	if len(systems) == 0 {
		fmt.Println("No systems found.")
		return nil
	}

	fmt.Printf("History, %d days to %s (✓ done  ⚡ survival  ✗ skip  ○ none)\n\n", c.Days, day)
	for _, sys := range systems {
		_, statuses, err := ctx.Tracker.History(sys, day, c.Days)
		if err != nil {
			return err
		}
		var b strings.Builder
		for _, s := range statuses {
			b.WriteString(cli.StatusCell(s))
		}
		fmt.Printf("%-24s %s\n", sys.Name, b.String())
	}
	return nil
}
