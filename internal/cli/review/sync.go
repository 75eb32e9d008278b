package review

import (
	"fmt"

	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/models"
	"github.com/julianstephens/rythm/internal/tui"
)

type SyncCmd struct {
	Show    SyncShowCmd    `cmd:"" help:"Show the weekly sync for a week." default:"1"`
	Save    SyncSaveCmd    `cmd:"" help:"Write or update this week's sync."`
	History SyncHistoryCmd `cmd:"" help:"List past weekly syncs."`
}

type SyncShowCmd struct {
	Date string `help:"Any day of the week (default: the tracked day)."`
}

func (c *SyncShowCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	sync, err := ctx.Tracker.WeeklySync(day)
	if errors.Is(err, errors.ErrNotFound) {
		fmt.Println("No weekly sync for this week yet.")
		return nil
	}
	if err != nil {
		return err
	}
	printSync(sync)
	return nil
}

type SyncSaveCmd struct {
	Date       string `help:"Any day of the week (default: the tracked day)."`
	Win        string `help:"What went well."`
	Pattern    string `help:"The pattern you noticed."`
	HardDays   string `help:"Which days were hard, and why."`
	Adjust     string `help:"System to adjust (name or ID)."`
	Adjustment string `help:"How the system changes."`
	Intention  string `help:"Intention for next week."`
}

func (c *SyncSaveCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	var form tui.SyncForm
	if existing, err := ctx.Tracker.WeeklySync(day); err == nil {
		form = tui.SyncFormFrom(existing)
	} else if !errors.Is(err, errors.ErrNotFound) {
		return err
	}
	overlay(&form.Win, c.Win)
	overlay(&form.Pattern, c.Pattern)
	overlay(&form.HardDays, c.HardDays)
	overlay(&form.AdjustedSystemID, c.Adjust)
	overlay(&form.AdjustmentNote, c.Adjustment)
	overlay(&form.Intention, c.Intention)

	if form.Win == "" || form.Pattern == "" {
		systems, err := ctx.Tracker.Systems(true)
		if err != nil {
			return err
		}
		if err := tui.NewSyncForm(&form, systems).Run(); err != nil {
			return err
		}
	}

	saved, err := ctx.Tracker.SaveWeeklySync(form.WeeklySync(day))
	if err != nil {
		return err
	}
	fmt.Printf("Saved weekly sync for the week of %s\n", saved.WeekStart)
	return nil
}

func overlay(field *string, v string) {
	if v != "" {
		*field = v
	}
}

type SyncHistoryCmd struct {
	Limit int `help:"Number of weeks to show." default:"12"`
}

func (c *SyncHistoryCmd) Run(ctx *cli.Context) error {
	syncs, err := ctx.Tracker.SyncHistory(c.Limit)
	if err != nil {
		return err
	}
	if len(syncs) == 0 {
		fmt.Println("No weekly syncs yet.")
		return nil
	}
	for i, sync := range syncs {
		if i > 0 {
			fmt.Println()
		}
		printSync(sync)
	}
	return nil
}

func printSync(w models.WeeklySync) {
	fmt.Println(cli.HeaderStyle.Render("Weekly sync, week of " + w.WeekStart))
	fmt.Printf("  Win:        %s\n", w.Win)
	fmt.Printf("  Pattern:    %s\n", w.Pattern)
	if w.HardDays != "" {
		fmt.Printf("  Hard days:  %s\n", w.HardDays)
	}
	if w.AdjustedSystemID != nil {
		note := w.AdjustmentNote
		if note == "" {
			note = "(no note)"
		}
		fmt.Printf("  Adjusting:  %s\n", note)
	}
	if w.Intention != "" {
		fmt.Printf("  Intention:  %s\n", w.Intention)
	}
}
