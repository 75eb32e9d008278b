package tracking

import (
	"fmt"

	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/cli"
)

type TrackCmd struct {
	Show  TrackShowCmd  `cmd:"" help:"Show the tracked day." default:"1"`
	Prev  TrackPrevCmd  `cmd:"" help:"Move the tracked day back."`
	Next  TrackNextCmd  `cmd:"" help:"Move the tracked day forward, up to today."`
	Today TrackTodayCmd `cmd:"" help:"Track today."`
	Set   TrackSetCmd   `cmd:"" help:"Track a specific day."`
}

type TrackShowCmd struct{}

func (c *TrackShowCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay("")
	if err != nil {
		return err
	}
	return report(ctx, day)
}

type TrackPrevCmd struct {
	Days int `arg:"" optional:"" default:"1" help:"Number of days."`
}

func (c *TrackPrevCmd) Run(ctx *cli.Context) error {
	return step(ctx, -c.Days)
}

type TrackNextCmd struct {
	Days int `arg:"" optional:"" default:"1" help:"Number of days."`
}

func (c *TrackNextCmd) Run(ctx *cli.Context) error {
	return step(ctx, c.Days)
}

type TrackTodayCmd struct{}

func (c *TrackTodayCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Tracker.SetViewedDay("")
	if err != nil {
		return err
	}
	return report(ctx, day)
}

type TrackSetCmd struct {
	Date string `arg:"" help:"Day in YYYY-MM-DD format."`
}

func (c *TrackSetCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Tracker.SetViewedDay(c.Date)
	if err != nil {
		return err
	}
	return report(ctx, day)
}

func step(ctx *cli.Context, delta int) error {
	day, err := ctx.Tracker.StepViewedDay(delta)
	if err != nil {
		return err
	}
	return report(ctx, day)
}

func report(ctx *cli.Context, day string) error {
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}
	behind, err := calendar.DaysBetween(day, ctx.Tracker.Today(settings))
	if err != nil {
		return err
	}
	switch behind {
	case 0:
		fmt.Printf("Tracking %s (today)\n", day)
	case 1:
		fmt.Printf("Tracking %s (yesterday)\n", day)
	default:
		fmt.Printf("Tracking %s (%d days ago)\n", day, behind)
	}
	return nil
}
