package tracking

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rythm/internal/cli"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	d, err := ctx.Tracker.Dashboard()
	if err != nil {
		return err
	}

	title := "Today, " + d.Day
	if !d.IsToday() {
		title = "Tracking " + d.Day + " (today is " + d.Today + ")"
	}
	fmt.Println(cli.HeaderStyle.Render(title))
	if d.SurvivalMode {
		fmt.Println(cli.WarnStyle.Render("Survival mode is on: the minimum counts."))
	}
	fmt.Println()

	if len(d.Systems) == 0 {
		fmt.Println("No active systems. Add one with 'rythm system add'.")
		return nil
	}

	for _, row := range d.Systems {
		action := row.System.ActionFor(d.SurvivalMode)
		if d.SurvivalMode && !row.Status.Recorded() {
			action = cli.WarnStyle.Render(action)
		}
		fmt.Printf("%s %-24s %s\n", cli.StatusCell(row.Status), row.System.Name, cli.FormatStreak(row.Streak, row.StreakErr))
		fmt.Printf("    %s\n", action)
	}
	fmt.Printf("\nRecorded: %d/%d\n", d.Recorded, len(d.Systems))

	if len(d.Comebacks) > 0 {
		names := make(map[string]string, len(d.Systems))
		for _, row := range d.Systems {
			names[row.System.ID] = row.System.Name
		}
		fmt.Println()
		fmt.Println(cli.WarnStyle.Render("Time for a comeback"))
		for _, cb := range d.Comebacks {
			fmt.Printf("  %s: missed %d days in a row (%s)\n", names[cb.SystemID], cb.ConsecutiveMisses, strings.Join(cb.MissedDates, ", "))
		}
		fmt.Println("  Restart small: rythm comeback --restart <system>")
	}
	return nil
}
