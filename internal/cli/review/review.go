package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/rythm/internal/adherence"
	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/errors"
)

var (
	cellStyle  = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	nameStyle  = lipgloss.NewStyle().Width(24)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	skipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")).Italic(true)
)

type ReviewCmd struct {
	Date string `help:"Any day of the week to review (default: the tracked day)."`
}

func (c *ReviewCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	r, err := ctx.Tracker.Review(day)
	if err != nil {
		return err
	}

	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Week of %s to %s", r.Week.Start(), r.Week.End())
	if r.Week.Contains(ctx.Tracker.Today(settings)) {
		title += " (in progress)"
	}
	fmt.Println(cli.HeaderStyle.Render(title))
	fmt.Println()
	if len(r.Rows) == 0 {
		fmt.Println("No systems to review.")
		return nil
	}
	fmt.Println(renderMatrix(r))

	fmt.Println()
	sync, err := ctx.Tracker.WeeklySync(day)
	if errors.Is(err, errors.ErrNotFound) {
		fmt.Println("No weekly sync for this week yet. Reflect with 'rythm sync save'.")
		return nil
	}
	if err != nil {
		return err
	}
	printSync(sync)
	return nil
}

func renderMatrix(r adherence.Review) string {
	header := []string{nameStyle.Render("")}
	for _, name := range constants.WeekdayNames {
		header = append(header, cellStyle.Render(name[:3]))
	}
	header = append(header, cellStyle.Render("%"))

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, row := range r.Rows {
		name := row.System.Name
		if row.System.Paused {
			name += " (paused)"
		}
		cells := []string{nameStyle.Render(name)}
		for _, s := range row.Statuses {
			cells = append(cells, cellStyle.Render(cli.StatusCell(s)))
		}
		cells = append(cells, cellStyle.Render(fmt.Sprintf("%d", row.Completion)))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		if row.Pattern.Label != "" {
			style := labelStyle
			if row.Pattern.HasSkipDay() {
				style = skipStyle
			}
			lines = append(lines, nameStyle.Render("")+style.Render(row.Pattern.Label))
		}
	}

	total := r.Totals()
	lines = append(lines, "", fmt.Sprintf("Overall: %d%% %s", total, labelStyle.Render(adherence.CompletionLabel(total))))
	return strings.Join(lines, "\n")
}
