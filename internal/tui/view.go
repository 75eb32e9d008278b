package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateWeek:
		content = m.viewWeek()
	case StateAddSystem, StateWeeklySync:
		content = m.form.View()
	}

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render(m.err.Error())
	case m.message != "":
		status = mutedStyle.Render(m.message)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Week"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func statusCell(s models.Status) string {
	switch s {
	case models.StatusDone:
		return doneStyle.Render(s.Symbol())
	case models.StatusSurvival:
		return survivalStyle.Render(s.Symbol())
	case models.StatusSkip:
		return skipStyle.Render(s.Symbol())
	default:
		return mutedStyle.Render(s.Symbol())
	}
}

func streakText(n int, err error) string {
	if err != nil {
		return warnStyle.Render("unable to compute streak")
	}
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func (m Model) viewToday() string {
	d := m.dashboard
	var b strings.Builder

	title := "Today, " + d.Day
	if !d.IsToday() {
		title = d.Day + mutedStyle.Render(" (today is "+d.Today+")")
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if d.SurvivalMode {
		b.WriteString(warnStyle.Render("Survival mode: the minimum counts"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(d.Systems) == 0 {
		b.WriteString(mutedStyle.Render("No active systems. Press a to add one."))
		return b.String()
	}

	for i, row := range d.Systems {
		name := row.System.Name
		if i == m.cursor {
			name = selectedStyle.Render("> " + name)
		} else {
			name = "  " + name
		}
		fmt.Fprintf(&b, "%s %s  %s\n", statusCell(row.Status), name, mutedStyle.Render(streakText(row.Streak, row.StreakErr)))

		action := row.System.ActionFor(d.SurvivalMode)
		if d.SurvivalMode {
			action = warnStyle.Render(action)
		}
		if row.System.Trigger != "" {
			action = row.System.Trigger + " → " + action
		}
		fmt.Fprintf(&b, "     %s\n", action)
	}
	fmt.Fprintf(&b, "\n%d/%d recorded\n", d.Recorded, len(d.Systems))

	if len(d.Comebacks) > 0 {
		names := make(map[string]string, len(d.Systems))
		for _, row := range d.Systems {
			names[row.System.ID] = row.System.Name
		}
		var lines []string
		lines = append(lines, warnStyle.Render("Time for a comeback"))
		for _, cb := range d.Comebacks {
			lines = append(lines, fmt.Sprintf("%s missed %d days", names[cb.SystemID], cb.ConsecutiveMisses))
		}
		lines = append(lines, mutedStyle.Render("r restarts the selected system small"))
		b.WriteString("\n")
		b.WriteString(comebackBoxStyle.Render(strings.Join(lines, "\n")))
	}
	return b.String()
}

func (m Model) viewWeek() string {
	r := m.review
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Week of %s", r.Week.Start())))
	b.WriteString("\n\n")

	if len(r.Rows) == 0 {
		b.WriteString(mutedStyle.Render("No systems to review."))
		return b.String()
	}

	fmt.Fprintf(&b, "%-22s", "")
	for i, day := range r.Week {
		label := constants.WeekdayNames[i][:3]
		if day == m.dashboard.Day {
			label = selectedStyle.Render(label)
		}
		b.WriteString(" " + label)
	}
	b.WriteString("\n")

	for _, row := range r.Rows {
		name := row.System.Name
		if r := []rune(name); len(r) > 21 {
			name = string(r[:20]) + "…"
		}
		fmt.Fprintf(&b, "%-22s", name)
		for _, s := range row.Statuses {
			b.WriteString("  " + statusCell(s) + " ")
		}
		fmt.Fprintf(&b, " %3d%%  %s\n", row.Completion, mutedStyle.Render(row.Pattern.Label))
	}
	fmt.Fprintf(&b, "\nOverall: %d%%\n", r.Totals())

	if sync, err := m.tracker.WeeklySync(r.Week.Start()); err == nil {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Weekly sync"))
		fmt.Fprintf(&b, "\nWin: %s\nPattern: %s\n", sync.Win, sync.Pattern)
		if sync.Intention != "" {
			fmt.Fprintf(&b, "Intention: %s\n", sync.Intention)
		}
	} else if today, terr := calendar.WeekStart(m.dashboard.Today); terr == nil && today == r.Week.Start() {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No weekly sync yet. Press w to reflect on this week."))
	}
	return b.String()
}
