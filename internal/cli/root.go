package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/rythm/internal/backup"
	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/logger"
	"github.com/julianstephens/rythm/internal/migration"
	"github.com/julianstephens/rythm/internal/models"
	"github.com/julianstephens/rythm/internal/storage"
	"github.com/julianstephens/rythm/internal/tracker"
)

// Context is handed to every command's Run method.
type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
}

// Migrator is implemented by stores that expose their migration runner.
type Migrator interface {
	MigrationRunner() (*migration.Runner, error)
}

// IsSQLite reports whether the store is file backed and can be backed up.
func (c *Context) IsSQLite() bool {
	return c.Store.GetConfigPath() != "postgresql"
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDay returns day when given, validated, or the tracker's viewed day.
func (c *Context) ResolveDay(day string) (string, error) {
	if day != "" {
		if _, err := calendar.ParseDay(day); err != nil {
			return "", err
		}
		return day, nil
	}
	settings, err := c.Tracker.Settings()
	if err != nil {
		return "", err
	}
	return c.Tracker.ViewedDay(settings), nil
}

var (
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	survivalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	skipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	// HeaderStyle is used for section titles in command output.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#106981"))
	// WarnStyle highlights comeback alerts and survival emphasis.
	WarnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f59e0b"))
)

// StatusCell renders a status glyph in its color.
func StatusCell(s models.Status) string {
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

// FormatStreak renders a streak, keeping a failed computation distinct from zero.
func FormatStreak(n int, err error) string {
	if err != nil {
		return WarnStyle.Render("unable to compute streak")
	}
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
