package system

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/rythm/internal/backup"
	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/logger"
)

// dbProvider is implemented by stores that expose their handle for raw checks.
type dbProvider interface {
	GetDB() *sql.DB
}

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// needsDB checks are skipped when the database could not be loaded.
	needsDB bool
	// warnOnly failures are reported but do not fail the run.
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Log file", run: checkLogFile, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
	{name: "System limit", run: checkSystemLimit, needsDB: true},
	{name: "Log integrity", run: checkLogIntegrity, needsDB: true},
	{name: "Weekly syncs", run: checkWeeklySyncs, needsDB: true},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if p, ok := ctx.Store.(dbProvider); ok {
		db := p.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	runner, err := m.MigrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	runner, err := m.MigrationRunner()
	if err != nil {
		return err
	}
	pending, err := runner.Pending()
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return fmt.Errorf("%d migration(s) pending, run 'rythm migrate'", len(pending))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'rythm backup create'")
	}
	return nil
}

func checkLogFile(_ *cli.Context) error {
	path := logger.Path()
	if path == "" {
		return fmt.Errorf("logging is not initialized")
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("log directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", filepath.Dir(path))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}
	today, err := calendar.TodayIn(settings.Timezone)
	if err != nil {
		return fmt.Errorf("configured timezone %q cannot be loaded: %w", settings.Timezone, err)
	}
	if settings.TrackerDate != "" && !calendar.Valid(settings.TrackerDate) {
		return fmt.Errorf("tracked day %q is not a valid date", settings.TrackerDate)
	}
	if settings.TrackerDate > today {
		return fmt.Errorf("tracked day %s is after today (%s)", settings.TrackerDate, today)
	}
	return nil
}

func checkSystemLimit(ctx *cli.Context) error {
	systems, err := ctx.Tracker.Systems(true)
	if err != nil {
		return err
	}
	if len(systems) > constants.MaxSystems {
		return fmt.Errorf("%d systems found, the limit is %d", len(systems), constants.MaxSystems)
	}
	for _, s := range systems {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("system %s: %w", s.ID, err)
		}
	}
	return nil
}

func checkLogIntegrity(ctx *cli.Context) error {
	p, ok := ctx.Store.(dbProvider)
	if !ok {
		return nil
	}
	db := p.GetDB()

	var invalid int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM daily_logs
		WHERE day NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'
	`).Scan(&invalid)
	if err != nil {
		return fmt.Errorf("failed to check log dates: %w", err)
	}
	if invalid > 0 {
		return fmt.Errorf("found %d logs with invalid date format", invalid)
	}

	var orphaned int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM daily_logs l
		LEFT JOIN systems s ON l.system_id = s.id
		WHERE s.id IS NULL
	`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check orphaned logs: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d logs referencing non-existent systems", orphaned)
	}

	var live int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM daily_logs l
		JOIN systems s ON l.system_id = s.id
		WHERE s.deleted_at IS NOT NULL AND l.deleted_at IS NULL
	`).Scan(&live)
	if err != nil {
		return fmt.Errorf("failed to check logs of deleted systems: %w", err)
	}
	if live > 0 {
		return fmt.Errorf("found %d live logs belonging to deleted systems", live)
	}
	return nil
}

func checkWeeklySyncs(ctx *cli.Context) error {
	syncs, err := ctx.Store.GetWeeklySyncs(ctx.Tracker.UserID(), 0)
	if err != nil {
		return err
	}
	for _, w := range syncs {
		start, err := calendar.WeekStart(w.WeekStart)
		if err != nil {
			return fmt.Errorf("weekly sync %s: %w", w.ID, err)
		}
		if start != w.WeekStart {
			return fmt.Errorf("weekly sync %s starts on %s, not a Monday", w.ID, w.WeekStart)
		}
	}
	return nil
}
