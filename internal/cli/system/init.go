package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/storage"
	"github.com/julianstephens/rythm/internal/storage/postgres"
	"github.com/julianstephens/rythm/internal/storage/sqlite"
)

// firstDay and lastDay bound a range query that covers every stored day.
const (
	firstDay = "0001-01-01"
	lastDay  = "9999-12-31"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Seed   bool   `help:"Add the starter systems after initializing."`
	Source string `help:"Source database path or connection string to copy the current user's data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !ctx.IsSQLite() {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to release the file lock
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized rythm storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	if c.Seed {
		seeded, err := ctx.Tracker.SeedDefaults()
		if err != nil {
			return fmt.Errorf("failed to add starter systems: %w", err)
		}
		fmt.Printf("Added %d starter system(s)\n", len(seeded))
	}

	return nil
}

// copyData copies the current user's settings, systems, logs and weekly
// syncs from another store into ctx.Store.
func (c *InitCmd) copyData(ctx *cli.Context, source string) error {
	var src storage.Provider
	if postgres.IsConnString(source) {
		if valid, err := postgres.ValidateConnString(source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		src = postgres.New(source)
	} else {
		src = sqlite.NewStore(source)
	}

	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	user := ctx.Tracker.UserID()
	dst := ctx.Store

	fmt.Println("  Copying settings...")
	settings, err := src.GetSettings(user)
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(user, settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Copying systems and logs...")
	systems, err := src.GetAllSystems(user, true, false)
	if err != nil {
		return fmt.Errorf("failed to get systems from source: %w", err)
	}
	logCount := 0
	for _, sys := range systems {
		if err := dst.AddSystem(sys); err != nil {
			return fmt.Errorf("failed to add system %s: %w", sys.ID, err)
		}
		logs, err := src.GetLogsForSystem(user, sys.ID, firstDay, lastDay)
		if err != nil {
			return fmt.Errorf("failed to get logs for system %s: %w", sys.ID, err)
		}
		for _, l := range logs {
			if err := dst.SaveLog(l); err != nil {
				return fmt.Errorf("failed to save log %s: %w", l.ID, err)
			}
		}
		logCount += len(logs)
	}
	fmt.Printf("    Copied %d systems, %d logs\n", len(systems), logCount)

	fmt.Println("  Copying weekly syncs...")
	syncs, err := src.GetWeeklySyncs(user, 0)
	if err != nil {
		return fmt.Errorf("failed to get weekly syncs from source: %w", err)
	}
	for _, w := range syncs {
		if err := dst.SaveWeeklySync(w); err != nil {
			return fmt.Errorf("failed to save weekly sync for %s: %w", w.WeekStart, err)
		}
	}
	fmt.Printf("    Copied %d weekly syncs\n", len(syncs))

	return nil
}
