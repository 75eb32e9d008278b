package system

import (
	"fmt"

	"github.com/julianstephens/rythm/internal/cli"
)

type MigrateCmd struct {
	DryRun bool `help:"List pending migrations without applying them."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}
	runner, err := m.MigrationRunner()
	if err != nil {
		return err
	}

	if c.DryRun {
		pending, err := runner.Pending()
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Println("No migrations to apply. Database is up to date.")
			return nil
		}
		for _, mig := range pending {
			fmt.Printf("  Pending migration %d: %s\n", mig.Version, mig.Name)
		}
		return nil
	}

	ctx.PerformAutomaticBackup()

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
