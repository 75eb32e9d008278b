package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/cli/backups"
	"github.com/julianstephens/rythm/internal/cli/review"
	"github.com/julianstephens/rythm/internal/cli/settings"
	"github.com/julianstephens/rythm/internal/cli/system"
	"github.com/julianstephens/rythm/internal/cli/systems"
	"github.com/julianstephens/rythm/internal/cli/tracking"
	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/keyring"
	"github.com/julianstephens/rythm/internal/logger"
	"github.com/julianstephens/rythm/internal/storage"
	"github.com/julianstephens/rythm/internal/storage/postgres"
	"github.com/julianstephens/rythm/internal/storage/sqlite"
	"github.com/julianstephens/rythm/internal/tracker"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or the OS keyring instead." default:"${config}"`
	User     string `help:"User whose systems are tracked." env:"RYTHM_USER"`
	Debug    bool   `help:"Log debug output to stderr."`
	LogLevel string `help:"Log file level (debug, info, warn, error)." env:"RYTHM_LOG_LEVEL"`

	Init    system.InitCmd    `cmd:"" help:"Initialize rythm storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive tracker." default:"1"`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`

	Today    tracking.TodayCmd    `cmd:"" help:"Show the tracked day: statuses, streaks and comebacks."`
	Mark     tracking.MarkCmd     `cmd:"" help:"Record a status for a system."`
	Streak   tracking.StreakCmd   `cmd:"" help:"Show streaks."`
	History  tracking.HistoryCmd  `cmd:"" help:"Show recent days for each system."`
	Comeback tracking.ComebackCmd `cmd:"" help:"List systems that need a comeback."`
	Survival tracking.SurvivalCmd `cmd:"" help:"Turn survival mode on or off."`
	Track    tracking.TrackCmd    `cmd:"" help:"Move the tracked day."`

	System systems.SystemCmd `cmd:"" help:"Manage systems."`
	Review review.ReviewCmd  `cmd:"" help:"Show the weekly review."`
	Sync   review.SyncCmd    `cmd:"" help:"Weekly sync reflections."`

	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage settings."`
}

// selfLoading commands open (or create) storage themselves.
var selfLoading = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit systems with a survival fallback: streaks, comebacks and a weekly review"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)

	store, logDir, err := openStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	userID := resolveUser(CLI.User)
	logCfg := logger.Config{Debug: CLI.Debug, Level: CLI.LogLevel, ConfigDir: logDir, User: userID}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	tr, err := tracker.New(store, userID)
	if err != nil {
		errors.Fatalf("%v: pass --user or set %s", err, constants.EnvUser)
	}
	appCtx := &cli.Context{
		Store:   store,
		Tracker: tr,
	}

	command := strings.Fields(ctx.Command())
	if len(command) > 0 && !selfLoading[command[0]] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// openStore picks the backend: a connection string in --config, then one
// from the environment or keyring, then the SQLite file at --config.
func openStore(config string) (storage.Provider, string, error) {
	connStr := ""
	if postgres.IsConnString(config) {
		if valid, err := postgres.ValidateConnString(config); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("PostgreSQL connection strings with embedded credentials are NOT allowed on the command line; use 'rythm keyring set', %s or a .pgpass file", constants.EnvDBConnection)
			}
			return nil, "", err
		}
		connStr = config
	} else if config == constants.DefaultConfigPath {
		connStr = keyring.ResolveConnectionString()
	}

	if connStr != "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		return postgres.New(connStr), filepath.Join(dir, constants.AppName), nil
	}

	path, err := expandPath(config)
	if err != nil {
		return nil, "", err
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// resolveUser falls back to the OS account when neither --user nor
// RYTHM_USER is set. An empty result is rejected by tracker.New.
func resolveUser(flag string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
