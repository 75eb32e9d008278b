package settings

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/storage/sqlite"
	"github.com/julianstephens/rythm/internal/tracker"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	tr, err := tracker.New(store, "alice")
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}

	ctx := &cli.Context{
		Store:   store,
		Tracker: tr,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		List: true,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tz := "UTC"
	window := 3
	survival := true
	cmd := &SettingsCmd{
		Timezone:       &tz,
		ComebackWindow: &window,
		Survival:       &survival,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Tracker.Settings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != tz {
		t.Errorf("expected timezone %s, got %s", tz, settings.Timezone)
	}
	if settings.ComebackWindow != window {
		t.Errorf("expected comeback window %d, got %d", window, settings.ComebackWindow)
	}
	if !settings.SurvivalMode {
		t.Error("expected survival mode to be enabled")
	}
}

func TestSettingsCmd_RejectsInvalidValues(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tz := "Mars/Olympus_Mons"
	if err := (&SettingsCmd{Timezone: &tz}).Run(ctx); err == nil {
		t.Error("expected error for unknown timezone")
	}

	zero := 0
	if err := (&SettingsCmd{MaxLookback: &zero}).Run(ctx); err == nil {
		t.Error("expected error for non-positive lookback")
	}
}

func TestSettingsCmd_PerUser(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	survival := true
	if err := (&SettingsCmd{Survival: &survival}).Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	bob, err := tracker.New(ctx.Store, "bob")
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	settings, err := bob.Settings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.SurvivalMode {
		t.Error("settings leaked between users")
	}
}
