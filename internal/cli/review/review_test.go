package review

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/models"
	"github.com/julianstephens/rythm/internal/storage/sqlite"
	"github.com/julianstephens/rythm/internal/tracker"
)

func setupTestDB(t *testing.T) (*cli.Context, models.System) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tr, err := tracker.New(store, "alice")
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	sys, err := tr.AddSystem(models.System{Name: "Morning Run", FullAction: "5k", SurvivalAction: "shoes on"})
	if err != nil {
		t.Fatalf("failed to add system: %v", err)
	}
	return &cli.Context{Store: store, Tracker: tr}, sys
}

func TestReviewCmd(t *testing.T) {
	ctx, sys := setupTestDB(t)
	day, err := ctx.ResolveDay("")
	if err != nil {
		t.Fatalf("ResolveDay failed: %v", err)
	}
	if _, err := ctx.Tracker.Mark(sys.ID, day, models.StatusDone); err != nil {
		t.Fatalf("Mark failed: %v", err)
	}

	if err := (&ReviewCmd{}).Run(ctx); err != nil {
		t.Errorf("review failed: %v", err)
	}
	if err := (&ReviewCmd{Date: "2024-13-01"}).Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestSyncSaveWithFlags(t *testing.T) {
	ctx, sys := setupTestDB(t)

	cmd := &SyncSaveCmd{
		Date:       "2024-03-07",
		Win:        "ran four times",
		Pattern:    "mondays are hard",
		Adjust:     "morning run",
		Adjustment: "run after lunch on mondays",
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("sync save failed: %v", err)
	}

	saved, err := ctx.Store.GetWeeklySync("alice", "2024-03-04")
	if err != nil {
		t.Fatalf("failed to get sync: %v", err)
	}
	if saved.AdjustedSystemID == nil || *saved.AdjustedSystemID != sys.ID {
		t.Errorf("expected adjusted system %s, got %v", sys.ID, saved.AdjustedSystemID)
	}

	// A second save only overrides the fields given
	if err := (&SyncSaveCmd{Date: "2024-03-04", Intention: "sleep earlier"}).Run(ctx); err != nil {
		t.Fatalf("sync update failed: %v", err)
	}
	updated, err := ctx.Store.GetWeeklySync("alice", "2024-03-04")
	if err != nil {
		t.Fatalf("failed to get sync: %v", err)
	}
	if updated.Win != "ran four times" || updated.Intention != "sleep earlier" {
		t.Errorf("unexpected sync after update: %+v", updated)
	}
	if updated.ID != saved.ID {
		t.Errorf("expected upsert to keep id %s, got %s", saved.ID, updated.ID)
	}

	if err := (&SyncShowCmd{Date: "2024-03-10"}).Run(ctx); err != nil {
		t.Errorf("sync show failed: %v", err)
	}
	if err := (&SyncHistoryCmd{Limit: 5}).Run(ctx); err != nil {
		t.Errorf("sync history failed: %v", err)
	}
}

func TestSyncShowMissing(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&SyncShowCmd{Date: "2024-03-04"}).Run(ctx); err != nil {
		t.Errorf("sync show of a missing week should not fail: %v", err)
	}
}
