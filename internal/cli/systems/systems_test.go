package systems

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/storage/sqlite"
	"github.com/julianstephens/rythm/internal/tracker"
)

func setupTestDB(t *testing.T) *cli.Context {
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
	return &cli.Context{Store: store, Tracker: tr}
}

func addRun(t *testing.T, ctx *cli.Context) {
	t.Helper()
	cmd := &SystemAddCmd{Name: "Morning Run", Trigger: "after coffee", Full: "5k", Survival: "shoes on"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("system add failed: %v", err)
	}
}

func TestSystemAddAndList(t *testing.T) {
	ctx := setupTestDB(t)
	addRun(t, ctx)

	sys, err := ctx.Tracker.FindSystem("morning run")
	if err != nil {
		t.Fatalf("FindSystem failed: %v", err)
	}
	if sys.Trigger != "after coffee" || sys.SurvivalAction != "shoes on" {
		t.Errorf("unexpected system: %+v", sys)
	}

	if err := (&SystemListCmd{Paused: true}).Run(ctx); err != nil {
		t.Errorf("system list failed: %v", err)
	}

	dup := &SystemAddCmd{Name: "MORNING RUN", Full: "10k", Survival: "walk"}
	if err := dup.Run(ctx); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestSystemAddLimit(t *testing.T) {
	ctx := setupTestDB(t)
	for i := 0; i < 5; i++ {
		cmd := &SystemAddCmd{Name: fmt.Sprintf("System %d", i), Full: "full", Survival: "tiny"}
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("system add %d failed: %v", i, err)
		}
	}

	err := (&SystemAddCmd{Name: "One Too Many", Full: "full", Survival: "tiny"}).Run(ctx)
	if !errors.Is(err, errors.ErrSystemLimit) {
		t.Errorf("expected ErrSystemLimit, got %v", err)
	}
}

func TestSystemEditWithFlags(t *testing.T) {
	ctx := setupTestDB(t)
	addRun(t, ctx)

	name := "Evening Run"
	survival := "walk around the block"
	cmd := &SystemEditCmd{System: "Morning Run", Name: &name, Survival: &survival}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("system edit failed: %v", err)
	}

	sys, err := ctx.Tracker.FindSystem("Evening Run")
	if err != nil {
		t.Fatalf("renamed system not found: %v", err)
	}
	if sys.SurvivalAction != survival || sys.FullAction != "5k" {
		t.Errorf("unexpected system after edit: %+v", sys)
	}
}

func TestSystemPauseResume(t *testing.T) {
	ctx := setupTestDB(t)
	addRun(t, ctx)

	if err := (&SystemPauseCmd{System: "Morning Run"}).Run(ctx); err != nil {
		t.Fatalf("system pause failed: %v", err)
	}
	active, err := ctx.Tracker.Systems(false)
	if err != nil {
		t.Fatalf("Systems failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active systems, got %d", len(active))
	}

	if err := (&SystemResumeCmd{System: "Morning Run"}).Run(ctx); err != nil {
		t.Fatalf("system resume failed: %v", err)
	}
	active, _ = ctx.Tracker.Systems(false)
	if len(active) != 1 {
		t.Errorf("expected 1 active system, got %d", len(active))
	}
}

func TestSystemDeleteRestore(t *testing.T) {
	ctx := setupTestDB(t)
	addRun(t, ctx)
	sys, err := ctx.Tracker.FindSystem("Morning Run")
	if err != nil {
		t.Fatalf("FindSystem failed: %v", err)
	}

	if err := (&SystemDeleteCmd{System: sys.Name}).Run(ctx); err != nil {
		t.Fatalf("system delete failed: %v", err)
	}
	if _, err := ctx.Tracker.FindSystem(sys.Name); err == nil {
		t.Error("deleted system should not be found")
	}
	if err := (&SystemListCmd{Paused: true, Deleted: true}).Run(ctx); err != nil {
		t.Errorf("system list --deleted failed: %v", err)
	}

	if err := (&SystemRestoreCmd{ID: sys.ID}).Run(ctx); err != nil {
		t.Fatalf("system restore failed: %v", err)
	}
	if _, err := ctx.Tracker.FindSystem(sys.Name); err != nil {
		t.Errorf("restored system not found: %v", err)
	}
}
