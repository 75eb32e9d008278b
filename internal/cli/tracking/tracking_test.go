package tracking

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/julianstephens/rythm/internal/calendar"
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

func today(t *testing.T, ctx *cli.Context) string {
	t.Helper()
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	return ctx.Tracker.Today(settings)
}

func TestMarkCmd(t *testing.T) {
	ctx, sys := setupTestDB(t)
	day := today(t, ctx)

	cmd := &MarkCmd{System: "morning run", Status: "s"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	log, err := ctx.Store.GetLog("alice", sys.ID, day)
	if err != nil {
		t.Fatalf("failed to get log: %v", err)
	}
	if log.Status != models.StatusSurvival {
		t.Errorf("expected survival, got %s", log.Status)
	}
}

func TestMarkCmdErrors(t *testing.T) {
	ctx, _ := setupTestDB(t)
	tomorrow, _ := calendar.NextDay(today(t, ctx))

	tests := []struct {
		name string
		cmd  MarkCmd
	}{
		{"unknown status", MarkCmd{System: "Morning Run", Status: "maybe"}},
		{"unknown system", MarkCmd{System: "Swim", Status: "done"}},
		{"malformed date", MarkCmd{System: "Morning Run", Status: "done", Date: "2024-02-30"}},
		{"future date", MarkCmd{System: "Morning Run", Status: "done", Date: tomorrow}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTrackCmds(t *testing.T) {
	ctx, _ := setupTestDB(t)
	day := today(t, ctx)

	if err := (&TrackPrevCmd{Days: 2}).Run(ctx); err != nil {
		t.Fatalf("track prev failed: %v", err)
	}
	want, _ := calendar.AddDays(day, -2)
	got, err := ctx.ResolveDay("")
	if err != nil {
		t.Fatalf("ResolveDay failed: %v", err)
	}
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	out := captureOutput(t, func() {
		if err := (&TrackShowCmd{}).Run(ctx); err != nil {
			t.Errorf("track show failed: %v", err)
		}
	})
	if !strings.Contains(out, want+" (2 days ago)") {
		t.Errorf("expected show to report distance from today, got %q", out)
	}

	if err := (&TrackNextCmd{Days: 5}).Run(ctx); err != nil {
		t.Fatalf("track next failed: %v", err)
	}
	if got, _ := ctx.ResolveDay(""); got != day {
		t.Errorf("next should stop at today %s, got %s", day, got)
	}

	if err := (&TrackSetCmd{Date: "not-a-day"}).Run(ctx); err == nil {
		t.Error("expected error for malformed day")
	}
}

func TestComebackRestart(t *testing.T) {
	ctx, sys := setupTestDB(t)

	if err := (&ComebackCmd{}).Run(ctx); err != nil {
		t.Fatalf("comeback failed: %v", err)
	}
	if err := (&ComebackCmd{Restart: sys.Name}).Run(ctx); err != nil {
		t.Fatalf("comeback restart failed: %v", err)
	}

	settings, err := ctx.Tracker.Settings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if !settings.SurvivalMode {
		t.Error("expected survival mode on")
	}
	log, err := ctx.Store.GetLog("alice", sys.ID, ctx.Tracker.Today(settings))
	if err != nil {
		t.Fatalf("failed to get log: %v", err)
	}
	if log.Status != models.StatusSurvival {
		t.Errorf("expected survival log, got %s", log.Status)
	}
}

func TestSurvivalCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)

	for _, state := range []string{"on", "status", "off"} {
		if err := (&SurvivalCmd{State: state}).Run(ctx); err != nil {
			t.Fatalf("survival %s failed: %v", state, err)
		}
	}
	settings, _ := ctx.Tracker.Settings()
	if settings.SurvivalMode {
		t.Error("expected survival mode off")
	}
}

func TestReadCmds(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&MarkCmd{System: "Morning Run", Status: "done"}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Errorf("today failed: %v", err)
	}
	if err := (&StreakCmd{}).Run(ctx); err != nil {
		t.Errorf("streak failed: %v", err)
	}
	if err := (&HistoryCmd{Days: 7, System: "Morning Run"}).Run(ctx); err != nil {
		t.Errorf("history failed: %v", err)
	}
	if err := (&HistoryCmd{Days: 0}).Run(ctx); err == nil {
		t.Error("expected error for zero days")
	}
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = origOut
	return ansi.ReplaceAllString(<-done, "")
}

func TestHistoryCmdEndsOnReferenceDay(t *testing.T) {
	ctx, _ := setupTestDB(t)
	day := today(t, ctx)
	yesterday, err := calendar.PreviousDay(day)
	if err != nil {
		t.Fatalf("failed to get previous day: %v", err)
	}

	if err := (&MarkCmd{System: "Morning Run", Status: "skip", Date: yesterday}).Run(ctx); err != nil {
		t.Fatalf("mark yesterday failed: %v", err)
	}
	if err := (&MarkCmd{System: "Morning Run", Status: "done", Date: day}).Run(ctx); err != nil {
		t.Fatalf("mark today failed: %v", err)
	}

	var runErr error
	out := captureOutput(t, func() {
		runErr = (&HistoryCmd{Days: 3, System: "Morning Run", Date: day}).Run(ctx)
	})
	if runErr != nil {
		t.Fatalf("history failed: %v", runErr)
	}

	var row string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Morning Run") {
			row = strings.TrimSpace(line)
		}
	}
	if !strings.HasSuffix(row, "○✗✓") {
		t.Errorf("expected history row to end with the reference day, got %q", row)
	}
}
