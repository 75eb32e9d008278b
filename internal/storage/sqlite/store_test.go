package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/models"
)

const testUser = "alice"

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func addTestSystem(t *testing.T, store *Store, id, name string) models.System {
	t.Helper()
	sys := models.System{
		ID:             id,
		UserID:         testUser,
		Name:           name,
		Trigger:        "after coffee",
		FullAction:     "20 minute run",
		SurvivalAction: "put on shoes",
		CreatedAt:      time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	if err := store.AddSystem(sys); err != nil {
		t.Fatalf("failed to add system: %v", err)
	}
	return sys
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("expected Load to fail before Init")
	}
}

func TestInitThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rythm.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()
	if reopened.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", reopened.GetConfigPath(), path)
	}
}

func TestSystemCRUD(t *testing.T) {
	store := setupTestStore(t)
	sys := addTestSystem(t, store, "sys-1", "Morning Movement")

	got, err := store.GetSystem(testUser, sys.ID)
	if err != nil {
		t.Fatalf("GetSystem failed: %v", err)
	}
	if diff := cmp.Diff(sys, got); diff != "" {
		t.Errorf("GetSystem mismatch (-want +got):\n%s", diff)
	}

	byName, err := store.GetSystemByName(testUser, "morning movement")
	if err != nil {
		t.Fatalf("GetSystemByName failed: %v", err)
	}
	if byName.ID != sys.ID {
		t.Errorf("GetSystemByName returned %s, want %s", byName.ID, sys.ID)
	}

	sys.Paused = true
	sys.FullAction = "30 minute run"
	if err := store.UpdateSystem(sys); err != nil {
		t.Fatalf("UpdateSystem failed: %v", err)
	}

	active, err := store.GetAllSystems(testUser, false, false)
	if err != nil {
		t.Fatalf("GetAllSystems failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected paused system to be hidden, got %d systems", len(active))
	}
	all, err := store.GetAllSystems(testUser, true, false)
	if err != nil {
		t.Fatalf("GetAllSystems failed: %v", err)
	}
	if len(all) != 1 || all[0].FullAction != "30 minute run" || !all[0].Paused {
		t.Errorf("unexpected systems after update: %+v", all)
	}

	if _, err := store.GetSystem("bob", sys.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user, got %v", err)
	}
}

func TestSystemSoftDeleteAndRestore(t *testing.T) {
	store := setupTestStore(t)
	sys := addTestSystem(t, store, "sys-1", "Morning Movement")
	if err := store.SaveLog(models.DailyLog{UserID: testUser, SystemID: sys.ID, Day: "2024-03-01", Status: models.StatusDone}); err != nil {
		t.Fatalf("SaveLog failed: %v", err)
	}

	if err := store.DeleteSystem(testUser, sys.ID); err != nil {
		t.Fatalf("DeleteSystem failed: %v", err)
	}
	if _, err := store.GetSystem(testUser, sys.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected deleted system to be hidden, got %v", err)
	}
	if _, err := store.GetLog(testUser, sys.ID, "2024-03-01"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected logs of deleted system to be hidden, got %v", err)
	}
	n, err := store.CountSystems(testUser)
	if err != nil || n != 0 {
		t.Errorf("CountSystems = %d, %v; want 0", n, err)
	}
	all, _ := store.GetAllSystems(testUser, true, true)
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Errorf("expected deleted system with DeletedAt set, got %+v", all)
	}

	if err := store.DeleteSystem(testUser, sys.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected second delete to report ErrNotFound, got %v", err)
	}

	if err := store.RestoreSystem(testUser, sys.ID); err != nil {
		t.Fatalf("RestoreSystem failed: %v", err)
	}
	if _, err := store.GetSystem(testUser, sys.ID); err != nil {
		t.Errorf("expected restored system, got %v", err)
	}
	l, err := store.GetLog(testUser, sys.ID, "2024-03-01")
	if err != nil || l.Status != models.StatusDone {
		t.Errorf("expected restored log, got %+v, %v", l, err)
	}

	if err := store.RestoreSystem(testUser, sys.ID); err == nil {
		t.Error("expected error restoring a live system")
	}
}

func TestSaveLogUpsert(t *testing.T) {
	store := setupTestStore(t)
	sys := addTestSystem(t, store, "sys-1", "Morning Movement")

	first := models.DailyLog{ID: "log-1", UserID: testUser, SystemID: sys.ID, Day: "2024-03-01", Status: models.StatusSkip}
	if err := store.SaveLog(first); err != nil {
		t.Fatalf("SaveLog failed: %v", err)
	}
	second := models.DailyLog{ID: "log-2", UserID: testUser, SystemID: sys.ID, Day: "2024-03-01", Status: models.StatusSurvival}
	if err := store.SaveLog(second); err != nil {
		t.Fatalf("SaveLog failed: %v", err)
	}

	logs, err := store.GetLogsForDay(testUser, "2024-03-01")
	if err != nil {
		t.Fatalf("GetLogsForDay failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected exactly one log per (user, system, day), got %d", len(logs))
	}
	if logs[0].ID != "log-1" || logs[0].Status != models.StatusSurvival {
		t.Errorf("expected upsert to keep id and replace status, got %+v", logs[0])
	}
}

func TestClearedStatusIsStoredAsNull(t *testing.T) {
	store := setupTestStore(t)
	sys := addTestSystem(t, store, "sys-1", "Morning Movement")

	if err := store.SaveLog(models.DailyLog{UserID: testUser, SystemID: sys.ID, Day: "2024-03-01", Status: models.StatusCleared}); err != nil {
		t.Fatalf("SaveLog failed: %v", err)
	}

	var isNull bool
	if err := store.GetDB().QueryRow("SELECT status IS NULL FROM daily_logs WHERE day = ?", "2024-03-01").Scan(&isNull); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !isNull {
		t.Error("expected cleared status to be stored as NULL")
	}

	l, err := store.GetLog(testUser, sys.ID, "2024-03-01")
	if err != nil {
		t.Fatalf("GetLog failed: %v", err)
	}
	if l.Status != models.StatusCleared {
		t.Errorf("expected cleared status, got %q", l.Status)
	}

	if err := store.SaveLog(models.DailyLog{UserID: testUser, SystemID: sys.ID, Day: "2024-03-02"}); err == nil {
		t.Error("expected absent status to be rejected")
	}
}

func TestGetLogsForSystemRange(t *testing.T) {
	store := setupTestStore(t)
	sys := addTestSystem(t, store, "sys-1", "Morning Movement")
	other := addTestSystem(t, store, "sys-2", "Ship Something Small")

	for _, day := range []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"} {
		if err := store.SaveLog(models.DailyLog{UserID: testUser, SystemID: sys.ID, Day: day, Status: models.StatusDone}); err != nil {
			t.Fatalf("SaveLog failed: %v", err)
		}
	}
	if err := store.SaveLog(models.DailyLog{UserID: testUser, SystemID: other.ID, Day: "2024-03-01", Status: models.StatusDone}); err != nil {
		t.Fatalf("SaveLog failed: %v", err)
	}

	logs, err := store.GetLogsForSystem(testUser, sys.ID, "2024-02-29", "2024-03-01")
	if err != nil {
		t.Fatalf("GetLogsForSystem failed: %v", err)
	}
	var days []string
	for _, l := range logs {
		days = append(days, l.Day)
	}
	if diff := cmp.Diff([]string{"2024-02-29", "2024-03-01"}, days); diff != "" {
		t.Errorf("days mismatch (-want +got):\n%s", diff)
	}
}

func TestWeeklySyncUpsert(t *testing.T) {
	store := setupTestStore(t)
	sys := addTestSystem(t, store, "sys-1", "Morning Movement")

	sync := models.WeeklySync{UserID: testUser, WeekStart: "2024-03-04", Win: "ran 4 times", Pattern: "mondays are hard", Intention: "sleep earlier"}
	if err := store.SaveWeeklySync(sync); err != nil {
		t.Fatalf("SaveWeeklySync failed: %v", err)
	}
	sync.Win = "ran 5 times"
	sync.AdjustedSystemID = &sys.ID
	sync.AdjustmentNote = "shorter run"
	if err := store.SaveWeeklySync(sync); err != nil {
		t.Fatalf("SaveWeeklySync failed: %v", err)
	}
	if err := store.SaveWeeklySync(models.WeeklySync{UserID: testUser, WeekStart: "2024-03-11", Win: "w", Pattern: "p"}); err != nil {
		t.Fatalf("SaveWeeklySync failed: %v", err)
	}

	got, err := store.GetWeeklySync(testUser, "2024-03-04")
	if err != nil {
		t.Fatalf("GetWeeklySync failed: %v", err)
	}
	if got.Win != "ran 5 times" || got.AdjustedSystemID == nil || *got.AdjustedSystemID != sys.ID {
		t.Errorf("unexpected sync after upsert: %+v", got)
	}

	history, err := store.GetWeeklySyncs(testUser, 10)
	if err != nil {
		t.Fatalf("GetWeeklySyncs failed: %v", err)
	}
	if len(history) != 2 || history[0].WeekStart != "2024-03-11" {
		t.Errorf("expected two syncs newest first, got %+v", history)
	}

	if _, err := store.GetWeeklySync(testUser, "2024-01-01"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsPerUser(t *testing.T) {
	store := setupTestStore(t)

	defaults, err := store.GetSettings(testUser)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if diff := cmp.Diff(models.DefaultSettings(), defaults); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	custom := models.DefaultSettings()
	custom.SurvivalMode = true
	custom.TrackerDate = "2024-03-01"
	if err := store.SaveSettings(testUser, custom); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings(testUser)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if diff := cmp.Diff(custom, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	other, err := store.GetSettings("bob")
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if other.SurvivalMode {
		t.Error("settings leaked across users")
	}
}
