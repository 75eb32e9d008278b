package backups

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/rythm/internal/backup"
	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/storage/sqlite"
	"github.com/julianstephens/rythm/internal/tracker"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
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

func TestBackupCreateAndList(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestResolveBackupPath(t *testing.T) {
	ctx := setupTestDB(t)
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	created, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	got, err := resolveBackupPath(mgr, filepath.Base(created))
	if err != nil {
		t.Fatalf("resolveBackupPath failed: %v", err)
	}
	if got != created {
		t.Errorf("expected %s, got %s", created, got)
	}

	got, err = resolveBackupPath(mgr, created)
	if err != nil || got != created {
		t.Errorf("absolute path: got %q, %v", got, err)
	}

	if _, err := resolveBackupPath(mgr, "rythm-19990101-000000.db"); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackupRestoreWithoutPrompt(t *testing.T) {
	ctx := setupTestDB(t)
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	created, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: created, Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}
	if _, err := os.Stat(ctx.Store.GetConfigPath()); err != nil {
		t.Errorf("database missing after restore: %v", err)
	}
}
