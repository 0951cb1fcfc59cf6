package backups

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := &cli.Context{
		Store:    store,
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC) },
	}

	tr, err := ctx.Open()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Add(models.Habit{ID: "a", Title: "Water", Frequency: models.FrequencyDaily}); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Commit(tr); err != nil {
		t.Fatal(err)
	}
	return ctx, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("BackupListCmd.Run() on empty dir error = %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupCreateCmd.Run() error = %v", err)
	}

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("BackupListCmd.Run() error = %v", err)
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, dbPath := setupTestContext(t)
	mgr := backup.NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	tr, err := ctx.Open()
	if err != nil {
		t.Fatal(err)
	}
	tr.Delete("a")
	if err := ctx.Commit(tr); err != nil {
		t.Fatal(err)
	}

	// Restore by file name, resolved inside the backup directory
	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}

	restored, err := ctx.Open()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := restored.Get("a"); err != nil {
		t.Errorf("restored store is missing the habit: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("got %d backups, want the original plus a pre-restore snapshot", len(backups))
	}
}

func TestBackupRestoreCmd_Cancelled(t *testing.T) {
	ctx, dbPath := setupTestContext(t)
	backupPath, err := backup.NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	orig := stdin
	defer func() { stdin = orig }()
	stdin = strings.NewReader("no\n")

	if err := (&BackupRestoreCmd{BackupFile: backupPath}).Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}
	// Store stays open and usable
	if _, err := ctx.Open(); err != nil {
		t.Errorf("Open() after cancelled restore error = %v", err)
	}
}

func TestBackupRestoreCmd_NotFound(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&BackupRestoreCmd{BackupFile: "missing.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}
