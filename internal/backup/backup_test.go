package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE habits (id TEXT PRIMARY KEY, title TEXT)`,
		`INSERT INTO habits (id, title) VALUES ('a', 'Read'), ('b', 'Walk')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed test database: %v", err)
		}
	}
	return dbPath
}

// steppingClock returns a clock that advances by step on every call.
func steppingClock(step time.Duration) func() time.Time {
	current := time.Date(2025, 12, 31, 12, 0, 0, 0, time.Local)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func countHabits(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return count
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(backupPath), mgr.GetBackupDir())
	}
	if count := countHabits(t, backupPath); count != 2 {
		t.Errorf("expected 2 rows in backup, got %d", count)
	}
}

func TestCreateBackup_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup should fail when the store does not exist")
	}
}

func TestBackupRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = steppingClock(time.Minute)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted newest first at index %d", i)
		}
	}
	// The oldest five were pruned
	oldest := time.Date(2025, 12, 31, 12, 6, 0, 0, time.Local)
	if got := backups[len(backups)-1].Timestamp; !got.Equal(oldest) {
		t.Errorf("oldest kept backup = %v, want %v", got, oldest)
	}
}

func TestListBackups(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = steppingClock(time.Minute)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}
	// Unrelated files in the backup directory are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Path == "" || b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("incomplete backup info: %+v", b)
		}
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = steppingClock(0)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		name := filepath.Base(backupPath)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 5 {
		t.Errorf("expected all 5 backups to be listed, got %d", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Minute)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO habits (id, title) VALUES ('c', 'Stretch')"); err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	db.Close()

	snapshot, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if count := countHabits(t, dbPath); count != 2 {
		t.Errorf("expected 2 rows after restore, got %d", count)
	}
	if snapshot == "" {
		t.Fatal("RestoreBackup should snapshot the current store")
	}
	if count := countHabits(t, snapshot); count != 3 {
		t.Errorf("expected 3 rows in pre-restore snapshot, got %d", count)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups after restore, got %d", len(backups))
	}
}

func TestRestoreBackup_RejectsInvalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup should fail for a missing file")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.db")
	if err := os.WriteFile(invalid, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(invalid); err == nil {
		t.Error("RestoreBackup should fail for an invalid database")
	}
	if count := countHabits(t, dbPath); count != 2 {
		t.Errorf("store was modified by a failed restore: %d rows", count)
	}
}

func TestJSONStoreBackup(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "habitual.json")
	original := []byte(`{"version": 1, "state": {"habits": [], "logs": {}}}`)
	if err := os.WriteFile(storePath, original, 0600); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(storePath)
	mgr.now = steppingClock(time.Minute)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("backup %s should keep the .json suffix", backupPath)
	}

	if err := os.WriteFile(storePath, []byte(`{"version": 1, "state": {"habits": [{"id": "x"}], "logs": {}}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	got, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(original) {
		t.Errorf("restored store = %s, want %s", got, original)
	}

	bad := filepath.Join(mgr.GetBackupDir(), "broken.json")
	if err := os.WriteFile(bad, []byte(`{"version": 1}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.verifyBackup(bad); err == nil {
		t.Error("verifyBackup should reject a document without state")
	}
}
