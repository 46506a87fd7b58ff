package backups

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/config"
	"github.com/julianstephens/mealtrack/internal/directory"
	"github.com/julianstephens/mealtrack/internal/models"
	"github.com/julianstephens/mealtrack/internal/storage"
	"github.com/julianstephens/mealtrack/internal/storage/sqlite"
)

var testNow = time.Date(2026, 5, 20, 13, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	dbPath := filepath.Join(t.TempDir(), "meals.db")
	cfg := &config.Config{DBPath: dbPath, Timezone: "UTC"}
	clock := func() time.Time { return testNow }
	store := storage.NewRecordStore(sqlite.NewStore(dbPath), storage.WithClock(clock))
	dir := directory.New(store, directory.WithClock(clock), directory.WithLocation(time.UTC))

	out := &bytes.Buffer{}
	ctx := cli.NewContext(context.Background(), cfg, store, dir)
	ctx.Out = out
	ctx.SetClock(clock)
	ctx.Confirm = func(string, string) (bool, error) { return true, nil }
	if err := ctx.Open(false); err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}

	cleanup := func() {
		store.Close()
	}
	return ctx, out, cleanup
}

func TestCreateAndList(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := (&CreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("CreateCmd failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backup created: mealtrack-") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("unexpected listing: %s", out.String())
	}
}

func TestRestore(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	kept := models.NewMeal("Shakshuka", testNow.Add(-time.Hour), models.CategoryBreakfast)
	if ok, err := ctx.Directory.Add(ctx.Ctx, kept); !ok || err != nil {
		t.Fatalf("Add = %v, %v", ok, err)
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backupPath, err := mgr.Create(ctx.Ctx)
	if err != nil {
		t.Fatal(err)
	}

	lost := models.NewMeal("Added after backup", testNow.Add(-time.Minute), "")
	if ok, err := ctx.Directory.Add(ctx.Ctx, lost); !ok || err != nil {
		t.Fatalf("Add = %v, %v", ok, err)
	}

	// Bare file names resolve inside the backup directory
	out.Reset()
	if err := (&RestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
		t.Fatalf("RestoreCmd failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database restored from") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := ctx.Open(false); err != nil {
		t.Fatalf("reopen after restore failed: %v", err)
	}
	if _, ok := ctx.Directory.Get(kept.ID); !ok {
		t.Error("meal from the backup is missing")
	}
	if _, ok := ctx.Directory.Get(lost.ID); ok {
		t.Error("meal added after the backup survived the restore")
	}
}

func TestRestoreCancelled(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	mgr, _ := ctx.BackupManager()
	backupPath, err := mgr.Create(ctx.Ctx)
	if err != nil {
		t.Fatal(err)
	}

	ctx.Confirm = func(string, string) (bool, error) { return false, nil }
	if err := (&RestoreCmd{BackupFile: backupPath}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %s", out.String())
	}
	if !ctx.Store.Ready() {
		t.Error("store was closed even though the restore was cancelled")
	}
}

func TestRestoreMissingFile(t *testing.T) {
	ctx, _, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&RestoreCmd{BackupFile: "mealtrack-19990101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for a missing backup")
	}
}
