package system

import (
	"bytes"
	"context"
	"path/filepath"
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

// setupTestContext builds a context over a fresh SQLite path. Storage is
// left closed unless open is set, the way main leaves it for init.
func setupTestContext(t *testing.T, open bool) (*cli.Context, *bytes.Buffer, func()) {
	return newTestContext(t, filepath.Join(t.TempDir(), "meals.db"), open)
}

func newTestContext(t *testing.T, dbPath string, open bool) (*cli.Context, *bytes.Buffer, func()) {
	cfg := &config.Config{DBPath: dbPath, Timezone: "UTC", SeedSampleData: true}
	clock := func() time.Time { return testNow }
	store := storage.NewRecordStore(sqlite.NewStore(dbPath), storage.WithClock(clock))
	dir := directory.New(store, directory.WithClock(clock), directory.WithLocation(time.UTC))

	out := &bytes.Buffer{}
	ctx := cli.NewContext(context.Background(), cfg, store, dir)
	ctx.Out = out
	ctx.SetClock(clock)
	ctx.Confirm = func(string, string) (bool, error) { return true, nil }
	if open {
		if err := ctx.Open(false); err != nil {
			t.Fatalf("failed to open storage: %v", err)
		}
	}

	cleanup := func() {
		store.Close()
	}
	return ctx, out, cleanup
}

// writeSourceDB creates a standalone SQLite database holding meals.
func writeSourceDB(t *testing.T, meals ...models.Meal) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.db")
	src := sqlite.NewStore(path)
	if err := src.Init(context.Background()); err != nil {
		t.Fatalf("failed to init source db: %v", err)
	}
	defer src.Close()
	for _, m := range meals {
		if err := src.SaveMeal(context.Background(), m); err != nil {
			t.Fatalf("failed to save source meal: %v", err)
		}
	}
	return path
}
