package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/julianstephens/mealtrack/internal/errors"
	"github.com/julianstephens/mealtrack/internal/models"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "nested", "test.db")

	store := NewStore(dbPath)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	cleanup := func() {
		store.Close()
	}
	return store, cleanup
}

func TestInitCreatesDirectoryAndSchema(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if _, err := os.Stat(store.GetConfigPath()); err != nil {
		t.Fatalf("expected database file to exist: %v", err)
	}
	if err := store.Verify(context.Background()); err != nil {
		t.Errorf("Verify failed: %v", err)
	}

	runner, err := store.Migrator()
	if err != nil {
		t.Fatalf("Migrator: %v", err)
	}
	pending, err := runner.Pending(context.Background())
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if pending != 0 {
		t.Errorf("expected no pending migrations, got %d", pending)
	}
}

func TestInitUnwritableLocation(t *testing.T) {
	tempDir := t.TempDir()
	blocker := filepath.Join(tempDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	// A regular file where a directory is expected
	store := NewStore(filepath.Join(blocker, "meals.db"))
	if err := store.Init(context.Background()); err == nil {
		store.Close()
		t.Fatal("expected Init to fail")
	}
}

func TestReopenKeepsData(t *testing.T) {
	store, cleanup := setupTestStore(t)
	ctx := context.Background()

	meal := models.NewMeal("Pho", time.Date(2025, 11, 2, 19, 45, 12, 345678901, time.UTC), models.CategoryDinner)
	if err := store.SaveMeal(ctx, meal); err != nil {
		t.Fatalf("SaveMeal: %v", err)
	}
	path := store.GetConfigPath()
	cleanup()

	reopened := NewStore(path)
	if err := reopened.Init(ctx); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetMeal(ctx, meal.ID)
	if err != nil {
		t.Fatalf("GetMeal: %v", err)
	}
	if !got.MealTime.Equal(meal.MealTime) {
		t.Errorf("expected meal time %v to round-trip exactly, got %v", meal.MealTime, got.MealTime)
	}
}

func TestGetMealNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetMeal(context.Background(), "nope")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveMealPreservesCreatedAt(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	meal := models.NewMeal("Granola", time.Now().Add(-time.Hour), models.CategoryBreakfast)
	if err := store.SaveMeal(ctx, meal); err != nil {
		t.Fatalf("SaveMeal: %v", err)
	}
	if _, err := store.GetDB().ExecContext(ctx, `UPDATE meals SET created_at = '2000-01-01T00:00:00Z' WHERE id = ?`, meal.ID); err != nil {
		t.Fatal(err)
	}

	meal.Notes = "with yogurt"
	if err := store.SaveMeal(ctx, meal); err != nil {
		t.Fatalf("SaveMeal: %v", err)
	}

	var createdAt string
	if err := store.GetDB().QueryRowContext(ctx, `SELECT created_at FROM meals WHERE id = ?`, meal.ID).Scan(&createdAt); err != nil {
		t.Fatal(err)
	}
	if createdAt != "2000-01-01T00:00:00Z" {
		t.Errorf("expected created_at to survive the upsert, got %s", createdAt)
	}
}

func TestSchemaRejectsEmptyName(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	meal := models.NewMeal("placeholder", time.Now(), models.CategorySnack)
	meal.Name = "  "
	if err := store.SaveMeal(context.Background(), meal); err == nil {
		t.Error("expected the schema check to reject a blank name")
	}
}

func TestOperationsBeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	if _, err := store.ListMeals(ctx); err == nil {
		t.Error("expected ListMeals to fail before Init")
	}
	if err := store.SaveMeal(ctx, models.NewMeal("x", time.Now(), "")); err == nil {
		t.Error("expected SaveMeal to fail before Init")
	}
	if _, err := store.CountMeals(ctx); err == nil {
		t.Error("expected CountMeals to fail before Init")
	}
	if err := store.Verify(ctx); err == nil {
		t.Error("expected Verify to fail before Init")
	}
}
