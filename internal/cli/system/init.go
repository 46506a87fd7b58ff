package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/storage"
	"github.com/julianstephens/mealtrack/internal/storage/postgres"
	"github.com/julianstephens/mealtrack/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing SQLite database (after backing it up) before initializing."`
	NoSeed bool   `help:"Do not add sample meals to an empty database."`
	Source string `help:"Database path or PostgreSQL connection string to copy meals from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	seed := !c.NoSeed && c.Source == "" && ctx.Config.SeedSampleData
	if err := ctx.Open(seed); err != nil {
		return err
	}
	ctx.Printf("Initialized mealtrack storage at: %s\n", ctx.Store.Location())

	if c.Source != "" {
		ctx.Printf("Copying meals from: %s\n", c.Source)
		n, err := c.copyMeals(ctx)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Directory.Refresh(ctx.Ctx)
		ctx.Printf("  Copied %d meal(s)\n", n)
	}

	ctx.Printf("%d meal(s) stored.\n", ctx.Directory.Count())
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.SQLitePath()
	if dbPath == "" {
		return fmt.Errorf("--force is only supported for SQLite databases")
	}
	if c.Source != "" {
		absDB, _ := filepath.Abs(dbPath)
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == absDB {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func (c *InitCmd) copyMeals(ctx *cli.Context) (int, error) {
	var source storage.Provider
	if postgres.IsConnString(c.Source) {
		if ok, err := postgres.ValidateConnString(c.Source); !ok {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return 0, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return 0, err
		}
		source = postgres.New(c.Source)
	} else {
		if _, err := os.Stat(c.Source); err != nil {
			return 0, fmt.Errorf("source database not found: %s", c.Source)
		}
		source = sqlite.NewStore(c.Source)
	}

	if err := source.Init(ctx.Ctx); err != nil {
		return 0, fmt.Errorf("failed to open source database: %w", err)
	}
	defer source.Close()

	meals, err := source.ListMeals(ctx.Ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read meals from source: %w", err)
	}

	copied := 0
	for _, m := range meals {
		ok, err := ctx.Store.Save(ctx.Ctx, m)
		if err != nil {
			ctx.Printf("  Skipping %s: %v\n", m.Name, err)
			continue
		}
		if !ok {
			return copied, fmt.Errorf("failed to save meal %s", m.ID)
		}
		copied++
	}
	return copied, nil
}
