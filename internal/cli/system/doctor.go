package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/keyring"
	"github.com/julianstephens/mealtrack/internal/media"
)

type DoctorCmd struct{}

type severity int

const (
	failure severity = iota
	warning
)

type check struct {
	name     string
	severity severity
	needsDB  bool
	run      func(*cli.Context) error
}

var checks = []check{
	{"Database reachable", failure, false, checkDBReachable},
	{"Schema version", failure, true, checkSchemaVersion},
	{"Migrations complete", failure, true, checkMigrationsComplete},
	{"Backups present", warning, false, checkBackupsPresent},
	{"Meal data", failure, true, checkMeals},
	{"Photo references", warning, true, checkPhotos},
	{"Clock/timezone", failure, false, checkClockTimezone},
	{"OS keyring", warning, false, checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("%s %s: OK\n", cli.SuccessStyle.Render("✓"), c.name)
		case c.severity == warning:
			ctx.Printf("%s %s: WARNING\n", cli.WarnStyle.Render("⚠"), c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("%s %s: FAIL\n", cli.ErrorStyle.Render("❌"), c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
		if c.name == "Database reachable" && err != nil {
			dbReachable = false
		}
	}

	ctx.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	return ctx.Require()
}

func checkSchemaVersion(ctx *cli.Context) error {
	sp, err := schemaOf(ctx)
	if err != nil {
		return err
	}
	return sp.Verify(ctx.Ctx)
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sp, err := schemaOf(ctx)
	if err != nil {
		return err
	}
	runner, err := sp.Migrator()
	if err != nil {
		return err
	}
	pending, err := runner.Pending(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("%d migration(s) pending, run 'mealtrack migrate'", pending)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'mealtrack backup create'")
	}
	return nil
}

// checkMeals re-validates stored meals. Meal times are only checked for
// being set since "in the future" depends on when they were logged.
func checkMeals(ctx *cli.Context) error {
	meals := ctx.Store.GetAll(ctx.Ctx)
	if n := ctx.Store.Count(ctx.Ctx); n != len(meals) {
		return fmt.Errorf("count (%d) does not match listed meals (%d)", n, len(meals))
	}
	seen := make(map[string]bool, len(meals))
	for _, m := range meals {
		if seen[m.ID] {
			return fmt.Errorf("duplicate meal ID found: %s", m.ID)
		}
		seen[m.ID] = true
		if err := m.Validate(m.MealTime); err != nil {
			return fmt.Errorf("meal %s: %w", m.ID, err)
		}
	}
	return nil
}

func checkPhotos(ctx *cli.Context) error {
	missing := 0
	for _, m := range ctx.Directory.All() {
		if m.HasImage() {
			if _, ok := media.Resolve(m.ImagePath); !ok {
				missing++
			}
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d meal(s) reference photos that no longer exist", missing)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := ctx.Config.Location(); err != nil {
		return err
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; PostgreSQL connection strings must come from the environment")
	}
	return nil
}
