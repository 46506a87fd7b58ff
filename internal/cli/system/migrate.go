package system

import (
	"fmt"

	"github.com/julianstephens/mealtrack/internal/cli"
)

type MigrateCmd struct{}

// Run applies pending migrations. Opening the store already migrates, so
// this mostly reports where the schema stands.
func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		return err
	}
	sp, err := schemaOf(ctx)
	if err != nil {
		return err
	}
	runner, err := sp.Migrator()
	if err != nil {
		return err
	}

	count, err := runner.Apply(ctx.Ctx, func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, err := runner.CurrentVersion(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if count == 0 {
		ctx.Printf("No migrations to apply. Database is at version %d.\n", version)
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s). Database is at version %d.\n", count, version)
	}
	return nil
}
