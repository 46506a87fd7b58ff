package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/mealtrack/internal/cli"
)

type DebugCmd struct {
	DBPath   DebugDBPathCmd   `cmd:"" name:"db-path" help:"Show database location."`
	DumpMeal DebugDumpMealCmd `cmd:"" name:"dump" help:"Dump a stored meal as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return writeJSON(ctx, map[string]string{
		"path":   ctx.Store.Location(),
		"config": ctx.Config.ConfigFile,
	})
}

type DebugDumpMealCmd struct {
	ID string `arg:"" help:"Meal ID."`
}

// Run reads the meal straight from storage, bypassing the directory.
func (cmd *DebugDumpMealCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		return err
	}
	meal, ok := ctx.Store.GetByID(ctx.Ctx, cmd.ID)
	if !ok {
		return fmt.Errorf("no meal found with ID %s", cmd.ID)
	}
	return writeJSON(ctx, meal)
}

func writeJSON(ctx *cli.Context, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(b))
	return nil
}
