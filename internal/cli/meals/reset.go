package meals

import (
	"fmt"

	"github.com/julianstephens/mealtrack/internal/cli"
)

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		return err
	}

	n := ctx.Store.Count(ctx.Ctx)
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete all %d meals?", n), "A backup is taken first when using SQLite.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if !ctx.Store.Clear(ctx.Ctx) {
		return fmt.Errorf("failed to clear meals, see the log for details")
	}
	ctx.Directory.Refresh(ctx.Ctx)
	ctx.Printf("Deleted %d meal(s).\n", n)
	return nil
}
