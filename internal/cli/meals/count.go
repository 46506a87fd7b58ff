package meals

import (
	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/errors"
	"github.com/julianstephens/mealtrack/internal/logger"
)

type CountCmd struct{}

// Run reports a storage that failed to initialize instead of failing.
func (c *CountCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		if !errors.IsStorageInit(err) {
			return err
		}
		logger.Warn("Meal count unavailable", "error", err)
		ctx.Printf("%s Meal count unavailable: %v\n", cli.WarnStyle.Render("⚠"), err)
		return nil
	}
	ctx.Printf("%d meal(s), %d today\n", ctx.Directory.Count(), len(ctx.Directory.Today()))
	return nil
}
