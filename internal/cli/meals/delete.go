package meals

import (
	"fmt"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/media"
)

type DeleteCmd struct {
	ID          string `arg:"" help:"Meal ID or unique prefix."`
	Yes         bool   `short:"y" help:"Skip the confirmation prompt."`
	DeletePhoto bool   `help:"Also delete the attached photo file."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		return err
	}
	meal, err := cli.FindMeal(ctx.Directory, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %q?", meal.Name), meal.MealTimeFormatted())
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if !ctx.Directory.Remove(ctx.Ctx, meal.ID) {
		return fmt.Errorf("failed to delete meal %s", cli.ShortID(meal.ID))
	}
	ctx.Printf("Deleted meal: %s (ID: %s)\n", meal.Name, cli.ShortID(meal.ID))

	if c.DeletePhoto && meal.HasImage() {
		if media.Delete(meal.ImagePath) {
			ctx.Printf("Deleted photo: %s\n", meal.ImagePath)
		} else {
			ctx.Printf("%s Photo %s could not be deleted\n", cli.WarnStyle.Render("⚠"), meal.ImagePath)
		}
	}
	return nil
}
