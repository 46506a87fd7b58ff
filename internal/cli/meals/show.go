package meals

import (
	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/constants"
	"github.com/julianstephens/mealtrack/internal/media"
)

type ShowCmd struct {
	ID string `arg:"" help:"Meal ID or unique prefix."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		return err
	}
	meal, err := cli.FindMeal(ctx.Directory, c.ID)
	if err != nil {
		return err
	}

	field := func(label, value string) {
		if value == "" {
			value = cli.MutedStyle.Render("-")
		}
		ctx.Printf("%-10s %s\n", cli.MutedStyle.Render(label), value)
	}

	ctx.Println(cli.HeaderStyle.Render(meal.Name))
	field("ID", meal.ID)
	field("Time", meal.MealTime.In(ctx.Location()).Format(constants.DisplayFormat))
	field("Category", cli.CategoryBadge(meal.Category))
	field("Notes", meal.Notes)
	field("Location", meal.Location)

	if !meal.HasImage() {
		field("Photo", "")
		return nil
	}
	info, ok := media.Resolve(meal.ImagePath)
	if !ok {
		field("Photo", meal.ImagePath+" "+cli.WarnStyle.Render("(missing)"))
		return nil
	}
	field("Photo", info.Path)
	field("", info.SizeFormatted()+", "+info.CreatedFormatted())
	return nil
}
