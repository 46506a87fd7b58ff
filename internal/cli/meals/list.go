package meals

import (
	"fmt"
	"sort"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/models"
)

type ListCmd struct {
	Today    bool   `help:"Only meals from today."`
	From     string `help:"Start date (YYYY-MM-DD), inclusive."`
	To       string `help:"End date (YYYY-MM-DD), inclusive."`
	Category string `short:"c" help:"Only meals in this category."`
}

func (c *ListCmd) Validate() error {
	if c.Today && (c.From != "" || c.To != "") {
		return fmt.Errorf("--today cannot be combined with --from/--to")
	}
	return nil
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		return err
	}

	meals, title, err := c.selectMeals(ctx)
	if err != nil {
		return err
	}

	ctx.Println(cli.HeaderStyle.Render(title))
	if len(meals) == 0 {
		ctx.Println(cli.MutedStyle.Render("No meals found."))
		return nil
	}
	now := ctx.Now()
	loc := ctx.Location()
	for _, m := range meals {
		ctx.Println(cli.MealLine(m, now, loc))
	}
	ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("%d meal(s)", len(meals))))
	return nil
}

func (c *ListCmd) selectMeals(ctx *cli.Context) ([]models.Meal, string, error) {
	var (
		meals []models.Meal
		title string
	)
	switch {
	case c.Today:
		meals, title = ctx.Directory.Today(), "Today's meals"
	case c.From != "" || c.To != "":
		now, loc := ctx.Now(), ctx.Location()
		start, err := cli.ParseDate(c.From, now, loc)
		if err != nil {
			return nil, "", err
		}
		end, err := cli.ParseDate(c.To, now, loc)
		if err != nil {
			return nil, "", err
		}
		if end.Before(start) {
			return nil, "", fmt.Errorf("--to is before --from")
		}
		meals = ctx.Store.GetByDateRange(ctx.Ctx, start, end.AddDate(0, 0, 1))
		title = fmt.Sprintf("Meals from %s to %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	case c.Category != "":
		category, err := models.ParseCategory(c.Category)
		if err != nil {
			return nil, "", err
		}
		meals, title = ctx.Directory.ByCategory(ctx.Ctx, category), string(category)+" meals"
	default:
		meals, title = ctx.Directory.All(), "All meals"
		sort.SliceStable(meals, func(i, j int) bool {
			return meals[i].MealTime.After(meals[j].MealTime)
		})
	}

	// --category also narrows the other views
	if c.Category != "" && (c.Today || c.From != "" || c.To != "") {
		category, err := models.ParseCategory(c.Category)
		if err != nil {
			return nil, "", err
		}
		filtered := meals[:0:0]
		for _, m := range meals {
			if m.Category == category {
				filtered = append(filtered, m)
			}
		}
		meals = filtered
	}
	return meals, title, nil
}
