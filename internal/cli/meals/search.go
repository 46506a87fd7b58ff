package meals

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mealtrack/internal/cli"
)

type SearchCmd struct {
	Term string `arg:"" optional:"" help:"Text to find in meal names and notes. Empty lists everything."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		return err
	}

	meals := ctx.Directory.Search(ctx.Ctx, c.Term)
	title := "All meals"
	if t := strings.TrimSpace(c.Term); t != "" {
		title = fmt.Sprintf("Meals matching %q", t)
	}
	ctx.Println(cli.HeaderStyle.Render(title))
	if len(meals) == 0 {
		ctx.Println(cli.MutedStyle.Render("No meals found."))
		return nil
	}
	now, loc := ctx.Now(), ctx.Location()
	for _, m := range meals {
		ctx.Println(cli.MealLine(m, now, loc))
	}
	return nil
}
