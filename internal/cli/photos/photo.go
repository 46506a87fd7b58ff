package photos

import (
	"fmt"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/media"
)

type InfoCmd struct {
	Path string `arg:"" help:"Photo file path." type:"path"`
}

func (c *InfoCmd) Run(ctx *cli.Context) error {
	info, ok := media.Resolve(c.Path)
	if !ok {
		return fmt.Errorf("photo not found: %s", c.Path)
	}
	ctx.Println(cli.HeaderStyle.Render(info.Name))
	ctx.Printf("%-8s %s\n", cli.MutedStyle.Render("Path"), info.Path)
	ctx.Printf("%-8s %s\n", cli.MutedStyle.Render("Size"), info.SizeFormatted())
	ctx.Printf("%-8s %s\n", cli.MutedStyle.Render("Created"), info.CreatedFormatted())
	return nil
}

type DeleteCmd struct {
	Path string `arg:"" help:"Photo file path." type:"path"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %s?", c.Path), "Meals referencing it keep the path.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}
	if !media.Delete(c.Path) {
		return fmt.Errorf("could not delete %s", c.Path)
	}
	ctx.Printf("Deleted photo: %s\n", c.Path)
	return nil
}
