package meals

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/media"
	"github.com/julianstephens/mealtrack/internal/models"
)

type EditCmd struct {
	ID            string `arg:"" help:"Meal ID or unique prefix."`
	Name          string `help:"New name."`
	Time          string `short:"t" help:"New meal time (HH:MM today, or YYYY-MM-DD HH:MM)."`
	Category      string `short:"c" help:"New category."`
	Notes         string `short:"n" help:"New notes."`
	Location      string `short:"l" help:"New location."`
	Coords        string `help:"New location from coordinates (lat,lon)."`
	Place         string `help:"Comma-separated place parts to label --coords."`
	Photo         string `short:"p" help:"New photo path." type:"path"`
	ClearNotes    bool   `help:"Remove the notes."`
	ClearLocation bool   `help:"Remove the location."`
	ClearPhoto    bool   `help:"Detach the photo (the file is kept)."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		return err
	}
	meal, err := cli.FindMeal(ctx.Directory, c.ID)
	if err != nil {
		return err
	}

	updated, err := c.apply(ctx, meal)
	if err != nil {
		return err
	}
	if updated.Equal(meal) {
		ctx.Println("Nothing to change.")
		return nil
	}

	ok, err := ctx.Directory.Update(ctx.Ctx, updated)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("failed to update meal %s, see the log for details", cli.ShortID(meal.ID))
	}
	ctx.Printf("%s Updated %s\n", cli.SuccessStyle.Render("✓"), updated)
	return nil
}

func (c *EditCmd) apply(ctx *cli.Context, m models.Meal) (models.Meal, error) {
	if name := strings.TrimSpace(c.Name); name != "" {
		m.Name = name
	}
	if c.Time != "" {
		t, err := cli.ParseMealTime(c.Time, ctx.Now(), ctx.Location())
		if err != nil {
			return m, err
		}
		m.MealTime = t
	}
	if c.Category != "" {
		category, err := models.ParseCategory(c.Category)
		if err != nil {
			return m, err
		}
		m.Category = category
	}

	switch {
	case c.ClearNotes:
		m.Notes = ""
	case c.Notes != "":
		m.Notes = strings.TrimSpace(c.Notes)
	}

	switch {
	case c.ClearLocation:
		m.Location = ""
	case c.Location != "" || c.Coords != "":
		loc, err := resolveLocation(c.Location, c.Coords, c.Place)
		if err != nil {
			return m, err
		}
		m.Location = loc
	}

	switch {
	case c.ClearPhoto:
		m.ImagePath = ""
	case c.Photo != "":
		if _, ok := media.Resolve(c.Photo); !ok {
			return m, fmt.Errorf("photo not found: %s", c.Photo)
		}
		m.ImagePath = c.Photo
	}
	return m, nil
}
