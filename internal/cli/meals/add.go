package meals

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/location"
	"github.com/julianstephens/mealtrack/internal/media"
	"github.com/julianstephens/mealtrack/internal/models"
)

type AddCmd struct {
	Name     string `arg:"" help:"Meal name."`
	Time     string `short:"t" help:"Meal time (HH:MM today, or YYYY-MM-DD HH:MM). Defaults to now."`
	Category string `short:"c" help:"Category (breakfast|lunch|dinner|snack|other). Defaults from the meal time."`
	Notes    string `short:"n" help:"Free-form notes."`
	Location string `short:"l" help:"Where the meal was eaten."`
	Coords   string `help:"Coordinates as lat,lon. Used when --location is not given."`
	Place    string `help:"Comma-separated place parts (name,street,city,region) to label --coords."`
	Photo    string `short:"p" help:"Path to a photo of the meal." type:"path"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Require(); err != nil {
		return err
	}

	loc := ctx.Location()
	mealTime, err := cli.ParseMealTime(c.Time, ctx.Now(), loc)
	if err != nil {
		return err
	}

	var category models.Category
	if c.Category != "" {
		if category, err = models.ParseCategory(c.Category); err != nil {
			return err
		}
	} else {
		category = models.DefaultCategory(mealTime.In(loc))
	}

	meal := models.NewMeal(c.Name, mealTime, category)
	meal.Notes = strings.TrimSpace(c.Notes)
	if meal.Location, err = resolveLocation(c.Location, c.Coords, c.Place); err != nil {
		return err
	}
	if c.Photo != "" {
		if _, ok := media.Resolve(c.Photo); !ok {
			return fmt.Errorf("photo not found: %s", c.Photo)
		}
		meal.ImagePath = c.Photo
	}

	ok, err := ctx.Directory.Add(ctx.Ctx, meal)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("failed to save meal, see the log for details")
	}

	ctx.Printf("%s Added %s (ID: %s)\n", cli.SuccessStyle.Render("✓"), meal, cli.ShortID(meal.ID))
	return nil
}

// resolveLocation prefers explicit text, then formatted coordinates.
func resolveLocation(text, coords, place string) (string, error) {
	if text = strings.TrimSpace(text); text != "" {
		return text, nil
	}
	if strings.TrimSpace(coords) == "" {
		return "", nil
	}
	c, err := location.ParseCoordinates(coords)
	if err != nil {
		return "", err
	}
	return location.Format(c, parsePlace(place)), nil
}

func parsePlace(s string) *location.Placemark {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	get := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	return &location.Placemark{
		FeatureName:  get(0),
		Thoroughfare: get(1),
		Locality:     get(2),
		AdminArea:    get(3),
	}
}
