package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/mealtrack/internal/constants"
	"github.com/julianstephens/mealtrack/internal/models"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	NameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	categoryColors = map[models.Category]lipgloss.Color{
		models.CategoryBreakfast: lipgloss.Color("220"),
		models.CategoryLunch:     lipgloss.Color("42"),
		models.CategoryDinner:    lipgloss.Color("39"),
		models.CategorySnack:     lipgloss.Color("213"),
		models.CategoryOther:     lipgloss.Color("245"),
	}
)

func CategoryBadge(c models.Category) string {
	color, ok := categoryColors[c]
	if !ok {
		color = categoryColors[models.CategoryOther]
	}
	return lipgloss.NewStyle().Foreground(color).Width(9).Render(string(c))
}

// ShortID is the prefix shown in lists; FindMeal accepts it back.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// MealLine renders one list row.
func MealLine(m models.Meal, now time.Time, loc *time.Location) string {
	when := m.MealTime.In(loc).Format(constants.DateTimeFormat)
	rel := humanize.RelTime(m.MealTime, now, "ago", "from now")

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s  %s %s",
		MutedStyle.Render(ShortID(m.ID)),
		when,
		CategoryBadge(m.Category),
		NameStyle.Render(m.Name),
		MutedStyle.Render("("+rel+")"),
	)
	if m.HasImage() {
		b.WriteString(" 📷")
	}
	return b.String()
}
