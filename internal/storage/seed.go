package storage

import (
	"time"

	"github.com/julianstephens/mealtrack/internal/models"
)

// SampleMeals returns the demo meals offered to an empty store, all on the
// calendar day of day.
func SampleMeals(day time.Time) []models.Meal {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	breakfast := models.NewMeal("Healthy Breakfast", midnight.Add(8*time.Hour), models.CategoryBreakfast)
	breakfast.Notes = "Oatmeal with fresh berries and honey"
	breakfast.Location = "Home"

	lunch := models.NewMeal("Office Lunch", midnight.Add(12*time.Hour+30*time.Minute), models.CategoryLunch)
	lunch.Notes = "Grilled chicken salad with mixed vegetables"
	lunch.Location = "Office Cafeteria"

	dinner := models.NewMeal("Family Dinner", midnight.Add(19*time.Hour), models.CategoryDinner)
	dinner.Notes = "Pasta with marinara sauce and garlic bread"
	dinner.Location = "Home"

	return []models.Meal{breakfast, lunch, dinner}
}
