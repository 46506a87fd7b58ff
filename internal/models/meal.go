package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/julianstephens/mealtrack/internal/constants"
	"github.com/julianstephens/mealtrack/internal/errors"
)

type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategoryDinner    Category = "Dinner"
	CategorySnack     Category = "Snack"
	CategoryOther     Category = "Other"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategorySnack,
	CategoryOther,
}

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", errors.NewValidationError("category", "unknown category %q", s)
}

// DefaultCategory picks a category from the hour of day:
// 05-11 breakfast, 11-16 lunch, 16-22 dinner, anything else is a snack.
func DefaultCategory(t time.Time) Category {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return CategoryBreakfast
	case h >= 11 && h < 16:
		return CategoryLunch
	case h >= 16 && h < 22:
		return CategoryDinner
	default:
		return CategorySnack
	}
}

// Meal is a single logged meal. Values are snapshots: mutate a copy and
// hand it back to the directory to change stored state.
type Meal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MealTime  time.Time `json:"meal_time"`
	Category  Category  `json:"category"`
	Notes     string    `json:"notes,omitempty"`
	Location  string    `json:"location,omitempty"`
	ImagePath string    `json:"image_path,omitempty"` // externally owned file
}

// NewMeal creates a meal with a fresh id. A zero mealTime means "now" and
// an empty category is derived from the meal time.
func NewMeal(name string, mealTime time.Time, category Category) Meal {
	if mealTime.IsZero() {
		mealTime = time.Now()
	}
	if category == "" {
		category = DefaultCategory(mealTime)
	}
	return Meal{
		ID:       uuid.New().String(),
		Name:     strings.TrimSpace(name),
		MealTime: mealTime,
		Category: category,
	}
}

func (m Meal) HasImage() bool {
	return m.ImagePath != ""
}

// MealTimeFormatted renders the meal time for display
func (m Meal) MealTimeFormatted() string {
	return m.MealTime.Format(constants.DisplayFormat)
}

// Equal reports whether both meals hold the same values. Times are compared
// as instants so a meal read back from storage in another zone still matches.
func (m Meal) Equal(o Meal) bool {
	return m.ID == o.ID &&
		m.Name == o.Name &&
		m.MealTime.Equal(o.MealTime) &&
		m.Category == o.Category &&
		m.Notes == o.Notes &&
		m.Location == o.Location &&
		m.ImagePath == o.ImagePath
}

// EarliestMealTime keeps meal times inside the range every backend can
// store exactly (SQLite keeps unix nanoseconds).
var EarliestMealTime = time.Date(constants.MinMealYear, time.January, 1, 0, 0, 0, 0, time.UTC)

// Validate checks the domain rules for a meal relative to now.
func (m Meal) Validate(now time.Time) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.NewValidationError("id", "must not be empty")
	}
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return errors.NewValidationError("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return errors.NewValidationError("name", "must be at most %d characters", constants.MaxNameLength)
	}
	if utf8.RuneCountInString(m.Notes) > constants.MaxNotesLength {
		return errors.NewValidationError("notes", "must be at most %d characters", constants.MaxNotesLength)
	}
	if utf8.RuneCountInString(m.Location) > constants.MaxLocationLength {
		return errors.NewValidationError("location", "must be at most %d characters", constants.MaxLocationLength)
	}
	if m.MealTime.IsZero() {
		return errors.NewValidationError("meal_time", "must be set")
	}
	if m.MealTime.Before(EarliestMealTime) {
		return errors.NewValidationError("meal_time", "%s is before %s",
			m.MealTime.Format(constants.DateTimeFormat), EarliestMealTime.Format(constants.DateFormat))
	}
	limit := now.Add(constants.MaxFutureHours * time.Hour)
	if m.MealTime.After(limit) {
		return errors.NewValidationError("meal_time", "%s is more than %d hours in the future",
			m.MealTime.Format(constants.DateTimeFormat), constants.MaxFutureHours)
	}
	if _, err := ParseCategory(string(m.Category)); err != nil {
		return err
	}
	return nil
}

func (m Meal) String() string {
	return fmt.Sprintf("%s (%s, %s)", m.Name, m.Category, m.MealTimeFormatted())
}
