package storage

import (
	"context"
	"time"

	"github.com/julianstephens/mealtrack/internal/models"
)

// Provider is a durable meal backend. Providers report every failure as an
// error; RecordStore decides which of those a caller gets to see.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error

	// Meals
	ListMeals(ctx context.Context) ([]models.Meal, error)
	ListMealsBetween(ctx context.Context, start, end time.Time) ([]models.Meal, error)
	ListMealsByCategory(ctx context.Context, category models.Category) ([]models.Meal, error)
	SearchMeals(ctx context.Context, term string) ([]models.Meal, error)
	// GetMeal returns errors.ErrNotFound when no meal has the id.
	GetMeal(ctx context.Context, id string) (models.Meal, error)
	SaveMeal(ctx context.Context, meal models.Meal) error
	DeleteMeal(ctx context.Context, id string) (bool, error)
	CountMeals(ctx context.Context) (int, error)
	ClearMeals(ctx context.Context) error

	// Utils
	GetConfigPath() string
}
