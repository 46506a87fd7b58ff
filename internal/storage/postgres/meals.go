package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/mealtrack/internal/errors"
	"github.com/julianstephens/mealtrack/internal/models"
)

const mealColumns = `id, name, meal_time, category, notes, location, image_path`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeal(row rowScanner) (models.Meal, error) {
	var m models.Meal
	var category string

	if err := row.Scan(&m.ID, &m.Name, &m.MealTime, &category, &m.Notes, &m.Location, &m.ImagePath); err != nil {
		return models.Meal{}, err
	}
	m.MealTime = m.MealTime.In(time.Local)
	m.Category = models.Category(category)
	return m, nil
}

func (s *Store) queryMeals(ctx context.Context, query string, args ...interface{}) ([]models.Meal, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (s *Store) ListMeals(ctx context.Context) ([]models.Meal, error) {
	return s.queryMeals(ctx, `SELECT `+mealColumns+` FROM meals ORDER BY meal_time DESC, id`)
}

func (s *Store) ListMealsBetween(ctx context.Context, start, end time.Time) ([]models.Meal, error) {
	return s.queryMeals(ctx, `
SELECT `+mealColumns+` FROM meals
WHERE meal_time >= $1 AND meal_time < $2
ORDER BY meal_time ASC, id`, start, end)
}

func (s *Store) ListMealsByCategory(ctx context.Context, category models.Category) ([]models.Meal, error) {
	return s.queryMeals(ctx, `
SELECT `+mealColumns+` FROM meals
WHERE category = $1
ORDER BY meal_time DESC, id`, string(category))
}

func (s *Store) SearchMeals(ctx context.Context, term string) ([]models.Meal, error) {
	return s.queryMeals(ctx, `
SELECT `+mealColumns+` FROM meals
WHERE strpos(lower(name), lower($1)) > 0 OR strpos(lower(notes), lower($1)) > 0
ORDER BY meal_time DESC, id`, term)
}

func (s *Store) GetMeal(ctx context.Context, id string) (models.Meal, error) {
	if s.db == nil {
		return models.Meal{}, fmt.Errorf("storage not initialized")
	}
	m, err := scanMeal(s.db.QueryRowContext(ctx, `SELECT `+mealColumns+` FROM meals WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return models.Meal{}, errors.ErrNotFound
	}
	if err != nil {
		return models.Meal{}, fmt.Errorf("failed to get meal %s: %w", id, err)
	}
	return m, nil
}

func (s *Store) SaveMeal(ctx context.Context, meal models.Meal) error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO meals (id, name, meal_time, category, notes, location, image_path)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    meal_time = EXCLUDED.meal_time,
    category = EXCLUDED.category,
    notes = EXCLUDED.notes,
    location = EXCLUDED.location,
    image_path = EXCLUDED.image_path,
    updated_at = now()`,
		meal.ID, meal.Name, meal.MealTime, string(meal.Category), meal.Notes, meal.Location, meal.ImagePath,
	)
	if err != nil {
		return fmt.Errorf("failed to save meal %s: %w", meal.ID, err)
	}
	return nil
}

func (s *Store) DeleteMeal(ctx context.Context, id string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("storage not initialized")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete meal %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) CountMeals(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not initialized")
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM meals`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) ClearMeals(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized")
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM meals`)
	return err
}
