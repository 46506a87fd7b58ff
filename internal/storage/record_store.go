package storage

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/mealtrack/internal/errors"
	"github.com/julianstephens/mealtrack/internal/logger"
	"github.com/julianstephens/mealtrack/internal/models"
)

// RecordStore wraps a Provider with the failure policy the rest of the app
// relies on: reads never fail (they log and come back empty), writes report
// success as a bool, and only initialization and validation surface errors.
type RecordStore struct {
	provider Provider
	now      func() time.Time

	mu    sync.Mutex
	ready bool
}

type Option func(*RecordStore)

// WithClock sets the clock Save validates meal times against.
func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) {
		s.now = now
	}
}

// NewRecordStore creates a store over p. Initialize must be called before use.
func NewRecordStore(p Provider, opts ...Option) *RecordStore {
	s := &RecordStore{
		provider: p,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the underlying backend.
func (s *RecordStore) Provider() Provider {
	return s.provider
}

// Location returns where the backing store lives.
func (s *RecordStore) Location() string {
	return s.provider.GetConfigPath()
}

// Initialize opens the backend and creates its schema. It is safe to call
// repeatedly and from several goroutines: concurrent callers wait on the
// first one and only a successful attempt is remembered.
func (s *RecordStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := s.provider.Init(ctx); err != nil {
		logger.Error("Failed to initialize storage", "location", s.Location(), "error", err)
		return &errors.StorageInitError{Location: s.Location(), Err: err}
	}
	s.ready = true
	logger.Debug("Storage initialized", "location", s.Location())
	return nil
}

// Ready reports whether Initialize has succeeded.
func (s *RecordStore) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Close releases the backend connection.
func (s *RecordStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = false
	return s.provider.Close()
}

func (s *RecordStore) usable(op string) bool {
	if s.Ready() {
		return true
	}
	logger.Error("Storage used before initialization", "op", op)
	return false
}

func (s *RecordStore) list(op string, fn func() ([]models.Meal, error)) []models.Meal {
	if !s.usable(op) {
		return []models.Meal{}
	}
	meals, err := fn()
	if err != nil {
		logger.Error("Storage read failed", "op", op, "error", err)
		return []models.Meal{}
	}
	if meals == nil {
		return []models.Meal{}
	}
	return meals
}

// GetAll returns every meal, newest first.
func (s *RecordStore) GetAll(ctx context.Context) []models.Meal {
	return s.list("GetAll", func() ([]models.Meal, error) {
		return s.provider.ListMeals(ctx)
	})
}

// GetByDateRange returns meals with start <= meal time < end, oldest first.
func (s *RecordStore) GetByDateRange(ctx context.Context, start, end time.Time) []models.Meal {
	return s.list("GetByDateRange", func() ([]models.Meal, error) {
		return s.provider.ListMealsBetween(ctx, start, end)
	})
}

// GetByCategory returns meals in category, newest first.
func (s *RecordStore) GetByCategory(ctx context.Context, category models.Category) []models.Meal {
	return s.list("GetByCategory", func() ([]models.Meal, error) {
		return s.provider.ListMealsByCategory(ctx, category)
	})
}

// Search matches term case-insensitively against name or notes. The term is
// matched as given, surrounding spaces included. A blank term returns
// everything.
func (s *RecordStore) Search(ctx context.Context, term string) []models.Meal {
	if strings.TrimSpace(term) == "" {
		return s.GetAll(ctx)
	}
	return s.list("Search", func() ([]models.Meal, error) {
		return s.provider.SearchMeals(ctx, term)
	})
}

// GetByID returns the meal with id. Absence and storage faults both report false.
func (s *RecordStore) GetByID(ctx context.Context, id string) (models.Meal, bool) {
	if !s.usable("GetByID") {
		return models.Meal{}, false
	}
	meal, err := s.provider.GetMeal(ctx, id)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			logger.Error("Storage read failed", "op", "GetByID", "id", id, "error", err)
		}
		return models.Meal{}, false
	}
	return meal, true
}

// Save inserts meal or replaces the stored meal with the same id. A meal
// that fails validation is rejected with a *errors.ValidationError and is
// never written; storage faults are logged and reported as false.
func (s *RecordStore) Save(ctx context.Context, meal models.Meal) (bool, error) {
	if err := meal.Validate(s.now()); err != nil {
		return false, err
	}
	if !s.usable("Save") {
		return false, nil
	}
	if err := s.provider.SaveMeal(ctx, meal); err != nil {
		logger.Error("Storage write failed", "op", "Save", "id", meal.ID, "error", err)
		return false, nil
	}
	return true, nil
}

// Delete removes the meal with id and reports whether anything was removed.
func (s *RecordStore) Delete(ctx context.Context, id string) bool {
	if !s.usable("Delete") {
		return false
	}
	deleted, err := s.provider.DeleteMeal(ctx, id)
	if err != nil {
		logger.Error("Storage write failed", "op", "Delete", "id", id, "error", err)
		return false
	}
	return deleted
}

// Count returns the number of stored meals, 0 on failure.
func (s *RecordStore) Count(ctx context.Context) int {
	if !s.usable("Count") {
		return 0
	}
	n, err := s.provider.CountMeals(ctx)
	if err != nil {
		logger.Error("Storage read failed", "op", "Count", "error", err)
		return 0
	}
	return n
}

// Clear removes every stored meal.
func (s *RecordStore) Clear(ctx context.Context) bool {
	if !s.usable("Clear") {
		return false
	}
	if err := s.provider.ClearMeals(ctx); err != nil {
		logger.Error("Storage write failed", "op", "Clear", "error", err)
		return false
	}
	return true
}

// SeedIfEmpty saves seed only when the store holds no meals at all and
// returns how many seed meals were written.
func (s *RecordStore) SeedIfEmpty(ctx context.Context, seed []models.Meal) int {
	if len(seed) == 0 || !s.usable("SeedIfEmpty") {
		return 0
	}
	n, err := s.provider.CountMeals(ctx)
	if err != nil {
		logger.Error("Storage read failed", "op", "SeedIfEmpty", "error", err)
		return 0
	}
	if n > 0 {
		return 0
	}

	inserted := 0
	for _, meal := range seed {
		ok, err := s.Save(ctx, meal)
		if err != nil {
			logger.Warn("Skipping invalid seed meal", "name", meal.Name, "error", err)
			continue
		}
		if ok {
			inserted++
		}
	}
	logger.Info("Seeded sample meals", "count", inserted)
	return inserted
}
