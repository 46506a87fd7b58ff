// Package directory keeps an in-memory mirror of the meal store for fast
// reads. Every mutation goes through the RecordStore first and only touches
// the cached list once persistence has succeeded.
package directory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/mealtrack/internal/logger"
	"github.com/julianstephens/mealtrack/internal/models"
	"github.com/julianstephens/mealtrack/internal/storage"
)

type Directory struct {
	store *storage.RecordStore
	now   func() time.Time
	loc   *time.Location

	// mutation serializes Add/Remove/Update/Refresh/Clear together with
	// their persistence calls.
	mutation sync.Mutex

	// snapMu guards meals. The slice is never modified after publication;
	// writers build a new one and swap it in.
	snapMu sync.RWMutex
	meals  []models.Meal

	subMu  sync.Mutex
	subs   map[int]chan Event
	nextID int
}

type Option func(*Directory)

// WithClock overrides the clock used for Today and validation.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		d.now = now
	}
}

// WithLocation sets the time zone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(d *Directory) {
		if loc != nil {
			d.loc = loc
		}
	}
}

func New(store *storage.RecordStore, opts ...Option) *Directory {
	d := &Directory{
		store: store,
		now:   time.Now,
		loc:   time.Local,
		subs:  make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init initializes the store, loads it, seeds it when empty and reloads.
// A failed initialization is returned as the store's *errors.StorageInitError.
func (d *Directory) Init(ctx context.Context, seed []models.Meal) error {
	if err := d.store.Initialize(ctx); err != nil {
		return err
	}
	d.Refresh(ctx)
	if len(seed) > 0 && d.store.SeedIfEmpty(ctx, seed) > 0 {
		d.Refresh(ctx)
	}
	return nil
}

// Refresh replaces the cached list with the store's current contents.
func (d *Directory) Refresh(ctx context.Context) {
	d.mutation.Lock()
	defer d.mutation.Unlock()

	meals := d.store.GetAll(ctx)
	d.swap(meals)
	logger.Debug("Directory refreshed", "count", len(meals))
	d.publish(Event{Kind: EventRefreshed})
}

// Add validates and persists meal, then appends it to the cached list.
// A validation failure is returned as an error; a storage failure only
// reports false.
func (d *Directory) Add(ctx context.Context, meal models.Meal) (bool, error) {
	d.mutation.Lock()
	defer d.mutation.Unlock()

	if err := meal.Validate(d.now()); err != nil {
		return false, err
	}
	ok, err := d.store.Save(ctx, meal)
	if !ok || err != nil {
		return false, err
	}

	cur := d.snapshot()
	next := make([]models.Meal, 0, len(cur)+1)
	for _, m := range cur {
		// Save is an upsert, so an existing id is replaced rather than duplicated
		if m.ID != meal.ID {
			next = append(next, m)
		}
	}
	next = append(next, meal)
	d.swap(next)
	d.publish(Event{Kind: EventAdded, Meal: meal})
	return true, nil
}

// Remove deletes id from the store and, on success, from the cached list.
// It reports whether the store removed anything.
func (d *Directory) Remove(ctx context.Context, id string) bool {
	d.mutation.Lock()
	defer d.mutation.Unlock()

	if !d.store.Delete(ctx, id) {
		return false
	}

	cur := d.snapshot()
	next := make([]models.Meal, 0, len(cur))
	var removed models.Meal
	for _, m := range cur {
		if m.ID == id {
			removed = m
			continue
		}
		next = append(next, m)
	}
	d.swap(next)
	if removed.ID == "" {
		removed.ID = id
	}
	d.publish(Event{Kind: EventRemoved, Meal: removed})
	return true
}

// Update replaces a cached meal with the same id. The change is persisted
// before the cache is touched; an id missing from the cache reports false.
func (d *Directory) Update(ctx context.Context, meal models.Meal) (bool, error) {
	d.mutation.Lock()
	defer d.mutation.Unlock()

	cur := d.snapshot()
	idx := indexOf(cur, meal.ID)
	if idx < 0 {
		return false, nil
	}
	if err := meal.Validate(d.now()); err != nil {
		return false, err
	}
	ok, err := d.store.Save(ctx, meal)
	if !ok || err != nil {
		return false, err
	}

	next := make([]models.Meal, len(cur))
	copy(next, cur)
	next[idx] = meal
	d.swap(next)
	d.publish(Event{Kind: EventUpdated, Meal: meal})
	return true, nil
}

// Clear empties the cached list. Stored meals are untouched.
func (d *Directory) Clear() {
	d.mutation.Lock()
	defer d.mutation.Unlock()

	d.swap(nil)
	d.publish(Event{Kind: EventCleared})
}

// Get looks id up in the cached list only.
func (d *Directory) Get(id string) (models.Meal, bool) {
	cur := d.snapshot()
	if idx := indexOf(cur, id); idx >= 0 {
		return cur[idx], true
	}
	return models.Meal{}, false
}

// All returns a copy of the cached list.
func (d *Directory) All() []models.Meal {
	cur := d.snapshot()
	out := make([]models.Meal, len(cur))
	copy(out, cur)
	return out
}

// Today returns cached meals on the current calendar date, oldest first.
func (d *Directory) Today() []models.Meal {
	now := d.now().In(d.loc)
	y, m, day := now.Date()

	var out []models.Meal
	for _, meal := range d.snapshot() {
		my, mm, md := meal.MealTime.In(d.loc).Date()
		if my == y && mm == m && md == day {
			out = append(out, meal)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MealTime.Before(out[j].MealTime)
	})
	if out == nil {
		return []models.Meal{}
	}
	return out
}

func (d *Directory) Count() int {
	return len(d.snapshot())
}

// Search queries the store directly so results never depend on cache state.
func (d *Directory) Search(ctx context.Context, term string) []models.Meal {
	return d.store.Search(ctx, term)
}

// ByCategory queries the store directly.
func (d *Directory) ByCategory(ctx context.Context, category models.Category) []models.Meal {
	return d.store.GetByCategory(ctx, category)
}

func (d *Directory) snapshot() []models.Meal {
	d.snapMu.RLock()
	defer d.snapMu.RUnlock()
	return d.meals
}

func (d *Directory) swap(meals []models.Meal) {
	d.snapMu.Lock()
	d.meals = meals
	d.snapMu.Unlock()
}

func indexOf(meals []models.Meal, id string) int {
	for i, m := range meals {
		if m.ID == id {
			return i
		}
	}
	return -1
}
