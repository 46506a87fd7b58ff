package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mealtrack/internal/backup"
	"github.com/julianstephens/mealtrack/internal/config"
	"github.com/julianstephens/mealtrack/internal/constants"
	"github.com/julianstephens/mealtrack/internal/directory"
	"github.com/julianstephens/mealtrack/internal/logger"
	"github.com/julianstephens/mealtrack/internal/models"
	"github.com/julianstephens/mealtrack/internal/storage"
	"github.com/julianstephens/mealtrack/internal/storage/sqlite"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = stderrors.New("cancelled")

type Context struct {
	Ctx       context.Context
	Config    *config.Config
	Store     *storage.RecordStore
	Directory *directory.Directory
	Out       io.Writer
	// Confirm asks a yes/no question. Tests replace it.
	Confirm func(title, description string) (bool, error)
	// InitErr holds the storage initialization failure, if any.
	InitErr error

	now func() time.Time
}

func NewContext(ctx context.Context, cfg *config.Config, store *storage.RecordStore, dir *directory.Directory) *Context {
	return &Context{
		Ctx:       ctx,
		Config:    cfg,
		Store:     store,
		Directory: dir,
		Out:       os.Stdout,
		Confirm:   ConfirmPrompt,
		now:       time.Now,
	}
}

// Open initializes storage and loads the directory, seeding sample meals
// when seed is set and the store is empty. A failure is kept in InitErr
// so commands can degrade instead of crashing.
func (c *Context) Open(seed bool) error {
	var meals []models.Meal
	if seed {
		meals = storage.SampleMeals(c.Now().In(c.Location()))
	}
	c.InitErr = c.Directory.Init(c.Ctx, meals)
	return c.InitErr
}

// Require returns the storage initialization error for commands that
// cannot run without a database.
func (c *Context) Require() error {
	if c.InitErr != nil {
		return c.InitErr
	}
	if !c.Store.Ready() {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	return nil
}

func (c *Context) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// SetClock overrides the clock. Tests use it.
func (c *Context) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Context) Location() *time.Location {
	if c.Config == nil {
		return time.Local
	}
	loc, err := c.Config.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// SQLitePath returns the database file, or "" when the backend is not SQLite.
func (c *Context) SQLitePath() string {
	if s, ok := c.Store.Provider().(*sqlite.Store); ok {
		return s.GetConfigPath()
	}
	return ""
}

// BackupManager returns a manager for the SQLite database.
func (c *Context) BackupManager() (*backup.Manager, error) {
	path := c.SQLitePath()
	if path == "" {
		return nil, fmt.Errorf("backups are only supported for SQLite databases")
	}
	return backup.NewManager(path, ""), nil
}

// PerformAutomaticBackup snapshots the SQLite database before destructive
// operations. Failures are logged and otherwise ignored.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.Create(c.Ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ConfirmPrompt asks a yes/no question on the terminal.
func ConfirmPrompt(title, description string) (bool, error) {
	var ok bool
	confirm := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if description != "" {
		confirm = confirm.Description(description)
	}
	if err := huh.NewForm(huh.NewGroup(confirm)).WithTheme(huh.ThemeDracula()).Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// ParseMealTime accepts "", "HH:MM" (today), "YYYY-MM-DD HH:MM" or RFC 3339.
// An empty string means now.
func ParseMealTime(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if t, err := time.ParseInLocation(constants.TimeFormat, s, loc); err == nil {
		n := now.In(loc)
		return time.Date(n.Year(), n.Month(), n.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	if t, err := time.ParseInLocation(constants.DateTimeFormat, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM or %s)", s, constants.DateTimeFormat)
}

// ParseDate parses YYYY-MM-DD or "today" as midnight in loc.
func ParseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		n := now.In(loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected %s)", s, constants.DateFormat)
	}
	return t, nil
}

// FindMeal resolves a full id or a unique id prefix against the directory.
func FindMeal(dir *directory.Directory, id string) (models.Meal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Meal{}, fmt.Errorf("meal id is required")
	}
	if m, ok := dir.Get(id); ok {
		return m, nil
	}

	var matches []models.Meal
	for _, m := range dir.All() {
		if strings.HasPrefix(m.ID, id) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 0:
		return models.Meal{}, fmt.Errorf("no meal with id %s", id)
	case 1:
		return matches[0], nil
	default:
		return models.Meal{}, fmt.Errorf("id prefix %s is ambiguous (%d meals)", id, len(matches))
	}
}
