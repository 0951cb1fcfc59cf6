package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

// Deliverer sends a reminder to the user.
type Deliverer interface {
	Notify(notifier.Reminder) error
}

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// Sink receives reminder schedule events from the tracker
	Sink notifier.Sink
	// Deliverer shows due reminders; used by the remind command
	Deliverer Deliverer
	Location  *time.Location
	Now       func() time.Time
}

func (c *Context) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now().In(c.location())
	}
	return time.Now().In(c.location())
}

// Open loads the store and returns a tracker holding its state.
func (c *Context) Open() (*tracker.Tracker, error) {
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	state, err := c.Store.LoadState()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	t := tracker.New(tracker.Options{
		Location: c.location(),
		Now:      c.now,
		Notifier: c.Sink,
	})
	t.Replace(state)
	return t, nil
}

// Commit saves the tracker state back to the store.
func (c *Context) Commit(t *tracker.Tracker) error {
	if err := c.Store.SaveState(t.State()); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// PerformAutomaticBackup backs up file stores when automatic backups are
// enabled. Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if c.Config != nil && !c.Config.Backup.Auto {
		return
	}
	path := c.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		// Not a file store, or nothing saved yet
		return
	}
	if _, err := backup.NewManager(path).CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// NotificationsEnabled reports whether reminders should be delivered.
func (c *Context) NotificationsEnabled() bool {
	return c.Config == nil || c.Config.Notifications.Enabled
}

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseWeekdays parses a comma-separated list of weekdays into sorted 0-6 values
func ParseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	seen := make(map[int]bool)
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		day, ok := dayMap[part]
		if !ok {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err != nil || num < 0 || num > 6 {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			day = num
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	sort.Ints(days)
	return days, nil
}

// FormatDays renders target days as short weekday names
func FormatDays(days []int) string {
	if len(days) == 7 {
		return "every day"
	}
	if len(days) == 0 {
		return "no days"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(dayNames) {
			names = append(names, dayNames[d])
		}
	}
	return strings.Join(names, ",")
}

// FormatSchedule describes when a habit is due
func FormatSchedule(h models.Habit) string {
	if h.Frequency == models.FrequencyDaily && len(h.TargetDays) == 7 {
		return "daily"
	}
	return fmt.Sprintf("%s on %s", h.Frequency, FormatDays(h.TargetDays))
}

// ResolveDate turns "", "today", "yesterday" or a YYYY-MM-DD key into a day key.
func ResolveDate(t *tracker.Tracker, s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return utils.DateKey(t.Today()), nil
	case "yesterday":
		return utils.DateKey(utils.SubtractDays(t.Today(), 1)), nil
	}
	if err := utils.ValidateDateKey(s); err != nil {
		return "", err
	}
	return s, nil
}

// ErrAmbiguous is returned when a title matches more than one habit.
var ErrAmbiguous = errors.New("ambiguous habit")

// FindHabit looks a habit up by id, then by case-insensitive title.
func FindHabit(t *tracker.Tracker, ref string) (models.Habit, error) {
	if habit, err := t.Get(ref); err == nil {
		return habit, nil
	}

	var matches []models.Habit
	for _, habit := range t.List() {
		if strings.EqualFold(habit.Title, ref) {
			matches = append(matches, habit)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", tracker.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%w: %q matches %d habits, use the id", ErrAmbiguous, ref, len(matches))
	}
}
