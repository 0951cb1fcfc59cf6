// Package tracker owns the habit collection and completion log and answers
// every query the UI surfaces need. A Tracker is not safe for concurrent use.
package tracker

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/scheduler"
	"github.com/julianstephens/habitual/internal/stats"
)

var (
	// ErrDuplicateID is returned when adding a habit whose id already exists.
	ErrDuplicateID = errors.New("duplicate habit id")
	// ErrNotFound is returned for operations on an unknown habit id.
	ErrNotFound = errors.New("habit not found")
)

// Options configures a Tracker. Zero values select sensible defaults.
type Options struct {
	// Location decides which calendar day "today" is. Defaults to time.Local.
	Location *time.Location
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// Notifier receives reminder events. Defaults to notifier.Discard.
	Notifier notifier.Sink
	// Random drives example data generation. Defaults to rand.Float64.
	Random func() float64
}

type Tracker struct {
	habits     []models.Habit
	logs       map[string][]models.CompletionLog
	exampleIDs []string

	scheduler *scheduler.Scheduler
	analyzer  *stats.Analyzer
	sink      notifier.Sink
	now       func() time.Time
	loc       *time.Location
	random    func() float64
}

// New creates an empty Tracker.
func New(opts Options) *Tracker {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = notifier.Discard{}
	}
	if opts.Random == nil {
		opts.Random = rand.Float64
	}

	s := scheduler.New()
	return &Tracker{
		logs:      make(map[string][]models.CompletionLog),
		scheduler: s,
		analyzer:  stats.NewAnalyzer(s),
		sink:      opts.Notifier,
		now:       opts.Now,
		loc:       opts.Location,
		random:    opts.Random,
	}
}

// Today returns the current instant in the tracker's location.
func (t *Tracker) Today() time.Time {
	return t.now().In(t.loc)
}

// Location returns the location calendar days are resolved in.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// State returns a deep copy of everything that needs persisting.
func (t *Tracker) State() models.State {
	return models.State{
		Habits:          cloneHabits(t.habits),
		Logs:            cloneLogs(t.logs),
		ExampleHabitIDs: append([]string(nil), t.exampleIDs...),
	}
}

// Replace swaps in a complete state, as loaded from storage or an import.
// No reminder events are emitted.
func (t *Tracker) Replace(state models.State) {
	t.habits = cloneHabits(state.Habits)
	t.logs = cloneLogs(state.Logs)

	t.exampleIDs = nil
	for _, id := range state.ExampleHabitIDs {
		if t.indexOf(id) >= 0 {
			t.exampleIDs = append(t.exampleIDs, id)
		}
	}
}

func (t *Tracker) indexOf(id string) int {
	for i, h := range t.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) emit(e notifier.Event) {
	if err := t.sink.Emit(e); err != nil {
		logger.Warn("Failed to deliver reminder event", "kind", e.Kind, "habit", e.HabitID, "error", err)
	}
}

func cloneHabit(h models.Habit) models.Habit {
	h.TargetDays = append([]int(nil), h.TargetDays...)
	if h.DailyGoal != nil {
		goal := *h.DailyGoal
		h.DailyGoal = &goal
	}
	return h
}

func cloneHabits(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		out = append(out, cloneHabit(h))
	}
	return out
}

func cloneLogs(logs map[string][]models.CompletionLog) map[string][]models.CompletionLog {
	out := make(map[string][]models.CompletionLog, len(logs))
	for id, entries := range logs {
		out[id] = append([]models.CompletionLog(nil), entries...)
	}
	return out
}
