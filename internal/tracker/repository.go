package tracker

import (
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

// Add appends a habit. Missing ids and creation times are filled in, and a
// daily habit without target days is due every day.
func (t *Tracker) Add(habit models.Habit) (models.Habit, error) {
	habit = cloneHabit(habit)
	if habit.ID == "" {
		habit.ID = utils.NewID()
	}
	if t.indexOf(habit.ID) >= 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrDuplicateID, habit.ID)
	}
	if habit.CreatedAt == "" {
		habit.CreatedAt = t.Today().Format(time.RFC3339)
	}
	if habit.Category == "" {
		habit.Category = models.CategoryOther
	}
	if habit.GoalType == "" {
		habit.GoalType = models.GoalBoolean
	}
	if habit.Frequency == models.FrequencyDaily && len(habit.TargetDays) == 0 {
		habit.TargetDays = slices.Clone(models.AllDays)
	}
	if habit.GoalType != models.GoalNumeric {
		habit.DailyGoal = nil
	}
	if err := validation.ValidateHabit(habit); err != nil {
		return models.Habit{}, err
	}

	t.habits = append(t.habits, habit)
	logger.Debug("Habit added", "id", habit.ID, "title", habit.Title)

	if habit.ReminderTime != "" {
		t.emit(notifier.ScheduleEvent(habit))
	}
	return cloneHabit(habit), nil
}

// Update merges patch into the habit with the given id.
func (t *Tracker) Update(id string, patch models.HabitPatch) (models.Habit, error) {
	i := t.indexOf(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := patch.Apply(cloneHabit(t.habits[i]))
	if err := validation.ValidateHabit(updated); err != nil {
		return models.Habit{}, err
	}

	t.habits[i] = updated
	logger.Debug("Habit updated", "id", id)

	if updated.ReminderTime != "" {
		t.emit(notifier.UpdateEvent(updated))
	} else {
		t.emit(notifier.CancelEvent(updated.ID))
	}
	return cloneHabit(updated), nil
}

// Delete removes a habit and all of its log entries. Unknown ids are ignored.
func (t *Tracker) Delete(id string) {
	i := t.indexOf(id)
	if i < 0 {
		return
	}

	t.emit(notifier.CancelEvent(id))
	t.habits = slices.Delete(t.habits, i, i+1)
	delete(t.logs, id)
	t.exampleIDs = slices.DeleteFunc(t.exampleIDs, func(e string) bool { return e == id })
	logger.Debug("Habit deleted", "id", id)
}

// ClearAll deletes every habit, cancelling their reminders.
func (t *Tracker) ClearAll() {
	for _, h := range t.List() {
		t.Delete(h.ID)
	}
	t.logs = make(map[string][]models.CompletionLog)
	t.exampleIDs = nil
}

// List returns all habits, archived ones included, in insertion order.
func (t *Tracker) List() []models.Habit {
	return cloneHabits(t.habits)
}

// Active returns the non-archived habits.
func (t *Tracker) Active() []models.Habit {
	active := make([]models.Habit, 0, len(t.habits))
	for _, h := range t.habits {
		if !h.Archived {
			active = append(active, cloneHabit(h))
		}
	}
	return active
}

// Get returns the habit with the given id.
func (t *Tracker) Get(id string) (models.Habit, error) {
	i := t.indexOf(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneHabit(t.habits[i]), nil
}

// Logs returns the habit's log entries in insertion order.
func (t *Tracker) Logs(habitID string) []models.CompletionLog {
	return append([]models.CompletionLog(nil), t.logs[habitID]...)
}
