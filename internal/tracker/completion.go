package tracker

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Toggle flips the completion of a habit on a day, creating a completed
// entry the first time. A habit never has more than one entry per day.
func (t *Tracker) Toggle(habitID, date string) (bool, error) {
	i := t.indexOf(habitID)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrNotFound, habitID)
	}
	// key by the stored id, never the caller's string
	habitID = t.habits[i].ID
	if err := utils.ValidateDateKey(date); err != nil {
		return false, err
	}

	stamp := t.now().UnixMilli()
	entries := t.logs[habitID]
	for i := range entries {
		if entries[i].Date == date {
			entries[i].Completed = !entries[i].Completed
			entries[i].Timestamp = stamp
			logger.Debug("Completion toggled", "habit", habitID, "date", date, "completed", entries[i].Completed)
			return entries[i].Completed, nil
		}
	}

	t.logs[habitID] = append(entries, models.CompletionLog{
		ID:        utils.NewID(),
		HabitID:   habitID,
		Date:      date,
		Completed: true,
		Timestamp: stamp,
	})
	logger.Debug("Completion toggled", "habit", habitID, "date", date, "completed", true)
	return true, nil
}

// ToggleToday toggles the habit on today's calendar day.
func (t *Tracker) ToggleToday(habitID string) (bool, error) {
	return t.Toggle(habitID, utils.DateKey(t.Today()))
}

// IsCompleted reports whether the habit's entry for date is completed.
func (t *Tracker) IsCompleted(habitID, date string) bool {
	for _, entry := range t.logs[habitID] {
		if entry.Date == date {
			return entry.Completed
		}
	}
	return false
}
