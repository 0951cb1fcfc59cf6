package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitID ConflictType = "duplicate_habit_id"
	ConflictInvalidHabit     ConflictType = "invalid_habit"
	ConflictOrphanLogs       ConflictType = "orphan_logs"
	ConflictDuplicateLogDay  ConflictType = "duplicate_log_day"
	ConflictInvalidLogDate   ConflictType = "invalid_log_date"
	ConflictMisfiledLog      ConflictType = "misfiled_log"
)

// Conflict represents an inconsistency found in stored state
type Conflict struct {
	Type        ConflictType
	Description string
	HabitID     string
	Date        string // YYYY-MM-DD (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks persisted state for inconsistencies
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateState checks habits and logs for problems a store or a hand-edited
// import could introduce.
func (v *Validator) ValidateState(state models.State) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(state.Habits))
	for _, habit := range state.Habits {
		if known[habit.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitID,
				Description: fmt.Sprintf("Duplicate habit ID: %s", habit.ID),
				HabitID:     habit.ID,
			})
		}
		known[habit.ID] = true

		if err := ValidateHabit(habit); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHabit,
				Description: fmt.Sprintf("Habit %q: %v", habit.Title, err),
				HabitID:     habit.ID,
			})
		}
	}

	// Map iteration order is random; report in a stable order
	habitIDs := make([]string, 0, len(state.Logs))
	for id := range state.Logs {
		habitIDs = append(habitIDs, id)
	}
	sort.Strings(habitIDs)

	for _, habitID := range habitIDs {
		entries := state.Logs[habitID]
		if !known[habitID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanLogs,
				Description: fmt.Sprintf("%d log entries for unknown habit %s", len(entries), habitID),
				HabitID:     habitID,
			})
			continue
		}

		seen := make(map[string]bool, len(entries))
		for _, entry := range entries {
			if entry.HabitID != habitID {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictMisfiledLog,
					Description: fmt.Sprintf("Log %s for habit %s is filed under %s", entry.ID, entry.HabitID, habitID),
					HabitID:     habitID,
					Date:        entry.Date,
				})
			}
			if err := utils.ValidateDateKey(entry.Date); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidLogDate,
					Description: fmt.Sprintf("Habit %s has a log with invalid date %q", habitID, entry.Date),
					HabitID:     habitID,
					Date:        entry.Date,
				})
				continue
			}
			if seen[entry.Date] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateLogDay,
					Description: fmt.Sprintf("Habit %s has more than one log on %s", habitID, entry.Date),
					HabitID:     habitID,
					Date:        entry.Date,
				})
			}
			seen[entry.Date] = true
		}
	}

	return result
}

// Repair returns a copy of state with orphan logs dropped, misfiled logs
// relabelled, invalid dates removed and only the last entry kept per day.
// Habits are left as they are.
func Repair(state models.State) models.State {
	known := make(map[string]bool, len(state.Habits))
	for _, habit := range state.Habits {
		known[habit.ID] = true
	}

	repaired := models.State{
		Habits:          append([]models.Habit(nil), state.Habits...),
		Logs:            make(map[string][]models.CompletionLog, len(state.Logs)),
		ExampleHabitIDs: append([]string(nil), state.ExampleHabitIDs...),
	}

	for habitID, entries := range state.Logs {
		if !known[habitID] {
			continue
		}

		index := make(map[string]int, len(entries))
		var kept []models.CompletionLog
		for _, entry := range entries {
			if utils.ValidateDateKey(entry.Date) != nil {
				continue
			}
			entry.HabitID = habitID
			if i, ok := index[entry.Date]; ok {
				kept[i] = entry
				continue
			}
			index[entry.Date] = len(kept)
			kept = append(kept, entry)
		}
		if len(kept) > 0 {
			repaired.Logs[habitID] = kept
		}
	}

	return repaired
}
