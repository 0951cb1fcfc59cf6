package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

// exportTimeFormat matches JavaScript's Date.toISOString.
const exportTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Export returns a snapshot of all habits and logs.
func (t *Tracker) Export() models.Export {
	return models.Export{
		Habits:     cloneHabits(t.habits),
		Logs:       cloneLogs(t.logs),
		ExportedAt: t.now().UTC().Format(exportTimeFormat),
	}
}

// MarshalExport renders Export as JSON indented with two spaces.
func (t *Tracker) MarshalExport() ([]byte, error) {
	return json.MarshalIndent(t.Export(), "", "  ")
}

// ParseImport checks and decodes an export payload without applying it.
// Payloads with duplicate habit ids or more than one entry per habit and day
// are rejected. Entries for unknown habits are dropped.
func ParseImport(data []byte) (models.State, error) {
	if err := validation.ValidateImportShape(data); err != nil {
		return models.State{}, err
	}

	var payload models.Export
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.State{}, fmt.Errorf("%w: %v", validation.ErrInvalidImport, err)
	}
	if payload.Logs == nil {
		payload.Logs = make(map[string][]models.CompletionLog)
	}
	state := models.State{Habits: payload.Habits, Logs: payload.Logs}

	orphans := false
	result := validation.New().ValidateState(state)
	for _, conflict := range result.Conflicts {
		switch conflict.Type {
		case validation.ConflictDuplicateHabitID, validation.ConflictDuplicateLogDay,
			validation.ConflictMisfiledLog, validation.ConflictInvalidLogDate:
			return models.State{}, fmt.Errorf("%w: %s", validation.ErrInvalidImport, conflict.Description)
		case validation.ConflictOrphanLogs:
			orphans = true
		}
	}
	if orphans {
		logger.Warn("Dropping log entries for unknown habits from import")
		state = validation.Repair(state)
	}
	return state, nil
}

// Import replaces all habits and logs with the payload. On any error the
// current state is left untouched.
func (t *Tracker) Import(data []byte) error {
	state, err := ParseImport(data)
	if err != nil {
		return err
	}
	state.ExampleHabitIDs = t.exampleIDs
	t.Replace(state)
	logger.Info("Imported data", "habits", len(state.Habits))
	return nil
}
