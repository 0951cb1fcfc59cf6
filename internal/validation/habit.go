package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

var (
	// ErrInvalidHabit is returned when a habit fails field validation.
	ErrInvalidHabit = errors.New("invalid habit")
	// ErrInvalidImport is returned when an import payload is malformed or inconsistent.
	ErrInvalidImport = errors.New("invalid import data")
)

// ValidateHabit checks the fields of a habit before it enters the repository.
func ValidateHabit(h models.Habit) error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidHabit)
	}
	if !slices.Contains(models.Categories, h.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidHabit, h.Category)
	}
	switch h.Frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyCustom:
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidHabit, h.Frequency)
	}
	for _, day := range h.TargetDays {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: target day %d outside 0-6", ErrInvalidHabit, day)
		}
	}
	switch h.GoalType {
	case models.GoalBoolean:
	case models.GoalNumeric:
		if h.DailyGoal == nil || *h.DailyGoal <= 0 {
			return fmt.Errorf("%w: numeric habits need a positive daily goal", ErrInvalidHabit)
		}
	default:
		return fmt.Errorf("%w: unknown goal type %q", ErrInvalidHabit, h.GoalType)
	}
	if h.ReminderTime != "" && !utils.ValidateTimeFormat(h.ReminderTime) {
		return fmt.Errorf("%w: reminder time %q is not HH:MM", ErrInvalidHabit, h.ReminderTime)
	}
	return nil
}

// ValidateImportShape checks that data is a JSON object carrying both a
// habits and a logs member with non-null values. Nothing else is decoded.
func ValidateImportShape(data []byte) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	for _, key := range []string{"habits", "logs"} {
		raw, ok := payload[key]
		if !ok || isFalsy(raw) {
			return fmt.Errorf("%w: missing %q", ErrInvalidImport, key)
		}
	}
	return nil
}

func isFalsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}
