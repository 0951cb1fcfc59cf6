package tracker

import (
	"fmt"
	"slices"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/utils"
)

func exampleHabits() []models.Habit {
	water := 8.0
	return []models.Habit{
		{
			ID:           "example-1",
			Title:        "Morning Exercise",
			Description:  "30 minutes of exercise",
			Color:        "#3b82f6",
			Icon:         "🏃",
			Category:     models.CategoryFitness,
			Frequency:    models.FrequencyDaily,
			TargetDays:   []int{1, 2, 3, 4, 5},
			GoalType:     models.GoalBoolean,
			ReminderTime: "07:00",
		},
		{
			ID:           "example-2",
			Title:        "Read Books",
			Description:  "Read for 30 minutes",
			Color:        "#8b5cf6",
			Icon:         "📚",
			Category:     models.CategoryStudy,
			Frequency:    models.FrequencyDaily,
			TargetDays:   slices.Clone(models.AllDays),
			GoalType:     models.GoalBoolean,
			ReminderTime: "20:00",
		},
		{
			ID:          "example-3",
			Title:       "Drink Water",
			Description: "Drink 8 glasses of water",
			Color:       "#06b6d4",
			Icon:        "💧",
			Category:    models.CategoryHealth,
			Frequency:   models.FrequencyDaily,
			TargetDays:  slices.Clone(models.AllDays),
			GoalType:    models.GoalNumeric,
			DailyGoal:   &water,
		},
	}
}

// exampleAge is how many days before today each sample habit was created.
var exampleAge = map[string]int{"example-1": 10, "example-2": 15, "example-3": 5}

// AddExampleData seeds three sample habits with two weeks of random history
// on their due days. It does nothing if sample data is already present.
func (t *Tracker) AddExampleData() {
	if t.HasExampleData() {
		return
	}

	today := t.Today()
	var added []models.Habit
	for _, habit := range exampleHabits() {
		if t.indexOf(habit.ID) >= 0 {
			continue
		}
		habit.CreatedAt = utils.DateKey(utils.SubtractDays(today, exampleAge[habit.ID]))

		var entries []models.CompletionLog
		for i := 0; i < constants.ExampleHistoryDays; i++ {
			day := utils.SubtractDays(today, i)
			if !habit.HasTargetDay(utils.DayOfWeek(day)) {
				continue
			}
			if t.random() >= constants.ExampleCompletionChance {
				continue
			}
			entries = append(entries, models.CompletionLog{
				ID:        fmt.Sprintf("log-%s-%d", habit.ID, i),
				HabitID:   habit.ID,
				Date:      utils.DateKey(day),
				Completed: true,
				Timestamp: utils.StartOfDay(day).UnixMilli(),
			})
		}

		t.habits = append(t.habits, habit)
		t.logs[habit.ID] = entries
		t.exampleIDs = append(t.exampleIDs, habit.ID)
		added = append(added, habit)
	}

	for _, habit := range added {
		if habit.ReminderTime != "" {
			t.emit(notifier.ScheduleEvent(habit))
		}
	}
}

// RemoveExampleData deletes the sample habits and their logs.
func (t *Tracker) RemoveExampleData() {
	for _, id := range slices.Clone(t.exampleIDs) {
		t.Delete(id)
	}
	t.exampleIDs = nil
}

// HasExampleData reports whether sample habits are present.
func (t *Tracker) HasExampleData() bool {
	return len(t.exampleIDs) > 0
}
