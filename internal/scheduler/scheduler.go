package scheduler

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// IsDue reports whether the habit is scheduled on the given date.
//
// Daily, weekly and custom habits all use the same rule: the habit is due
// when the date's weekday is one of its target days. Daily habits get all
// seven days when they are created, which is what makes them daily.
func (s *Scheduler) IsDue(habit models.Habit, date time.Time) bool {
	if habit.Archived {
		return false
	}

	return habit.HasTargetDay(utils.DayOfWeek(date))
}

// HabitsDueOn returns the non-archived habits due on date, keeping their order.
func (s *Scheduler) HabitsDueOn(habits []models.Habit, date time.Time) []models.Habit {
	due := make([]models.Habit, 0, len(habits))
	for _, habit := range habits {
		if s.IsDue(habit, date) {
			due = append(due, habit)
		}
	}
	return due
}

// DueDays counts the days in [start, end] on which the habit is due.
func (s *Scheduler) DueDays(habit models.Habit, start, end time.Time) (int, error) {
	days, err := utils.DaysBetween(start, end)
	if err != nil {
		return 0, err
	}

	count := 0
	for day := range days {
		if s.IsDue(habit, day) {
			count++
		}
	}
	return count, nil
}
