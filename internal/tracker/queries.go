package tracker

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/stats"
)

// HabitsDueOn returns the non-archived habits due on date, in insertion order.
func (t *Tracker) HabitsDueOn(date time.Time) []models.Habit {
	return cloneHabits(t.scheduler.HabitsDueOn(t.habits, date))
}

// DueToday returns the habits due on the current calendar day.
func (t *Tracker) DueToday() []models.Habit {
	return t.HabitsDueOn(t.Today())
}

// CurrentStreak returns the habit's current streak, 0 for unknown ids.
func (t *Tracker) CurrentStreak(habitID string) int {
	return stats.CurrentStreak(t.logs[habitID], t.Today())
}

// LongestStreak returns the habit's best run of consecutive completed days.
func (t *Tracker) LongestStreak(habitID string) int {
	return stats.LongestStreak(t.logs[habitID])
}

// HabitStats summarizes the habit over the last days days.
// Unknown ids and non-positive windows give the zero value.
func (t *Tracker) HabitStats(habitID string, days int) models.HabitStats {
	i := t.indexOf(habitID)
	if i < 0 {
		return models.HabitStats{}
	}
	habit := t.habits[i]
	return t.analyzer.HabitStats(&habit, t.logs[habitID], days, t.Today())
}

// WeeklyStats aggregates all active habits over the current week.
func (t *Tracker) WeeklyStats() models.WeeklyStats {
	return t.analyzer.WeeklyStats(t.habits, t.logs, t.Today())
}

// TodayProgress returns the percentage of today's due habits completed today.
func (t *Tracker) TodayProgress() int {
	return t.analyzer.TodayProgress(t.habits, t.logs, t.Today())
}

// Heatmap returns the cross-habit completion grid for the last days days.
func (t *Tracker) Heatmap(days int) []models.HeatmapDay {
	if days <= 0 {
		days = constants.DefaultHeatmapDays
	}
	return t.analyzer.Heatmap(t.habits, t.logs, days, t.Today())
}

// DailySeries returns the habit's 1/0 completion series for the last days days.
func (t *Tracker) DailySeries(habitID string, days int) []int {
	if days <= 0 {
		days = constants.DefaultSeriesDays
	}
	return stats.DailySeries(t.logs[habitID], days, t.Today())
}
