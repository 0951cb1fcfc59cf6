package stats

import (
	"math"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/scheduler"
	"github.com/julianstephens/habitual/internal/utils"
)

// Analyzer computes schedule-aware completion statistics
type Analyzer struct {
	scheduler *scheduler.Scheduler
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(s *scheduler.Scheduler) *Analyzer {
	if s == nil {
		s = scheduler.New()
	}
	return &Analyzer{scheduler: s}
}

// Percent returns round(100 * part / whole), or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// completionSet indexes the days a habit was marked completed.
func completionSet(logs []models.CompletionLog) map[string]bool {
	set := make(map[string]bool, len(logs))
	for _, entry := range logs {
		if entry.Completed {
			set[entry.Date] = true
		}
	}
	return set
}

// HabitStats reports how often the habit was completed on the days it was due
// within the windowDays days ending today.
func (a *Analyzer) HabitStats(habit *models.Habit, logs []models.CompletionLog, windowDays int, today time.Time) models.HabitStats {
	if habit == nil || windowDays <= 0 {
		return models.HabitStats{}
	}

	done := completionSet(logs)
	var result models.HabitStats
	for day := range utils.LastNDays(today, windowDays) {
		if !a.scheduler.IsDue(*habit, day) {
			continue
		}
		result.TotalDays++
		if done[utils.DateKey(day)] {
			result.CompletedDays++
		}
	}

	result.CompletionRate = Percent(result.CompletedDays, result.TotalDays)
	return result
}

// WeeklyStats aggregates every active habit over the Sunday-start week containing today.
// Days later in the week than today still count toward the total.
func (a *Analyzer) WeeklyStats(habits []models.Habit, logs map[string][]models.CompletionLog, today time.Time) models.WeeklyStats {
	start, end := utils.WeekBounds(today)
	days, err := utils.DaysBetween(start, end)
	if err != nil {
		return models.WeeklyStats{}
	}

	sets := make(map[string]map[string]bool, len(habits))
	for _, habit := range habits {
		sets[habit.ID] = completionSet(logs[habit.ID])
	}

	total, completed := 0, 0
	for day := range days {
		key := utils.DateKey(day)
		for _, habit := range a.scheduler.HabitsDueOn(habits, day) {
			total++
			if sets[habit.ID][key] {
				completed++
			}
		}
	}

	streak := 0
	for _, habit := range habits {
		if habit.Archived {
			continue
		}
		streak += CurrentStreak(logs[habit.ID], today)
	}

	return models.WeeklyStats{
		SuccessRate: Percent(completed, total),
		TotalStreak: streak,
	}
}

// TodayProgress returns the percentage of habits due today that are completed today.
func (a *Analyzer) TodayProgress(habits []models.Habit, logs map[string][]models.CompletionLog, today time.Time) int {
	due := a.scheduler.HabitsDueOn(habits, today)
	if len(due) == 0 {
		return 0
	}

	key := utils.DateKey(today)
	completed := 0
	for _, habit := range due {
		if completionSet(logs[habit.ID])[key] {
			completed++
		}
	}
	return Percent(completed, len(due))
}

// Heatmap returns one cell per day for the last days days, counting due and
// completed habits across all active habits.
func (a *Analyzer) Heatmap(habits []models.Habit, logs map[string][]models.CompletionLog, days int, today time.Time) []models.HeatmapDay {
	sets := make(map[string]map[string]bool, len(habits))
	for _, habit := range habits {
		sets[habit.ID] = completionSet(logs[habit.ID])
	}

	cells := make([]models.HeatmapDay, 0, max(days, 0))
	for day := range utils.LastNDays(today, days) {
		key := utils.DateKey(day)
		cell := models.HeatmapDay{Date: key}
		for _, habit := range a.scheduler.HabitsDueOn(habits, day) {
			cell.Total++
			if sets[habit.ID][key] {
				cell.Completed++
			}
		}
		if cell.Total > 0 {
			cell.Intensity = float64(cell.Completed) / float64(cell.Total)
		}
		cells = append(cells, cell)
	}
	return cells
}

// DailySeries returns 1 for each of the last days days the habit was completed and 0 otherwise.
func DailySeries(logs []models.CompletionLog, days int, today time.Time) []int {
	done := completionSet(logs)
	series := make([]int, 0, max(days, 0))
	for day := range utils.LastNDays(today, days) {
		if done[utils.DateKey(day)] {
			series = append(series, 1)
		} else {
			series = append(series, 0)
		}
	}
	return series
}
