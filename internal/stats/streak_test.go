package stats

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

func mustDate(s string) time.Time {
	t, err := utils.ParseDateKey(s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func completed(habitID string, dates ...string) []models.CompletionLog {
	logs := make([]models.CompletionLog, 0, len(dates))
	for _, d := range dates {
		logs = append(logs, models.CompletionLog{ID: habitID + "-" + d, HabitID: habitID, Date: d, Completed: true})
	}
	return logs
}

func TestCurrentStreak(t *testing.T) {
	today := mustDate("2026-02-26")

	tests := []struct {
		name string
		logs []models.CompletionLog
		want int
	}{
		{
			name: "no entries",
			logs: nil,
			want: 0,
		},
		{
			name: "only incomplete entries",
			logs: []models.CompletionLog{{HabitID: "h", Date: "2026-02-26", Completed: false}},
			want: 0,
		},
		{
			name: "today only",
			logs: completed("h", "2026-02-26"),
			want: 1,
		},
		{
			name: "yesterday only keeps streak alive",
			logs: completed("h", "2026-02-25"),
			want: 1,
		},
		{
			name: "three consecutive days ending today",
			logs: completed("h", "2026-02-26", "2026-02-25", "2026-02-24"),
			want: 3,
		},
		{
			name: "most recent is two days ago",
			logs: completed("h", "2026-02-24"),
			want: 0,
		},
		{
			name: "gap stops the count",
			logs: completed("h", "2026-02-26", "2026-02-25", "2026-02-23", "2026-02-22"),
			want: 2,
		},
		{
			name: "insertion order does not matter",
			logs: completed("h", "2026-02-24", "2026-02-26", "2026-02-25"),
			want: 3,
		},
		{
			name: "completion far in the future",
			logs: completed("h", "2026-03-01", "2026-02-28", "2026-02-27"),
			want: 0,
		},
		{
			name: "malformed dates are ignored",
			logs: append(completed("h", "2026-02-26"), models.CompletionLog{HabitID: "h", Date: "yesterday", Completed: true}),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.logs, today); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreak_AcrossMonthBoundary(t *testing.T) {
	today := mustDate("2026-03-01")
	logs := completed("h", "2026-03-01", "2026-02-28", "2026-02-27")

	if got := CurrentStreak(logs, today); got != 3 {
		t.Errorf("CurrentStreak() = %d, want 3", got)
	}
}

func TestCurrentStreak_IgnoresFlippedOffDays(t *testing.T) {
	today := mustDate("2026-02-26")
	logs := completed("h", "2026-02-26", "2026-02-24")
	logs = append(logs, models.CompletionLog{HabitID: "h", Date: "2026-02-25", Completed: false})

	if got := CurrentStreak(logs, today); got != 1 {
		t.Errorf("CurrentStreak() = %d, want 1", got)
	}
}

func TestCurrentStreak_NotScheduleAware(t *testing.T) {
	// Friday and Monday completions with nothing over the weekend
	today := mustDate("2025-12-29") // Monday
	logs := completed("h", "2025-12-29", "2025-12-26")

	if got := CurrentStreak(logs, today); got != 1 {
		t.Errorf("CurrentStreak() = %d, want 1 (weekend gap breaks the run)", got)
	}
}

func TestCurrentStreak_TodayInAnotherZone(t *testing.T) {
	loc, err := time.LoadLocation("Pacific/Auckland")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Late evening in Auckland is still the same calendar day there
	today := time.Date(2026, 2, 26, 23, 30, 0, 0, loc)
	logs := completed("h", "2026-02-26", "2026-02-25")

	if got := CurrentStreak(logs, today); got != 2 {
		t.Errorf("CurrentStreak() = %d, want 2", got)
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name string
		logs []models.CompletionLog
		want int
	}{
		{"empty", nil, 0},
		{"single", completed("h", "2026-01-01"), 1},
		{"best run in the past", completed("h", "2026-01-01", "2026-01-02", "2026-01-03", "2026-01-10", "2026-01-11"), 3},
		{"unsorted", completed("h", "2026-01-11", "2026-01-01", "2026-01-10", "2026-01-12"), 3},
		{"same day twice", completed("h", "2026-01-01", "2026-01-02", "2026-01-02", "2026-01-03"), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.logs); got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreak_SameDayTwice(t *testing.T) {
	logs := completed("h", "2026-02-24", "2026-02-25", "2026-02-25", "2026-02-26")
	if got := CurrentStreak(logs, mustDate("2026-02-26")); got != 3 {
		t.Errorf("CurrentStreak() = %d, want 3", got)
	}
}
