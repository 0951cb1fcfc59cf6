package stats

import (
	"slices"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// completedDays returns the distinct days of all completed entries, most
// recent first. Entries with malformed dates are ignored.
func completedDays(logs []models.CompletionLog) []time.Time {
	days := make([]time.Time, 0, len(logs))
	for _, entry := range logs {
		if !entry.Completed {
			continue
		}
		day, err := utils.ParseDateKey(entry.Date, time.UTC)
		if err != nil {
			continue
		}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	// an unrepaired store can hold two entries for one day
	return slices.CompactFunc(days, func(a, b time.Time) bool { return a.Equal(b) })
}

// CurrentStreak counts consecutive calendar days with a completed entry,
// ending today or yesterday. Scheduling is not consulted: a day the habit
// was not due still breaks the run.
func CurrentStreak(logs []models.CompletionLog, today time.Time) int {
	days := completedDays(logs)
	if len(days) == 0 {
		return 0
	}

	gap := utils.DaysApart(days[0], today)
	if gap < 0 {
		gap = -gap
	}
	if gap > 1 {
		return 0
	}

	streak := 1
	for i := 0; i < len(days)-1; i++ {
		if utils.DaysApart(days[i+1], days[i]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days ever logged.
func LongestStreak(logs []models.CompletionLog) int {
	days := completedDays(logs)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 0; i < len(days)-1; i++ {
		if utils.DaysApart(days[i+1], days[i]) == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	return longest
}
