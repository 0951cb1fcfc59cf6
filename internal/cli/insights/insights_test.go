package insights

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

// Wednesday
var fixedNow = time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	ctx := &cli.Context{
		Store:    store,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}

	tr, err := ctx.Open()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Add(models.Habit{ID: "run", Title: "Run", Frequency: models.FrequencyDaily}); err != nil {
		t.Fatal(err)
	}
	for _, date := range []string{"2025-12-29", "2025-12-30", "2025-12-31"} {
		if _, err := tr.Toggle("run", date); err != nil {
			t.Fatal(err)
		}
	}
	if err := ctx.Commit(tr); err != nil {
		t.Fatal(err)
	}
	return ctx
}

func TestBuildReport(t *testing.T) {
	ctx := setupTestContext(t)
	tr, err := ctx.Open()
	if err != nil {
		t.Fatal(err)
	}
	habit, err := tr.Get("run")
	if err != nil {
		t.Fatal(err)
	}

	got := buildReport(tr, habit, 7)
	if got.CurrentStreak != 3 || got.LongestStreak != 3 {
		t.Errorf("streaks = %d/%d, want 3/3", got.CurrentStreak, got.LongestStreak)
	}
	if got.CompletedDays != 3 || got.TotalDays != 7 || got.CompletionRate != 43 {
		t.Errorf("stats = %+v, want 3/7 at 43%%", got.HabitStats)
	}
	if want := []int{0, 0, 0, 0, 1, 1, 1}; !reflect.DeepEqual(got.Series, want) {
		t.Errorf("Series = %v, want %v", got.Series, want)
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]int{1, 0, 1}); got != "█·█" {
		t.Errorf("sparkline() = %q", got)
	}
}

func TestCommands(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&StatsCmd{Days: 7}).Run(ctx); err != nil {
		t.Errorf("StatsCmd.Run() error = %v", err)
	}
	if err := (&StatsCmd{Habit: "run", Days: 30, JSON: true}).Run(ctx); err != nil {
		t.Errorf("StatsCmd.Run(json) error = %v", err)
	}
	if err := (&StatsCmd{Habit: "swim", Days: 7}).Run(ctx); err == nil {
		t.Error("StatsCmd.Run() for an unknown habit should fail")
	}
	if err := (&StatsCmd{Days: 0}).Run(ctx); err == nil {
		t.Error("StatsCmd.Run() with a zero window should fail")
	}
	if err := (&WeekCmd{}).Run(ctx); err != nil {
		t.Errorf("WeekCmd.Run() error = %v", err)
	}
	if err := (&HeatmapCmd{Days: 14}).Run(ctx); err != nil {
		t.Errorf("HeatmapCmd.Run() error = %v", err)
	}
}
