package insights

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/heatmap"
	"github.com/julianstephens/habitual/internal/utils"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

type habitReport struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	models.HabitStats
	Series []int `json:"series"`
}

func buildReport(t *tracker.Tracker, habit models.Habit, days int) habitReport {
	return habitReport{
		ID:            habit.ID,
		Title:         habit.Title,
		CurrentStreak: t.CurrentStreak(habit.ID),
		LongestStreak: t.LongestStreak(habit.ID),
		HabitStats:    t.HabitStats(habit.ID, days),
		Series:        t.DailySeries(habit.ID, days),
	}
}

type StatsCmd struct {
	Habit string `arg:"" optional:"" help:"Habit id or title; all active habits when omitted."`
	Days  int    `help:"Size of the trailing window in days." default:"7"`
	JSON  bool   `help:"Print the report as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", c.Days)
	}

	t, err := ctx.Open()
	if err != nil {
		return err
	}

	habits := t.Active()
	if c.Habit != "" {
		habit, err := cli.FindHabit(t, c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{habit}
	}

	reports := make([]habitReport, 0, len(habits))
	for _, habit := range habits {
		reports = append(reports, buildReport(t, habit, c.Days))
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	if len(reports) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Last %d days", c.Days)))
	for _, r := range reports {
		fmt.Printf("  %-24s %3d%%  %d/%d days  streak %d (best %d)  %s\n",
			r.Title, r.CompletionRate, r.CompletedDays, r.TotalDays, r.CurrentStreak, r.LongestStreak, sparkline(r.Series))
	}
	return nil
}

func sparkline(series []int) string {
	out := make([]rune, len(series))
	for i, v := range series {
		out[i] = '·'
		if v == 1 {
			out[i] = '█'
		}
	}
	return string(out)
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}

	start, end := utils.WeekBounds(t.Today())
	week := t.WeeklyStats()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Week of %s to %s", utils.DateKey(start), utils.DateKey(end))))
	fmt.Printf("  Success rate:  %d%%\n", week.SuccessRate)
	fmt.Printf("  Total streak:  %d\n", week.TotalStreak)
	fmt.Printf("  Today:         %d%%\n", t.TodayProgress())
	return nil
}

type HeatmapCmd struct {
	Days int `help:"Number of days to show." default:"28"`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", c.Days)
	}

	t, err := ctx.Open()
	if err != nil {
		return err
	}

	fmt.Println(heatmap.Render(t.Heatmap(c.Days)))
	return nil
}
