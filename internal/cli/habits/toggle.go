package habits

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/utils"
)

type ToggleCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	Date  string `help:"Day to toggle: today, yesterday or YYYY-MM-DD." default:"today"`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}
	habit, err := cli.FindHabit(t, c.Habit)
	if err != nil {
		return err
	}
	date, err := cli.ResolveDate(t, c.Date)
	if err != nil {
		return err
	}

	completed, err := t.Toggle(habit.ID, date)
	if err != nil {
		return err
	}
	if err := ctx.Commit(t); err != nil {
		return err
	}

	if completed {
		fmt.Printf("✓ Completed %q on %s (streak %d)\n", habit.Title, date, t.CurrentStreak(habit.ID))
	} else {
		fmt.Printf("○ Unmarked %q on %s\n", habit.Title, date)
	}
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}

	today := utils.DateKey(t.Today())
	due := t.DueToday()
	fmt.Printf("%s  %d%% done\n\n", t.Today().Format("Mon, Jan 2 2006"), t.TodayProgress())
	if len(due) == 0 {
		fmt.Println("Nothing due today.")
		return nil
	}

	for _, habit := range due {
		mark := "○"
		if t.IsCompleted(habit.ID, today) {
			mark = "✓"
		}
		fmt.Printf("  %s %-24s streak %d\n", mark, displayTitle(habit), t.CurrentStreak(habit.ID))
	}
	return nil
}
