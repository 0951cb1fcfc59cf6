package habits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit and its history."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Show      HabitShowCmd      `cmd:"" help:"Show a habit and its recent history."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Bring an archived habit back."`
}

// runForm is swapped out in tests.
var runForm = func(form *huh.Form) error { return form.Run() }

type HabitAddCmd struct {
	Title       string  `arg:"" optional:"" help:"Habit title."`
	Description string  `help:"Short description shown in reminders."`
	Category    string  `help:"Category (health, study, personal, fitness, work, other)." default:"other"`
	Frequency   string  `help:"Frequency (daily, weekly, custom)." default:"daily"`
	Days        string  `help:"Target days, e.g. mon,wed,fri. Daily habits default to every day."`
	Goal        float64 `help:"Daily goal; makes the habit numeric."`
	Reminder    string  `help:"Reminder time (HH:MM)."`
	Color       string  `help:"Display color."`
	Icon        string  `help:"Display icon."`
	Interactive bool    `short:"i" help:"Fill in the habit with a form."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.fillInteractive(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("a title is required")
	}

	habit, err := c.habit()
	if err != nil {
		return err
	}

	t, err := ctx.Open()
	if err != nil {
		return err
	}
	added, err := t.Add(habit)
	if err != nil {
		return err
	}
	if err := ctx.Commit(t); err != nil {
		return err
	}

	fmt.Printf("✓ Added habit %q (%s, %s)\n", added.Title, added.ID, cli.FormatSchedule(added))
	return nil
}

func (c *HabitAddCmd) habit() (models.Habit, error) {
	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		Title:        strings.TrimSpace(c.Title),
		Description:  c.Description,
		Color:        c.Color,
		Icon:         c.Icon,
		Category:     models.Category(strings.ToLower(c.Category)),
		Frequency:    models.Frequency(strings.ToLower(c.Frequency)),
		TargetDays:   days,
		GoalType:     models.GoalBoolean,
		ReminderTime: c.Reminder,
	}
	if c.Goal != 0 {
		goal := c.Goal
		habit.GoalType = models.GoalNumeric
		habit.DailyGoal = &goal
	}
	return habit, nil
}

func (c *HabitAddCmd) fillInteractive() error {
	var (
		category  = models.Category(c.Category)
		frequency = models.Frequency(c.Frequency)
		days      []int
		goal      string
	)
	if c.Goal != 0 {
		goal = strconv.FormatFloat(c.Goal, 'f', -1, 64)
	}

	categoryOptions := make([]huh.Option[models.Category], 0, len(models.Categories))
	for _, cat := range models.Categories {
		categoryOptions = append(categoryOptions, huh.NewOption(string(cat), cat))
	}
	dayOptions := make([]huh.Option[int], 0, 7)
	for day, name := range []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"} {
		dayOptions = append(dayOptions, huh.NewOption(name, day))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&c.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&c.Description),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categoryOptions...).
				Value(&category),
		),
		huh.NewGroup(
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
					huh.NewOption("Custom", models.FrequencyCustom),
				).
				Value(&frequency),
			huh.NewMultiSelect[int]().
				Title("Target days").
				Description("Leave empty on a daily habit to track every day").
				Options(dayOptions...).
				Value(&days),
			huh.NewInput().
				Title("Daily goal").
				Description("Leave empty for a yes/no habit").
				Value(&goal).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if v, err := strconv.ParseFloat(s, 64); err != nil || v <= 0 {
						return errors.New("goal must be a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Reminder (HH:MM)").
				Value(&c.Reminder).
				Validate(func(s string) error {
					if s != "" && !utils.ValidateTimeFormat(s) {
						return errors.New("use HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())

	if err := runForm(form); err != nil {
		return err
	}

	c.Category = string(category)
	c.Frequency = string(frequency)
	c.Days = joinDays(days)
	c.Goal = 0
	if goal != "" {
		c.Goal, _ = strconv.ParseFloat(goal, 64)
	}
	return nil
}

func joinDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

type HabitEditCmd struct {
	Habit       string   `arg:"" help:"Habit id or title."`
	Title       *string  `help:"New title."`
	Description *string  `help:"New description."`
	Category    *string  `help:"New category."`
	Frequency   *string  `help:"New frequency."`
	Days        *string  `help:"New target days."`
	Goal        *float64 `help:"New daily goal; 0 makes the habit yes/no."`
	Reminder    *string  `help:"New reminder time (HH:MM); empty clears it."`
	Color       *string  `help:"New color."`
	Icon        *string  `help:"New icon."`
}

func (c *HabitEditCmd) patch() (models.HabitPatch, error) {
	patch := models.HabitPatch{
		Title:        c.Title,
		Description:  c.Description,
		Color:        c.Color,
		Icon:         c.Icon,
		ReminderTime: c.Reminder,
	}
	if c.Category != nil {
		category := models.Category(strings.ToLower(*c.Category))
		patch.Category = &category
	}
	if c.Frequency != nil {
		frequency := models.Frequency(strings.ToLower(*c.Frequency))
		patch.Frequency = &frequency
	}
	if c.Days != nil {
		days, err := cli.ParseWeekdays(*c.Days)
		if err != nil {
			return models.HabitPatch{}, err
		}
		patch.TargetDays = &days
	}
	if c.Goal != nil {
		goalType := models.GoalBoolean
		if *c.Goal != 0 {
			goalType = models.GoalNumeric
			patch.DailyGoal = c.Goal
		}
		patch.GoalType = &goalType
	}
	return patch, nil
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	patch, err := c.patch()
	if err != nil {
		return err
	}
	if patch == (models.HabitPatch{}) {
		return errors.New("nothing to change")
	}

	t, err := ctx.Open()
	if err != nil {
		return err
	}
	habit, err := cli.FindHabit(t, c.Habit)
	if err != nil {
		return err
	}
	updated, err := t.Update(habit.ID, patch)
	if err != nil {
		return err
	}
	if err := ctx.Commit(t); err != nil {
		return err
	}

	fmt.Printf("✓ Updated habit %q\n", updated.Title)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}
	habit, err := cli.FindHabit(t, c.Habit)
	if err != nil {
		return err
	}

	t.Delete(habit.ID)
	if err := ctx.Commit(t); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted habit %q\n", habit.Title)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}

	habits := t.Active()
	if c.Archived {
		habits = t.List()
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.Archived {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%s  %-24s %-9s %s  streak %d%s\n",
			habit.ID, displayTitle(habit), habit.Category, cli.FormatSchedule(habit), t.CurrentStreak(habit.ID), status)
	}
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	Days  int    `help:"Number of days of history to show." default:"14"`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}
	habit, err := cli.FindHabit(t, c.Habit)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", displayTitle(habit))
	if habit.Description != "" {
		fmt.Printf("  %s\n", habit.Description)
	}
	fmt.Printf("  id:        %s\n", habit.ID)
	fmt.Printf("  category:  %s\n", habit.Category)
	fmt.Printf("  schedule:  %s\n", cli.FormatSchedule(habit))
	if habit.GoalType == models.GoalNumeric && habit.DailyGoal != nil {
		fmt.Printf("  goal:      %g per day\n", *habit.DailyGoal)
	}
	if habit.ReminderTime != "" {
		fmt.Printf("  reminder:  %s\n", habit.ReminderTime)
	}
	fmt.Printf("  streak:    %d (best %d)\n", t.CurrentStreak(habit.ID), t.LongestStreak(habit.ID))

	stats := t.HabitStats(habit.ID, c.Days)
	fmt.Printf("  last %d days: %d/%d (%d%%)\n", c.Days, stats.CompletedDays, stats.TotalDays, stats.CompletionRate)

	var history strings.Builder
	for _, done := range t.DailySeries(habit.ID, c.Days) {
		if done == 1 {
			history.WriteString("█")
		} else {
			history.WriteString("·")
		}
	}
	fmt.Printf("  %s\n", history.String())
	return nil
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	return setArchived(ctx, c.Habit, true)
}

type HabitUnarchiveCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
}

func (c *HabitUnarchiveCmd) Run(ctx *cli.Context) error {
	return setArchived(ctx, c.Habit, false)
}

func setArchived(ctx *cli.Context, ref string, archived bool) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}
	habit, err := cli.FindHabit(t, ref)
	if err != nil {
		return err
	}
	if _, err := t.Update(habit.ID, models.HabitPatch{Archived: &archived}); err != nil {
		return err
	}
	if err := ctx.Commit(t); err != nil {
		return err
	}

	if archived {
		fmt.Printf("✓ Archived habit %q\n", habit.Title)
	} else {
		fmt.Printf("✓ Restored habit %q\n", habit.Title)
	}
	return nil
}

func displayTitle(h models.Habit) string {
	if h.Icon != "" {
		return h.Icon + " " + h.Title
	}
	return h.Title
}
