package models

type Category string

const (
	CategoryHealth   Category = "health"
	CategoryStudy    Category = "study"
	CategoryPersonal Category = "personal"
	CategoryFitness  Category = "fitness"
	CategoryWork     Category = "work"
	CategoryOther    Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryStudy,
	CategoryPersonal,
	CategoryFitness,
	CategoryWork,
	CategoryOther,
}

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

type GoalType string

const (
	GoalBoolean GoalType = "boolean"
	GoalNumeric GoalType = "numeric"
)

// AllDays is the target day set of a habit due every day of the week.
var AllDays = []int{0, 1, 2, 3, 4, 5, 6}

// Habit represents a recurring task definition
type Habit struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Color        string    `json:"color,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	Category     Category  `json:"category"`
	Frequency    Frequency `json:"frequency"`
	TargetDays   []int     `json:"targetDays"` // 0 = Sunday, 1 = Monday, etc.
	GoalType     GoalType  `json:"goalType"`
	DailyGoal    *float64  `json:"dailyGoal,omitempty"`    // numeric goals only
	ReminderTime string    `json:"reminderTime,omitempty"` // HH:MM format
	CreatedAt    string    `json:"createdAt"`
	Archived     bool      `json:"archived"`
}

// HasTargetDay reports whether day (0-6) is one of the habit's target days.
func (h Habit) HasTargetDay(day int) bool {
	for _, d := range h.TargetDays {
		if d == day {
			return true
		}
	}
	return false
}

// HabitPatch holds a partial update. Nil fields are left untouched.
// An empty ReminderTime clears the reminder.
type HabitPatch struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Color        *string    `json:"color,omitempty"`
	Icon         *string    `json:"icon,omitempty"`
	Category     *Category  `json:"category,omitempty"`
	Frequency    *Frequency `json:"frequency,omitempty"`
	TargetDays   *[]int     `json:"targetDays,omitempty"`
	GoalType     *GoalType  `json:"goalType,omitempty"`
	DailyGoal    *float64   `json:"dailyGoal,omitempty"`
	ReminderTime *string    `json:"reminderTime,omitempty"`
	Archived     *bool      `json:"archived,omitempty"`
}

// Apply merges the patch into a copy of h and returns it.
func (p HabitPatch) Apply(h Habit) Habit {
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	if p.Category != nil {
		h.Category = *p.Category
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.TargetDays != nil {
		h.TargetDays = append([]int(nil), (*p.TargetDays)...)
	}
	if p.GoalType != nil {
		h.GoalType = *p.GoalType
	}
	if p.DailyGoal != nil {
		goal := *p.DailyGoal
		h.DailyGoal = &goal
	}
	if h.GoalType != GoalNumeric {
		h.DailyGoal = nil
	}
	if p.ReminderTime != nil {
		h.ReminderTime = *p.ReminderTime
	}
	if p.Archived != nil {
		h.Archived = *p.Archived
	}
	return h
}
