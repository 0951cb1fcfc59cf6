package models

// CompletionLog records whether a habit was done on one calendar day
type CompletionLog struct {
	ID        string `json:"id"`
	HabitID   string `json:"habitId"`
	Date      string `json:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds of the last write
}

// State is everything the engine persists between runs.
type State struct {
	Habits          []Habit                    `json:"habits"`
	Logs            map[string][]CompletionLog `json:"logs"` // habitID -> entries in insertion order
	ExampleHabitIDs []string                   `json:"exampleHabitIds,omitempty"`
}

// Export is the bulk export payload.
type Export struct {
	Habits     []Habit                    `json:"habits"`
	Logs       map[string][]CompletionLog `json:"logs"`
	ExportedAt string                     `json:"exportedAt"`
}

// HabitStats summarizes a habit over a trailing window of days.
type HabitStats struct {
	CompletionRate int `json:"completionRate"`
	CompletedDays  int `json:"completedDays"`
	TotalDays      int `json:"totalDays"`
}

// WeeklyStats summarizes all active habits over the current week.
type WeeklyStats struct {
	SuccessRate int `json:"successRate"`
	TotalStreak int `json:"totalStreak"`
}

// HeatmapDay is one cell of the cross-habit completion heatmap.
type HeatmapDay struct {
	Date      string  `json:"date"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Intensity float64 `json:"intensity"`
}
