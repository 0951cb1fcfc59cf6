// Package sqlstore maps the tracker state onto the habits, habit_logs and
// meta tables shared by the SQLite and PostgreSQL backends.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/models"
)

const exampleIDsKey = "example_habit_ids"

// Queries renders statements for one SQL dialect.
type Queries struct {
	ph migration.Placeholder
}

func New(ph migration.Placeholder) Queries {
	return Queries{ph: ph}
}

func (q Queries) params(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = q.ph(i + 1)
	}
	return strings.Join(parts, ", ")
}

func (q Queries) insertHabit() string {
	return `INSERT INTO habits (id, position, title, description, color, icon, category, frequency,
		target_days, goal_type, daily_goal, reminder_time, created_at, archived) VALUES (` + q.params(14) + `)`
}

func (q Queries) insertLog() string {
	return `INSERT INTO habit_logs (id, habit_id, position, day, completed, timestamp) VALUES (` + q.params(6) + `)`
}

func (q Queries) insertMeta() string {
	return `INSERT INTO meta (key, value) VALUES (` + q.params(2) + `)`
}

// LoadState reads every habit and log, keeping the stored order.
func (q Queries) LoadState(db *sql.DB) (models.State, error) {
	state := models.State{
		Habits: []models.Habit{},
		Logs:   make(map[string][]models.CompletionLog),
	}

	rows, err := db.Query(`
		SELECT id, title, description, color, icon, category, frequency,
			target_days, goal_type, daily_goal, reminder_time, created_at, archived
		FROM habits ORDER BY position`)
	if err != nil {
		return models.State{}, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h models.Habit
		var targetDays string
		var dailyGoal sql.NullFloat64
		if err := rows.Scan(&h.ID, &h.Title, &h.Description, &h.Color, &h.Icon, &h.Category, &h.Frequency,
			&targetDays, &h.GoalType, &dailyGoal, &h.ReminderTime, &h.CreatedAt, &h.Archived); err != nil {
			return models.State{}, fmt.Errorf("failed to scan habit: %w", err)
		}
		if err := json.Unmarshal([]byte(targetDays), &h.TargetDays); err != nil {
			return models.State{}, fmt.Errorf("failed to parse target days of habit %s: %w", h.ID, err)
		}
		if dailyGoal.Valid {
			goal := dailyGoal.Float64
			h.DailyGoal = &goal
		}
		state.Habits = append(state.Habits, h)
	}
	if err := rows.Err(); err != nil {
		return models.State{}, err
	}

	logRows, err := db.Query(`SELECT id, habit_id, day, completed, timestamp FROM habit_logs ORDER BY habit_id, position`)
	if err != nil {
		return models.State{}, fmt.Errorf("failed to query habit logs: %w", err)
	}
	defer logRows.Close()

	for logRows.Next() {
		var entry models.CompletionLog
		if err := logRows.Scan(&entry.ID, &entry.HabitID, &entry.Date, &entry.Completed, &entry.Timestamp); err != nil {
			return models.State{}, fmt.Errorf("failed to scan habit log: %w", err)
		}
		state.Logs[entry.HabitID] = append(state.Logs[entry.HabitID], entry)
	}
	if err := logRows.Err(); err != nil {
		return models.State{}, err
	}

	var raw string
	err = db.QueryRow(`SELECT value FROM meta WHERE key = `+q.ph(1), exampleIDsKey).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return models.State{}, fmt.Errorf("failed to read metadata: %w", err)
	default:
		if err := json.Unmarshal([]byte(raw), &state.ExampleHabitIDs); err != nil {
			return models.State{}, fmt.Errorf("failed to parse example habit ids: %w", err)
		}
	}

	return state, nil
}

// SaveState replaces the stored state in a single transaction.
func (q Queries) SaveState(db *sql.DB, state models.State) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"habit_logs", "habits", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	habitStmt, err := tx.Prepare(q.insertHabit())
	if err != nil {
		return fmt.Errorf("failed to prepare habit insert: %w", err)
	}
	defer habitStmt.Close()

	for i, h := range state.Habits {
		targetDays := h.TargetDays
		if targetDays == nil {
			targetDays = []int{}
		}
		days, err := json.Marshal(targetDays)
		if err != nil {
			return err
		}
		var dailyGoal sql.NullFloat64
		if h.DailyGoal != nil {
			dailyGoal = sql.NullFloat64{Float64: *h.DailyGoal, Valid: true}
		}
		if _, err := habitStmt.Exec(h.ID, i, h.Title, h.Description, h.Color, h.Icon, string(h.Category), string(h.Frequency),
			string(days), string(h.GoalType), dailyGoal, h.ReminderTime, h.CreatedAt, h.Archived); err != nil {
			return fmt.Errorf("failed to save habit %s: %w", h.ID, err)
		}
	}

	logStmt, err := tx.Prepare(q.insertLog())
	if err != nil {
		return fmt.Errorf("failed to prepare log insert: %w", err)
	}
	defer logStmt.Close()

	for habitID, entries := range state.Logs {
		for i, entry := range entries {
			if _, err := logStmt.Exec(entry.ID, habitID, i, entry.Date, entry.Completed, entry.Timestamp); err != nil {
				return fmt.Errorf("failed to save log %s: %w", entry.ID, err)
			}
		}
	}

	if len(state.ExampleHabitIDs) > 0 {
		ids, err := json.Marshal(state.ExampleHabitIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(q.insertMeta(), exampleIDsKey, string(ids)); err != nil {
			return fmt.Errorf("failed to save metadata: %w", err)
		}
	}

	return tx.Commit()
}
