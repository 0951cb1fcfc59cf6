package notifier

import (
	"fmt"
	"sync"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// EventKind is the kind of request sent to the reminder collaborator
type EventKind string

const (
	EventSchedule EventKind = "schedule"
	EventUpdate   EventKind = "update"
	EventCancel   EventKind = "cancel"
)

// Reminder is one repeating trigger for a habit.
// Weekday is 1 (Monday) through 7 (Sunday); 0 means every day.
type Reminder struct {
	HabitID string `json:"habit_id"`
	Weekday int    `json:"weekday,omitempty"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// Event is a schedule, update or cancel-all request for one habit.
type Event struct {
	Kind      EventKind  `json:"kind"`
	HabitID   string     `json:"habit_id"`
	Reminders []Reminder `json:"reminders,omitempty"`
}

// Sink receives reminder events from the tracker
type Sink interface {
	Emit(Event) error
}

// TriggerWeekday converts a 0-6 (Sunday first) day into the 1-7 trigger numbering used by reminders.
func TriggerWeekday(day int) int {
	if day == 0 {
		return 7
	}
	return day
}

// ReminderTitle is the notification title for a habit.
func ReminderTitle(habit models.Habit) string {
	return fmt.Sprintf("Time for %s!", habit.Title)
}

// ReminderBody is the notification body for a habit.
func ReminderBody(habit models.Habit) string {
	if habit.Description != "" {
		return habit.Description
	}
	return "Don't forget to complete your habit"
}

// PlanReminders expands a habit's reminder time into repeating triggers.
// Daily habits get a single every-day trigger; weekly and custom habits get
// one trigger per target day. Habits without a valid reminder time get none.
func PlanReminders(habit models.Habit) []Reminder {
	if habit.ReminderTime == "" {
		return nil
	}
	at, err := utils.ParseTime(habit.ReminderTime)
	if err != nil {
		return nil
	}

	base := Reminder{
		HabitID: habit.ID,
		Hour:    at.Hour(),
		Minute:  at.Minute(),
		Title:   ReminderTitle(habit),
		Body:    ReminderBody(habit),
	}

	if habit.Frequency == models.FrequencyDaily {
		return []Reminder{base}
	}

	seen := make(map[int]bool)
	reminders := make([]Reminder, 0, len(habit.TargetDays))
	for _, day := range habit.TargetDays {
		if day < 0 || day > 6 || seen[day] {
			continue
		}
		seen[day] = true
		r := base
		r.Weekday = TriggerWeekday(day)
		reminders = append(reminders, r)
	}
	return reminders
}

// ScheduleEvent builds the event emitted when a habit is created.
func ScheduleEvent(habit models.Habit) Event {
	return Event{Kind: EventSchedule, HabitID: habit.ID, Reminders: PlanReminders(habit)}
}

// UpdateEvent builds the event emitted when a habit's reminder changes.
func UpdateEvent(habit models.Habit) Event {
	return Event{Kind: EventUpdate, HabitID: habit.ID, Reminders: PlanReminders(habit)}
}

// CancelEvent builds the cancel-all event for a habit.
func CancelEvent(habitID string) Event {
	return Event{Kind: EventCancel, HabitID: habitID}
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// LogSink writes events to the application log. Reminders are delivered
// later by the remind command, which recomputes them from the stored habits.
type LogSink struct{}

func (LogSink) Emit(e Event) error {
	logger.Info("Reminder event", "kind", e.Kind, "habit", e.HabitID, "triggers", len(e.Reminders))
	return nil
}

// Discard drops every event.
type Discard struct{}

func (Discard) Emit(Event) error { return nil }
