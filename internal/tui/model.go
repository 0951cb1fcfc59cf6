// Package tui is the interactive board for checking off the habits due on a day.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/board"
	"github.com/julianstephens/habitual/internal/tui/components/heatmap"
	"github.com/julianstephens/habitual/internal/utils"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHeatmap
)

var tabTitles = []string{"Today", "Heatmap"}

// Saver persists the tracker after each change.
type Saver interface {
	SaveState(models.State) error
}

type Model struct {
	tracker  *tracker.Tracker
	saver    Saver
	state    SessionState
	day      time.Time
	keys     KeyMap
	help     help.Model
	board    board.Model
	heatmap  heatmap.Model
	status   string
	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(t *tracker.Tracker, saver Saver) Model {
	m := Model{
		tracker: t,
		saver:   saver,
		state:   StateToday,
		day:     t.Today(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		board:   board.New(nil, 0, 0),
		heatmap: heatmap.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Day returns the day the board is showing.
func (m Model) Day() time.Time {
	return m.day
}

// refresh rebuilds the board and heatmap from the tracker.
func (m *Model) refresh() {
	key := utils.DateKey(m.day)
	due := m.tracker.HabitsDueOn(m.day)
	items := make([]board.Item, 0, len(due))
	for _, habit := range due {
		items = append(items, board.Item{
			Habit:     habit,
			Completed: m.tracker.IsCompleted(habit.ID, key),
			Streak:    m.tracker.CurrentStreak(habit.ID),
		})
	}
	m.board.SetItems(items)
	m.heatmap.SetCells(m.tracker.Heatmap(constants.DefaultHeatmapDays))
}

// dayProgress counts the habits due on the viewed day and how many are done.
func (m Model) dayProgress() (done, total int) {
	key := utils.DateKey(m.day)
	for _, habit := range m.tracker.HabitsDueOn(m.day) {
		total++
		if m.tracker.IsCompleted(habit.ID, key) {
			done++
		}
	}
	return done, total
}

func (m Model) isToday() bool {
	return utils.DateKey(m.day) == utils.DateKey(m.tracker.Today())
}
