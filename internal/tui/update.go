package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/tui/components/board"
	"github.com/julianstephens/habitual/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Leave room for tabs, header, status and help
		m.board.SetSize(msg.Width-4, msg.Height-8)
		m.heatmap.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case board.ToggleHabitMsg:
		m.toggle(msg.ID)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			m.moveDay(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			m.moveDay(1)
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.day = m.tracker.Today()
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.board, cmd = m.board.Update(msg)
	case StateHeatmap:
		m.heatmap, cmd = m.heatmap.Update(msg)
	}
	return m, cmd
}

func (m *Model) moveDay(delta int) {
	m.day = utils.AddDays(m.day, delta)
	m.status = ""
	m.err = nil
	m.refresh()
}

func (m *Model) toggle(habitID string) {
	date := utils.DateKey(m.day)
	completed, err := m.tracker.Toggle(habitID, date)
	if err != nil {
		m.err = err
		return
	}

	if m.saver != nil {
		if err := m.saver.SaveState(m.tracker.State()); err != nil {
			logger.Error("Failed to save after toggle", "habit", habitID, "error", err)
			m.err = fmt.Errorf("failed to save: %w", err)
			return
		}
	}

	m.err = nil
	if habit, err := m.tracker.Get(habitID); err == nil {
		if completed {
			m.status = fmt.Sprintf("Completed %s", habit.Title)
		} else {
			m.status = fmt.Sprintf("Unmarked %s", habit.Title)
		}
	}
	m.refresh()
}
