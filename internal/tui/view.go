package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.board.View())
	case StateHeatmap:
		content = docStyle.Render(m.heatmap.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	label := m.day.Format("Mon, Jan 2 2006")
	if m.isToday() {
		label += " (today)"
	}

	done, total := m.dayProgress()
	weekly := m.tracker.WeeklyStats()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(label),
		statStyle.Render(fmt.Sprintf("%d/%d done", done, total)),
		statStyle.Render(fmt.Sprintf("today %d%%", m.tracker.TodayProgress())),
		statStyle.Render(fmt.Sprintf("week %d%%", weekly.SuccessRate)),
	)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}
	if m.status != "" {
		return statStyle.Render(m.status)
	}
	return ""
}
