package heatmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(5)

	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	// Shades from no completions to every due habit done
	levels = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type Model struct {
	viewport viewport.Model
	cells    []models.HeatmapDay
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m *Model) SetCells(cells []models.HeatmapDay) {
	m.cells = cells
	m.viewport.SetContent(Render(cells))
}

// Render draws the cells as a weekday-by-week grid, oldest week on the left.
func Render(cells []models.HeatmapDay) string {
	if len(cells) == 0 {
		return "No data yet."
	}

	rows := make([][]string, 7)
	first, err := time.Parse(constants.DateFormat, cells[0].Date)
	if err != nil {
		return "No data yet."
	}
	// Pad the first week so columns line up by weekday
	for day := 0; day < int(first.Weekday()); day++ {
		rows[day] = append(rows[day], " ")
	}

	completed, total := 0, 0
	for _, cell := range cells {
		date, err := time.Parse(constants.DateFormat, cell.Date)
		if err != nil {
			continue
		}
		day := int(date.Weekday())
		rows[day] = append(rows[day], Cell(cell))
		completed += cell.Completed
		total += cell.Total
	}

	var b strings.Builder
	for day, row := range rows {
		b.WriteString(labelStyle.Render(weekdayLabels[day]))
		b.WriteString(strings.Join(row, " "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(fmt.Sprintf("%s to %s: %d of %d due completions",
		cells[0].Date, cells[len(cells)-1].Date, completed, total)))
	return b.String()
}

// Cell renders one day as a shaded block.
func Cell(cell models.HeatmapDay) string {
	if cell.Total == 0 {
		return emptyStyle.Render("·")
	}
	level := int(cell.Intensity * float64(len(levels)-1))
	level = min(max(level, 0), len(levels)-1)
	return levels[level].Render("■")
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(Render(m.cells))
}
