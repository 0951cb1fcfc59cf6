package board

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/models"
)

// ToggleHabitMsg asks the parent model to flip a habit's completion on the viewed day.
type ToggleHabitMsg struct {
	ID string
}

type Item struct {
	Habit     models.Habit
	Completed bool
	Streak    int
}

func (i Item) Title() string {
	mark := "○ "
	if i.Completed {
		mark = "✓ "
	}
	if i.Habit.Icon != "" {
		return mark + i.Habit.Icon + " " + i.Habit.Title
	}
	return mark + i.Habit.Title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | streak %d", i.Habit.Category, i.Streak)
	if i.Habit.GoalType == models.GoalNumeric && i.Habit.DailyGoal != nil {
		desc += fmt.Sprintf(" | goal %g", *i.Habit.DailyGoal)
	}
	if i.Habit.ReminderTime != "" {
		desc += " | " + i.Habit.ReminderTime
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "toggle done"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// SetItems replaces the rows, keeping the cursor where it was when possible.
func (m *Model) SetItems(items []Item) {
	index := m.list.Index()
	m.list.SetItems(toListItems(items))
	if index < len(items) {
		m.list.Select(index)
	}
}

// Selected returns the highlighted row.
func (m Model) Selected() (Item, bool) {
	item, ok := m.list.SelectedItem().(Item)
	return item, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Toggle) {
		if i, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing due on this day.\n  Add habits with 'habitual habit add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
