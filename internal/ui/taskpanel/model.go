// Package taskpanel is the modal-style list of derived tasks. It is a
// read-only consumer of the task store; completing or dismissing a task
// is forwarded to the parent model, which owns the store mutation.
package taskpanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/event-ops/internal/keys"
	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/theme"
)

// CompleteMsg asks the parent to complete the task and forward it to
// the navigation handler.
type CompleteMsg struct {
	Task model.Task
}

// DismissMsg asks the parent to remove the task without navigation.
type DismissMsg struct {
	Task model.Task
}

// ClearAllMsg asks the parent to dismiss every task for the role.
type ClearAllMsg struct{}

// RefreshMsg asks the parent to run a manual backend refresh.
type RefreshMsg struct{}

// Item wraps a model.Task so it can be used in a bubbles/list.
type Item struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Task.Title }

// Title returns the task title with its urgency marker.
func (i Item) Title() string {
	marker := theme.UrgencyStyle(string(i.Task.Urgency)).Render("●")
	return fmt.Sprintf("%s %s", marker, i.Task.Title)
}

// Description returns a short summary line for the list.
func (i Item) Description() string {
	parts := []string{
		i.Task.Category,
		string(i.Task.Urgency),
	}
	if i.Task.Count > 1 {
		parts = append(parts, fmt.Sprintf("%d records", i.Task.Count))
	}
	if i.Task.Action != "" {
		parts = append(parts, i.Task.Action)
	}
	return strings.Join(parts, " | ")
}

// Model is the Bubble Tea model for the task panel.
type Model struct {
	list list.Model
	keys *keys.KeyMap
}

// New creates an empty task panel.
func New(km *keys.KeyMap) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.ColorBlue).
		BorderForeground(theme.ColorBlue)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.ColorBlue).
		BorderForeground(theme.ColorBlue)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Urgent tasks"
	l.Styles.Title = theme.HeaderStyle
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	return Model{list: l, keys: km}
}

// SetTasks replaces the panel contents with the given task list.
func (m *Model) SetTasks(tasks []model.Task) {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t}
	}
	m.list.SetItems(items)
}

// SetSize resizes the underlying list.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Selected returns the currently highlighted task, if any.
func (m *Model) Selected() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key events, emitting action messages for the parent.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Complete):
			if task, ok := m.Selected(); ok {
				return m, func() tea.Msg { return CompleteMsg{Task: task} }
			}
			return m, nil
		case key.Matches(keyMsg, m.keys.Dismiss):
			if task, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DismissMsg{Task: task} }
			}
			return m, nil
		case key.Matches(keyMsg, m.keys.ClearAll):
			return m, func() tea.Msg { return ClearAllMsg{} }
		case key.Matches(keyMsg, m.keys.Refresh):
			return m, func() tea.Msg { return RefreshMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return theme.PanelStyle.Render("No urgent tasks. You're all caught up.")
	}
	return m.list.View()
}
