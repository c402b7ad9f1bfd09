// Package dashboard composes the badge and task panel into the live
// watch view. It owns the store mutations the panel requests and relays
// orchestrator updates into the Bubble Tea runtime.
package dashboard

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nhle/event-ops/internal/keys"
	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/refresh"
	"github.com/nhle/event-ops/internal/taskstore"
	"github.com/nhle/event-ops/internal/theme"
	"github.com/nhle/event-ops/internal/ui/badge"
	"github.com/nhle/event-ops/internal/ui/taskpanel"
)

// TasksUpdatedMsg carries the role's current task list from the
// orchestrator into the Bubble Tea runtime.
type TasksUpdatedMsg struct {
	Tasks []model.Task
}

// refreshDoneMsg signals that a manual refresh attempt finished.
type refreshDoneMsg struct{}

// Model is the top-level watch dashboard.
type Model struct {
	store *taskstore.Store
	orch  *refresh.Orchestrator
	role  model.Role

	// onNavigate receives completed tasks so an external handler can
	// deep-link into the records named by RelatedData.
	onNavigate func(model.Task)

	keys    *keys.KeyMap
	help    help.Model
	panel   taskpanel.Model
	counts  badge.Counts
	loading bool
	width   int
	height  int
	log     *zap.Logger
}

// New creates the dashboard. onNavigate may be nil.
func New(store *taskstore.Store, orch *refresh.Orchestrator, role model.Role, onNavigate func(model.Task), log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	km := keys.DefaultKeyMap()
	return Model{
		store:      store,
		orch:       orch,
		role:       role,
		onNavigate: onNavigate,
		keys:       km,
		help:       help.New(),
		panel:      taskpanel.New(km),
		loading:    true,
		log:        log,
	}
}

// Init starts the orchestrator from inside the Bubble Tea runtime. The
// orchestrator's initial delivery goes through Program.Send, which
// blocks until the event loop is receiving, so Start must not run
// before Run; deferring it to a command guarantees the loop is live.
func (m Model) Init() tea.Cmd {
	if m.orch == nil {
		return nil
	}
	orch := m.orch
	return func() tea.Msg {
		orch.Start(context.Background())
		return nil
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.panel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case TasksUpdatedMsg:
		m.loading = false
		m.counts = badge.FromTasks(msg.Tasks)
		m.counts.Loading = false
		m.panel.SetTasks(msg.Tasks)
		return m, nil

	case taskpanel.CompleteMsg:
		m.store.RemoveTask(m.role, msg.Task.ID)
		if m.onNavigate != nil {
			m.onNavigate(msg.Task)
		}
		return m, nil

	case taskpanel.DismissMsg:
		m.store.RemoveTask(m.role, msg.Task.ID)
		return m, nil

	case taskpanel.ClearAllMsg:
		m.store.ClearAllTasks(m.role)
		return m, nil

	case taskpanel.RefreshMsg:
		m.counts.Loading = true
		orch := m.orch
		return m, func() tea.Msg {
			orch.TryRefresh(context.Background())
			return refreshDoneMsg{}
		}

	case refreshDoneMsg:
		m.counts.Loading = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		theme.HeaderStyle.Render("eventops"),
		" ",
		badge.Render(m.counts),
	)

	body := m.panel.View()
	if m.loading {
		body = theme.PanelStyle.Render("Loading tasks…")
	}

	helpView := theme.HelpStyle.Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, helpView)
}
