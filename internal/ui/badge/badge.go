// Package badge renders the compact task-count badge the dashboard
// header shows. It is a read-only consumer of the task store's derived
// list.
package badge

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/theme"
)

// Counts is the badge contract: the totals a badge consumer needs,
// derived trivially from the role's task list.
type Counts struct {
	TaskCount     int
	UrgentCount   int
	CriticalCount int
	Loading       bool
}

// FromTasks derives badge counts from a task list.
func FromTasks(tasks []model.Task) Counts {
	c := Counts{TaskCount: len(tasks)}
	for _, t := range tasks {
		switch t.Kind {
		case model.KindCritical:
			c.CriticalCount++
		case model.KindUrgent:
			c.UrgentCount++
		}
	}
	return c
}

var (
	totalStyle    = theme.BadgeStyle.Foreground(theme.ColorWhite).Background(theme.ColorBlue)
	urgentStyle   = theme.BadgeStyle.Foreground(theme.ColorWhite).Background(theme.ColorOrange)
	criticalStyle = theme.BadgeStyle.Foreground(theme.ColorWhite).Background(theme.ColorRed)
	loadingStyle  = theme.BadgeStyle.Foreground(theme.ColorGray)
)

// Render draws the badge pills for the given counts.
func Render(c Counts) string {
	var pills []string
	pills = append(pills, totalStyle.Render(fmt.Sprintf("%d tasks", c.TaskCount)))
	if c.CriticalCount > 0 {
		pills = append(pills, criticalStyle.Render(fmt.Sprintf("%d critical", c.CriticalCount)))
	}
	if c.UrgentCount > 0 {
		pills = append(pills, urgentStyle.Render(fmt.Sprintf("%d urgent", c.UrgentCount)))
	}
	if c.Loading {
		pills = append(pills, loadingStyle.Render("refreshing…"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(pills, " "))
}
