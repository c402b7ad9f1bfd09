package badge

import (
	"strings"
	"testing"

	"github.com/nhle/event-ops/internal/model"
)

func TestFromTasks(t *testing.T) {
	tasks := []model.Task{
		{Kind: model.KindCritical},
		{Kind: model.KindCritical},
		{Kind: model.KindUrgent},
		{Kind: model.KindReminder},
	}

	c := FromTasks(tasks)
	if c.TaskCount != 4 {
		t.Errorf("TaskCount = %d, want 4", c.TaskCount)
	}
	if c.CriticalCount != 2 {
		t.Errorf("CriticalCount = %d, want 2", c.CriticalCount)
	}
	if c.UrgentCount != 1 {
		t.Errorf("UrgentCount = %d, want 1", c.UrgentCount)
	}
	if c.Loading {
		t.Error("Loading should default to false")
	}
}

func TestFromTasksEmpty(t *testing.T) {
	c := FromTasks(nil)
	if c != (Counts{}) {
		t.Errorf("FromTasks(nil) = %+v, want zero counts", c)
	}
}

func TestRenderOmitsZeroPills(t *testing.T) {
	out := Render(Counts{TaskCount: 3})
	if !strings.Contains(out, "3 tasks") {
		t.Errorf("output missing total pill: %q", out)
	}
	if strings.Contains(out, "critical") || strings.Contains(out, "urgent") {
		t.Errorf("zero-count pills rendered: %q", out)
	}

	out = Render(Counts{TaskCount: 3, CriticalCount: 1, Loading: true})
	if !strings.Contains(out, "1 critical") || !strings.Contains(out, "refreshing") {
		t.Errorf("expected critical and loading pills: %q", out)
	}
}
