package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/event-ops/internal/generate"
	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/refresh"
	"github.com/nhle/event-ops/internal/taskstore"
)

type stubProvider struct{}

func (stubProvider) Fetch(ctx context.Context, userID string) (*model.Snapshot, error) {
	return &model.Snapshot{Now: time.Now()}, nil
}

// The orchestrator's initial delivery goes through Program.Send, an
// unbuffered channel only the running event loop drains. Starting the
// orchestrator before Run would block that delivery forever, so startup
// must happen in Init's command, on the runtime's command goroutine.
func TestInitStartsOrchestratorInsideRuntime(t *testing.T) {
	store := taskstore.New(nil)
	store.AddTask(model.RoleOrganizer, model.Task{Title: "existing"})

	gen := generate.New(store, stubProvider{}, "user-1", nil)
	cfg := refresh.Config{
		Interval:     time.Hour,
		Debounce:     20 * time.Millisecond,
		InitialDelay: time.Hour,
		Cooldown:     50 * time.Millisecond,
	}
	orch := refresh.New(gen, store, model.RoleOrganizer, cfg, nil, nil)
	defer orch.Stop()

	// Unbuffered, like Program.Send before Run's loop is receiving.
	updates := make(chan []model.Task)
	orch.SetOnUpdate(func(tasks []model.Task) { updates <- tasks })

	m := New(store, orch, model.RoleOrganizer, nil, nil)

	select {
	case tasks := <-updates:
		t.Fatalf("orchestrator delivered %d task(s) before Init ran", len(tasks))
	default:
	}

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no startup command")
	}

	done := make(chan struct{})
	go func() {
		cmd()
		close(done)
	}()

	select {
	case tasks := <-updates:
		if len(tasks) != 1 || tasks[0].Title != "existing" {
			t.Fatalf("initial delivery = %+v", tasks)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("initial delivery never arrived")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("startup command did not return")
	}
}

func TestInitWithoutOrchestrator(t *testing.T) {
	m := New(taskstore.New(nil), nil, model.RoleOrganizer, nil, nil)
	if m.Init() != nil {
		t.Fatal("Init without an orchestrator should be a no-op")
	}
}
