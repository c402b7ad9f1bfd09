// Package generate runs one full task regeneration pass for a role.
package generate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/rules"
	"github.com/nhle/event-ops/internal/snapshot"
	"github.com/nhle/event-ops/internal/taskstore"
)

// Generator orchestrates a regeneration pass: clear the role's list,
// evaluate the rule catalog, write the results, then notify observers
// once for the whole batch.
type Generator struct {
	store    *taskstore.Store
	provider snapshot.Provider
	userID   string
	log      *zap.Logger
}

// New creates a Generator bound to a store and a snapshot provider.
func New(store *taskstore.Store, provider snapshot.Provider, userID string, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		store:    store,
		provider: provider,
		userID:   userID,
		log:      log,
	}
}

// Generate regenerates the role's task list from an already-acquired
// snapshot. Observers receive exactly one notification after the list
// is fully repopulated; they can never observe the cleared intermediate
// state.
func (g *Generator) Generate(role model.Role, snap *model.Snapshot) {
	g.store.ClearTasks(role)

	tasks := rules.Evaluate(role, snap)
	for _, t := range tasks {
		g.store.AddTask(role, t)
	}

	g.log.Debug("regenerated tasks",
		zap.String("role", string(role)),
		zap.Int("count", len(tasks)),
	)
	g.store.Notify()
}

// Fetch acquires a fresh domain snapshot. Callers that may have torn
// down while the fetch was in flight check their own liveness before
// passing the result to Generate.
func (g *Generator) Fetch(ctx context.Context) (*model.Snapshot, error) {
	snap, err := g.provider.Fetch(ctx, g.userID)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}
	return snap, nil
}

// Refresh fetches a fresh snapshot and regenerates the role's list from
// it. When the fetch fails the pass aborts before clearing anything, so
// a stale-but-present list survives transient backend errors.
func (g *Generator) Refresh(ctx context.Context, role model.Role) error {
	snap, err := g.Fetch(ctx)
	if err != nil {
		g.log.Warn("snapshot fetch failed; keeping existing tasks",
			zap.String("role", string(role)),
			zap.Error(err),
		)
		return err
	}

	g.Generate(role, snap)
	return nil
}
