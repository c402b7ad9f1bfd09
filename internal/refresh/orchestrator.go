// Package refresh schedules task regeneration passes: periodic, store
// driven, and manual, with at most one pass in flight per role.
package refresh

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/event-ops/internal/generate"
	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/taskstore"
)

// Config holds the timing knobs for one orchestrator instance.
type Config struct {
	// AutoRefresh enables the periodic backend refresh.
	AutoRefresh bool

	// Interval is the periodic refresh cadence.
	Interval time.Duration

	// Debounce coalesces bursts of store notifications into one local
	// sync.
	Debounce time.Duration

	// InitialDelay is the wait before the one-shot refresh scheduled at
	// startup, decoupling first render from network latency.
	InitialDelay time.Duration

	// Cooldown is how long after a completed pass before another may
	// start, absorbing near-simultaneous timer and subscription
	// triggers.
	Cooldown time.Duration
}

// DefaultConfig mirrors the application's standard refresh timing.
func DefaultConfig() Config {
	return Config{
		AutoRefresh:  true,
		Interval:     30 * time.Second,
		Debounce:     150 * time.Millisecond,
		InitialDelay: 500 * time.Millisecond,
		Cooldown:     time.Second,
	}
}

// Orchestrator drives regeneration for a single role. It guarantees at
// most one pass in flight; overlapping triggers are dropped, not queued.
type Orchestrator struct {
	gen   *generate.Generator
	store *taskstore.Store
	role  model.Role
	cfg   Config
	log   *zap.Logger

	// onUpdate receives the role's current task list after every local
	// sync. Nil is allowed for consumers that read the store directly.
	onUpdate func([]model.Task)

	mu            sync.Mutex
	initialized   bool
	updating      bool
	active        bool
	lastDone      time.Time
	stopCh        chan struct{}
	unsubscribe   func()
	debounceTimer *time.Timer
	initTimer     *time.Timer
}

// New creates an orchestrator for one role. onUpdate may be nil.
func New(gen *generate.Generator, store *taskstore.Store, role model.Role, cfg Config, onUpdate func([]model.Task), log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		gen:      gen,
		store:    store,
		role:     role,
		cfg:      cfg,
		log:      log,
		onUpdate: onUpdate,
	}
}

// SetOnUpdate replaces the update consumer. It must be called before
// Start.
func (o *Orchestrator) SetOnUpdate(fn func([]model.Task)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onUpdate = fn
}

// Start initializes the orchestrator: it synchronously delivers the
// store's current contents, subscribes to store notifications, schedules
// the one-shot initial refresh, and starts the periodic timer when auto
// refresh is enabled. Calling Start on a started instance is a no-op.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	if o.initialized {
		o.mu.Unlock()
		return
	}
	o.initialized = true
	o.active = true
	stopCh := make(chan struct{})
	o.stopCh = stopCh
	o.mu.Unlock()

	// Mount-time render comes straight from the store, before any
	// network round trip.
	o.deliver()

	o.mu.Lock()
	o.unsubscribe = o.store.Subscribe(o.onStoreNotify)
	o.initTimer = time.AfterFunc(o.cfg.InitialDelay, func() {
		o.TryRefresh(ctx)
	})
	o.mu.Unlock()

	if o.cfg.AutoRefresh {
		go o.runPeriodic(ctx, stopCh)
	}
}

// Stop tears the orchestrator down: the periodic timer, the pending
// debounced sync, and the store subscription are all cancelled. An
// in-flight fetch is not interrupted; its result is discarded when it
// completes.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.active {
		return
	}
	o.active = false
	o.initialized = false
	o.updating = false
	close(o.stopCh)

	if o.debounceTimer != nil {
		o.debounceTimer.Stop()
		o.debounceTimer = nil
	}
	if o.initTimer != nil {
		o.initTimer.Stop()
		o.initTimer = nil
	}
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
}

// TryRefresh runs one backend refresh pass unless a pass is already in
// flight or the cooldown window is still open, in which case the
// request is dropped. It reports whether a pass ran.
func (o *Orchestrator) TryRefresh(ctx context.Context) bool {
	if !o.acquire() {
		return false
	}

	snap, err := o.gen.Fetch(ctx)

	o.mu.Lock()
	stillActive := o.active
	o.mu.Unlock()

	if !stillActive {
		// Torn down while the fetch was in flight; discard the result.
		o.release()
		return false
	}

	if err != nil {
		o.log.Warn("backend refresh failed",
			zap.String("role", string(o.role)),
			zap.Error(err),
		)
		o.release()
		return false
	}

	o.gen.Generate(o.role, snap)
	o.release()
	return true
}

// acquire claims the in-flight flag, honoring the cooldown.
func (o *Orchestrator) acquire() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.active || o.updating {
		return false
	}
	if time.Since(o.lastDone) < o.cfg.Cooldown {
		return false
	}
	o.updating = true
	return true
}

// release clears the in-flight flag and stamps the cooldown window.
func (o *Orchestrator) release() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.updating = false
	o.lastDone = time.Now()
}

// onStoreNotify schedules a debounced local sync. Bursts of
// notifications within the debounce window collapse into one delivery.
func (o *Orchestrator) onStoreNotify() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.active {
		return
	}
	if o.debounceTimer != nil {
		o.debounceTimer.Stop()
	}
	o.debounceTimer = time.AfterFunc(o.cfg.Debounce, o.syncLocal)
}

// syncLocal delivers the store's current list to the consumer after the
// debounce delay. It holds the in-flight flag while delivering so a
// backend refresh starting mid-sync is dropped, but it does not stamp
// the cooldown window; only backend passes do that.
func (o *Orchestrator) syncLocal() {
	o.mu.Lock()
	if !o.active || o.updating {
		o.mu.Unlock()
		return
	}
	o.updating = true
	o.debounceTimer = nil
	o.mu.Unlock()

	o.deliver()

	o.mu.Lock()
	o.updating = false
	o.mu.Unlock()
}

// deliver pushes the current task list to the onUpdate consumer.
func (o *Orchestrator) deliver() {
	o.mu.Lock()
	fn := o.onUpdate
	o.mu.Unlock()

	if fn == nil {
		return
	}
	fn(o.store.GetTasks(o.role))
}

// runPeriodic is the ticker loop for auto refresh.
func (o *Orchestrator) runPeriodic(ctx context.Context, stopCh <-chan struct{}) {
	ticker := time.NewTicker(o.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			o.TryRefresh(ctx)
		}
	}
}
