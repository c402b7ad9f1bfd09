package cache

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/snapshot"
)

// FallbackProvider wraps a snapshot provider with the last-good cache.
// Successful fetches refresh the cache; failed fetches degrade to the
// cached records instead of an empty snapshot.
type FallbackProvider struct {
	inner   snapshot.Provider
	cache   *Cache
	eventID string
	log     *zap.Logger
}

// NewFallbackProvider wires a provider to the cache for one event.
func NewFallbackProvider(inner snapshot.Provider, c *Cache, eventID string, log *zap.Logger) *FallbackProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &FallbackProvider{inner: inner, cache: c, eventID: eventID, log: log}
}

// Fetch delegates to the wrapped provider, falling back to the cached
// snapshot on failure. Auth errors are not masked by the fallback so
// callers can still surface a reconfiguration hint.
func (p *FallbackProvider) Fetch(ctx context.Context, userID string) (*model.Snapshot, error) {
	snap, err := p.inner.Fetch(ctx, userID)
	if err == nil {
		if saveErr := p.cache.SaveSnapshot(ctx, p.eventID, snap); saveErr != nil {
			p.log.Warn("saving snapshot to cache failed", zap.Error(saveErr))
		}
		return snap, nil
	}

	if snapshot.IsAuthError(err) {
		return nil, err
	}

	cached, loadErr := p.cache.LoadSnapshot(ctx, p.eventID, userID)
	if loadErr != nil {
		if errors.Is(loadErr, ErrNoSnapshot) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch failed (%v); loading cached snapshot: %w", err, loadErr)
	}

	p.log.Warn("serving cached snapshot after fetch failure", zap.Error(err))
	return cached, nil
}
