package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/snapshot"
)

// newTestCache creates an in-memory cache with all migrations applied.
func newTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := New(":memory:")
	if err != nil {
		t.Fatalf("creating test cache: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("closing test cache: %v", err)
		}
	})
	return c
}

func sampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		UserID: "vol-1",
		Now:    time.Now(),
		Shifts: []model.Shift{
			{
				ID:                "s1",
				EventID:           "e1",
				Title:             "Door crew",
				Status:            model.ShiftStatusLive,
				ShiftDate:         time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
				StartTime:         model.TimeOfDay(9 * 60),
				EndTime:           model.TimeOfDay(13 * 60),
				MaxVolunteers:     4,
				CurrentVolunteers: 2,
			},
		},
		Signups: []model.Signup{
			{ID: "u1", ShiftID: "s1", VolunteerID: "vol-1", Status: model.SignupStatusConfirmed},
		},
		Teams: []model.Team{
			{
				ID:         "t1",
				EventID:    "e1",
				TeamName:   "Alpha",
				Status:     model.TeamStatusSubmitted,
				CreatedBy:  "dir-1",
				GroupSize:  2,
				Performers: []string{"a", "b"},
			},
		},
		LiveEvent: &model.Event{ID: "e1", Name: "Gala", Status: "live", RequiredVolunteerHours: 12},
	}
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.SaveSnapshot(ctx, "e1", sampleSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := c.LoadSnapshot(ctx, "e1", "vol-2")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if got.UserID != "vol-2" {
		t.Errorf("UserID = %q, want the requesting user", got.UserID)
	}
	if len(got.Shifts) != 1 || got.Shifts[0].StartTime != model.TimeOfDay(9*60) {
		t.Errorf("shifts = %+v", got.Shifts)
	}
	if len(got.Signups) != 1 || got.Signups[0].Status != model.SignupStatusConfirmed {
		t.Errorf("signups = %+v", got.Signups)
	}
	if len(got.Teams) != 1 || len(got.Teams[0].Performers) != 2 {
		t.Errorf("teams = %+v", got.Teams)
	}
	if got.LiveEvent == nil || got.LiveEvent.RequiredVolunteerHours != 12 {
		t.Errorf("live event = %+v", got.LiveEvent)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.SaveSnapshot(ctx, "e1", sampleSnapshot()); err != nil {
		t.Fatalf("first save: %v", err)
	}

	smaller := sampleSnapshot()
	smaller.Shifts = nil
	if err := c.SaveSnapshot(ctx, "e1", smaller); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := c.LoadSnapshot(ctx, "e1", "vol-1")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(got.Shifts) != 0 {
		t.Fatalf("stale shifts survived the replacement: %+v", got.Shifts)
	}
}

func TestLiveEventDoesNotLeakAcrossEvents(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.SaveSnapshot(ctx, "e1", sampleSnapshot()); err != nil {
		t.Fatalf("saving e1: %v", err)
	}

	other := sampleSnapshot()
	other.LiveEvent = nil
	if err := c.SaveSnapshot(ctx, "e2", other); err != nil {
		t.Fatalf("saving e2: %v", err)
	}

	got, err := c.LoadSnapshot(ctx, "e2", "vol-1")
	if err != nil {
		t.Fatalf("LoadSnapshot e2: %v", err)
	}
	if got.LiveEvent != nil {
		t.Fatalf("e1's live event leaked into e2's snapshot: %+v", got.LiveEvent)
	}

	got, err = c.LoadSnapshot(ctx, "e1", "vol-1")
	if err != nil {
		t.Fatalf("LoadSnapshot e1: %v", err)
	}
	if got.LiveEvent == nil || got.LiveEvent.ID != "e1" {
		t.Fatalf("e1 lost its own live event: %+v", got.LiveEvent)
	}
}

func TestLoadUnknownEvent(t *testing.T) {
	c := newTestCache(t)

	_, err := c.LoadSnapshot(context.Background(), "nope", "vol-1")
	if !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("err = %v, want ErrNoSnapshot", err)
	}
}

// failingProvider simulates backend outages.
type failingProvider struct {
	snap *model.Snapshot
	err  error
}

func (p *failingProvider) Fetch(ctx context.Context, userID string) (*model.Snapshot, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.snap, nil
}

func TestFallbackServesCachedSnapshotOnFetchFailure(t *testing.T) {
	c := newTestCache(t)
	inner := &failingProvider{snap: sampleSnapshot()}
	provider := NewFallbackProvider(inner, c, "e1", nil)
	ctx := context.Background()

	if _, err := provider.Fetch(ctx, "vol-1"); err != nil {
		t.Fatalf("initial fetch: %v", err)
	}

	inner.err = errors.New("backend down")
	got, err := provider.Fetch(ctx, "vol-1")
	if err != nil {
		t.Fatalf("fallback fetch: %v", err)
	}
	if len(got.Shifts) != 1 {
		t.Fatalf("cached snapshot not served: %+v", got)
	}
}

func TestFallbackWithoutCacheReturnsFetchError(t *testing.T) {
	c := newTestCache(t)
	inner := &failingProvider{err: errors.New("backend down")}
	provider := NewFallbackProvider(inner, c, "e1", nil)

	_, err := provider.Fetch(context.Background(), "vol-1")
	if err == nil || err.Error() != "backend down" {
		t.Fatalf("err = %v, want the original fetch error", err)
	}
}

func TestFallbackDoesNotMaskAuthErrors(t *testing.T) {
	c := newTestCache(t)

	// Seed the cache so a fallback would be possible.
	if err := c.SaveSnapshot(context.Background(), "e1", sampleSnapshot()); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	inner := &failingProvider{err: &snapshot.AuthError{Message: "token expired"}}
	provider := NewFallbackProvider(inner, c, "e1", nil)

	_, err := provider.Fetch(context.Background(), "vol-1")
	if !snapshot.IsAuthError(err) {
		t.Fatalf("err = %v, want the auth error to surface", err)
	}
}
