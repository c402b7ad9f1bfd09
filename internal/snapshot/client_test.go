package snapshot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nhle/event-ops/internal/model"
)

// fakeBackend serves canned JSON per API path.
func fakeBackend(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization header = %q", got)
		}
		body, ok := responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestFetchBuildsSnapshot(t *testing.T) {
	srv := fakeBackend(t, map[string]string{
		"/api/events/e1/shifts": `[
			{"id":"s1","event_id":"e1","title":"Door crew","status":"live",
			 "shift_date":"2026-05-20","start_time":"09:00","end_time":"13:00",
			 "max_volunteers":4,"current_volunteers":null}
		]`,
		"/api/events/e1/signups": `[
			{"id":"u1","shift_id":"s1","volunteer_id":"vol-1","status":"confirmed"}
		]`,
		"/api/events/e1/teams": `[
			{"id":"t1","event_id":"e1","team_name":"Alpha","status":"submitted",
			 "created_by":"dir-1","group_size":2,"performers":["a","b"]}
		]`,
		"/api/events/live": `{"id":"e1","name":"Gala","status":"live","required_volunteer_hours":12}`,
	})
	defer srv.Close()

	c := NewClient(srv.URL, "e1", "test-token", nil)
	snap, err := c.Fetch(context.Background(), "vol-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if snap.UserID != "vol-1" {
		t.Errorf("UserID = %q", snap.UserID)
	}
	if len(snap.Shifts) != 1 {
		t.Fatalf("shifts = %+v", snap.Shifts)
	}
	sh := snap.Shifts[0]
	if sh.StartTime != model.TimeOfDay(9*60) || sh.EndTime != model.TimeOfDay(13*60) {
		t.Errorf("shift times = %v..%v", sh.StartTime, sh.EndTime)
	}
	if sh.MaxVolunteers != 4 {
		t.Errorf("MaxVolunteers = %d", sh.MaxVolunteers)
	}
	if sh.CurrentVolunteers != 0 {
		t.Errorf("null current_volunteers should map to 0, got %d", sh.CurrentVolunteers)
	}
	if len(snap.Signups) != 1 || snap.Signups[0].Status != model.SignupStatusConfirmed {
		t.Errorf("signups = %+v", snap.Signups)
	}
	if len(snap.Teams) != 1 || snap.Teams[0].GroupSize != 2 {
		t.Errorf("teams = %+v", snap.Teams)
	}
	if snap.LiveEvent == nil || snap.LiveEvent.RequiredVolunteerHours != 12 {
		t.Errorf("live event = %+v", snap.LiveEvent)
	}
}

func TestFetchSkipsMalformedShift(t *testing.T) {
	srv := fakeBackend(t, map[string]string{
		"/api/events/e1/shifts": `[
			{"id":"bad","shift_date":"not-a-date","start_time":"09:00","end_time":"13:00"},
			{"id":"good","event_id":"e1","title":"Setup","status":"live",
			 "shift_date":"2026-05-20","start_time":"08:00","end_time":"10:30"}
		]`,
		"/api/events/e1/signups": `[]`,
		"/api/events/e1/teams":   `[]`,
		"/api/events/live":       `{}`,
	})
	defer srv.Close()

	c := NewClient(srv.URL, "e1", "test-token", nil)
	snap, err := c.Fetch(context.Background(), "vol-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(snap.Shifts) != 1 || snap.Shifts[0].ID != "good" {
		t.Fatalf("shifts = %+v, want only the well-formed record", snap.Shifts)
	}
	if snap.LiveEvent != nil {
		t.Errorf("empty live event body should leave LiveEvent nil, got %+v", snap.LiveEvent)
	}
}

func TestFetchLiveEventFailureIsNotFatal(t *testing.T) {
	srv := fakeBackend(t, map[string]string{
		"/api/events/e1/shifts":  `[]`,
		"/api/events/e1/signups": `[]`,
		"/api/events/e1/teams":   `[]`,
	})
	defer srv.Close()

	c := NewClient(srv.URL, "e1", "test-token", nil)
	snap, err := c.Fetch(context.Background(), "vol-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snap.LiveEvent != nil {
		t.Errorf("LiveEvent = %+v, want nil", snap.LiveEvent)
	}
}

func TestFetchUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "e1", "stale-token", nil)
	_, err := c.Fetch(context.Background(), "vol-1")
	if !IsAuthError(err) {
		t.Fatalf("err = %v, want an auth error", err)
	}
}

func TestGetRetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "e1", "test-token", nil)
	var out []shiftDTO
	if err := c.get(context.Background(), "/api/events/e1/shifts", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}
