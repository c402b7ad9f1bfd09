package rules

import (
	"testing"

	"github.com/nhle/event-ops/internal/model"
)

func TestUnfilledShiftsRule(t *testing.T) {
	snap := &model.Snapshot{
		Now: testNow,
		Shifts: []model.Shift{
			liveShift("s1", 4, 0),
			liveShift("s2", 4, 4),
			{ID: "s3", Status: model.ShiftStatusDraft, MaxVolunteers: 4},
		},
	}

	tasks := Evaluate(model.RoleOrganizer, snap)
	task := findTask(t, tasks, "Shifts with no volunteers")

	if task.Kind != model.KindCritical {
		t.Errorf("kind = %q, want critical", task.Kind)
	}
	if task.Urgency != model.UrgencyHigh {
		t.Errorf("urgency = %q, want high", task.Urgency)
	}
	if task.Count != 1 {
		t.Errorf("count = %d, want 1", task.Count)
	}
	if len(task.RelatedData) != 1 || task.RelatedData[0] != "s1" {
		t.Errorf("related data = %v, want [s1]", task.RelatedData)
	}
}

func TestUnderstaffedBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		current int
		max     int
		fires   bool
	}{
		{"zero volunteers belongs to the critical rule", 0, 4, false},
		{"half full fires", 2, 4, true},
		{"75 percent does not fire", 3, 4, false},
		{"exactly 70 percent does not fire", 7, 10, false},
		{"just under 70 percent fires", 6, 10, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := &model.Snapshot{
				Now:    testNow,
				Shifts: []model.Shift{liveShift("s1", tc.max, tc.current)},
			}
			tasks := ruleUnderstaffedShifts(snap)
			fired := len(tasks) > 0
			if fired != tc.fires {
				t.Fatalf("%d/%d: fired = %v, want %v", tc.current, tc.max, fired, tc.fires)
			}
		})
	}
}

func TestTeamsMissingMusicRule(t *testing.T) {
	snap := &model.Snapshot{
		Now: testNow,
		Teams: []model.Team{
			{ID: "t1", Status: model.TeamStatusSubmitted},
			{ID: "t2", Status: model.TeamStatusApproved},
			{ID: "t3", Status: model.TeamStatusApproved, MusicFileURL: "https://cdn/music.mp3"},
			{ID: "t4", Status: model.TeamStatusDraft},
		},
	}

	tasks := ruleTeamsMissingMusic(snap)
	if len(tasks) != 1 {
		t.Fatalf("got %d task(s), want 1", len(tasks))
	}
	if tasks[0].Count != 2 {
		t.Errorf("count = %d, want 2 (submitted and approved teams without music)", tasks[0].Count)
	}
	if tasks[0].Urgency != model.UrgencyHigh {
		t.Errorf("urgency = %q, want high", tasks[0].Urgency)
	}
}

func TestPendingApprovalsAndDraftShifts(t *testing.T) {
	snap := &model.Snapshot{
		Now: testNow,
		Shifts: []model.Shift{
			{ID: "s1", Status: model.ShiftStatusDraft},
			{ID: "s2", Status: model.ShiftStatusDraft},
		},
		Teams: []model.Team{
			{ID: "t1", Status: model.TeamStatusSubmitted, MusicFileURL: "x"},
		},
	}

	tasks := Evaluate(model.RoleOrganizer, snap)

	pending := findTask(t, tasks, "Teams pending approval")
	if pending.Urgency != model.UrgencyMedium || pending.Count != 1 {
		t.Errorf("pending approval task = %+v", pending)
	}

	drafts := findTask(t, tasks, "Unpublished shifts")
	if drafts.Kind != model.KindReminder || drafts.Urgency != model.UrgencyLow || drafts.Count != 2 {
		t.Errorf("draft shifts task = %+v", drafts)
	}
}

func TestOverallFillRateTiers(t *testing.T) {
	cases := []struct {
		name    string
		current int
		fires   bool
		urgency model.Urgency
	}{
		{"90 percent does not fire", 9, false, ""},
		{"exactly 80 percent does not fire", 8, false, ""},
		{"70 percent fires medium", 7, true, model.UrgencyMedium},
		{"exactly 60 percent fires medium", 6, true, model.UrgencyMedium},
		{"50 percent fires high", 5, true, model.UrgencyHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := &model.Snapshot{
				Now:    testNow,
				Shifts: []model.Shift{liveShift("s1", 10, tc.current)},
			}
			tasks := ruleOverallFillRate(snap)
			if fired := len(tasks) > 0; fired != tc.fires {
				t.Fatalf("fired = %v, want %v", fired, tc.fires)
			}
			if tc.fires && tasks[0].Urgency != tc.urgency {
				t.Fatalf("urgency = %q, want %q", tasks[0].Urgency, tc.urgency)
			}
		})
	}
}

func TestOverallFillRateSkipsWithoutCapacity(t *testing.T) {
	snap := &model.Snapshot{Now: testNow}
	if tasks := ruleOverallFillRate(snap); len(tasks) != 0 {
		t.Fatalf("expected no task with no live shifts, got %d", len(tasks))
	}
}
