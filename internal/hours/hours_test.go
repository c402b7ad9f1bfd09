package hours

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/nhle/event-ops/internal/model"
)

func pair(start, end int, status string) Pair {
	return Pair{
		Start:  model.TimeOfDay(start),
		End:    model.TimeOfDay(end),
		Status: status,
	}
}

func TestComputeIncludesOnlyCreditedStatuses(t *testing.T) {
	pairs := []Pair{
		pair(9*60, 12*60, model.SignupStatusSignedUp),  // 3h
		pair(13*60, 15*60, model.SignupStatusConfirmed), // 2h
		pair(15*60, 17*60, model.SignupStatusCheckedIn), // 2h
		pair(9*60, 18*60, model.SignupStatusNoShow),
		pair(9*60, 18*60, model.SignupStatusCancelled),
	}

	got := Compute(pairs, CreditedStatuses)
	if got != 7.0 {
		t.Fatalf("Compute = %v, want 7.0", got)
	}
}

func TestComputeMalformedRangeContributesZero(t *testing.T) {
	pairs := []Pair{
		pair(12*60, 12*60, model.SignupStatusConfirmed), // end == start
		pair(14*60, 10*60, model.SignupStatusConfirmed), // end < start
		pair(10*60, 11*60, model.SignupStatusConfirmed), // 1h
	}

	got := Compute(pairs, CreditedStatuses)
	if got != 1.0 {
		t.Fatalf("Compute = %v, want 1.0 (malformed ranges must not go negative)", got)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	if got := Compute(nil, CreditedStatuses); got != 0 {
		t.Fatalf("Compute(nil) = %v, want 0", got)
	}
}

// TestComputeMonotonic verifies that adding more credited pairs never
// decreases the total.
func TestComputeMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")

		var pairs []Pair
		prev := 0.0
		for i := 0; i < n; i++ {
			start := rapid.IntRange(0, 1439).Draw(t, "start")
			end := rapid.IntRange(0, 1439).Draw(t, "end")
			status := rapid.SampledFrom([]string{
				model.SignupStatusConfirmed,
				model.SignupStatusCheckedIn,
			}).Draw(t, "status")

			pairs = append(pairs, pair(start, end, status))
			total := Compute(pairs, CreditedStatuses)
			if total < prev {
				t.Fatalf("total decreased from %v to %v after adding a credited pair", prev, total)
			}
			prev = total
		}
	})
}

func TestCreditedFromSnapshot(t *testing.T) {
	snap := &model.Snapshot{
		UserID: "vol-1",
		Shifts: []model.Shift{
			{ID: "s1", StartTime: model.TimeOfDay(9 * 60), EndTime: model.TimeOfDay(13 * 60)},
			{ID: "s2", StartTime: model.TimeOfDay(14 * 60), EndTime: model.TimeOfDay(16 * 60)},
		},
		Signups: []model.Signup{
			{ID: "u1", ShiftID: "s1", VolunteerID: "vol-1", Status: model.SignupStatusConfirmed},
			{ID: "u2", ShiftID: "s2", VolunteerID: "vol-1", Status: model.SignupStatusNoShow},
			{ID: "u3", ShiftID: "s2", VolunteerID: "vol-2", Status: model.SignupStatusConfirmed},
			{ID: "u4", ShiftID: "missing", VolunteerID: "vol-1", Status: model.SignupStatusConfirmed},
		},
	}

	got := CreditedFromSnapshot(snap)
	if got != 4.0 {
		t.Fatalf("CreditedFromSnapshot = %v, want 4.0 (only own confirmed signup on a known shift)", got)
	}
}
