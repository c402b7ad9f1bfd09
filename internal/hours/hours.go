// Package hours converts shift time ranges and signup statuses into
// credited volunteer hours.
package hours

import "github.com/nhle/event-ops/internal/model"

// Pair couples one shift's time range with the signup status the
// volunteer holds for it.
type Pair struct {
	Start  model.TimeOfDay
	End    model.TimeOfDay
	Status string
}

// CreditedStatuses is the canonical set of signup statuses that count
// toward a volunteer's credited hours. no_show and cancelled never count.
var CreditedStatuses = map[string]bool{
	model.SignupStatusSignedUp:  true,
	model.SignupStatusConfirmed: true,
	model.SignupStatusCheckedIn: true,
}

// Compute sums the duration of every pair whose status appears in
// included, in fractional hours. A pair whose end does not come after
// its start contributes zero; malformed data must never drive the total
// negative.
func Compute(pairs []Pair, included map[string]bool) float64 {
	var total float64
	for _, p := range pairs {
		if !included[p.Status] {
			continue
		}
		if p.End <= p.Start {
			continue
		}
		total += p.End.Hours() - p.Start.Hours()
	}
	return total
}

// CreditedFromSnapshot extracts the current user's pairs from a snapshot
// and computes their credited hours under the canonical inclusion set.
func CreditedFromSnapshot(snap *model.Snapshot) float64 {
	var pairs []Pair
	for _, su := range snap.Signups {
		if su.VolunteerID != snap.UserID {
			continue
		}
		shift, ok := snap.ShiftByID(su.ShiftID)
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{
			Start:  shift.StartTime,
			End:    shift.EndTime,
			Status: su.Status,
		})
	}
	return Compute(pairs, CreditedStatuses)
}
