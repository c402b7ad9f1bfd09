// Package rules derives actionable tasks from a domain snapshot using a
// fixed, role-scoped rule table.
package rules

import (
	"github.com/nhle/event-ops/internal/model"
)

// Fixed policy thresholds. These are deliberately not configurable at
// call time; the rule table is one fixed contract.
const (
	// DefaultRequiredHours applies whenever the live event does not
	// configure required_volunteer_hours. Every caller comparing hours
	// must use this same default.
	DefaultRequiredHours = 9.0

	// UnderstaffedRatio is the exclusive upper bound below which a live
	// shift counts as understaffed for organizers.
	UnderstaffedRatio = 0.7

	// OpportunityRatio is the exclusive upper bound below which a live
	// shift counts as a sign-up opportunity for volunteers.
	OpportunityRatio = 0.5

	// FillRateWarn and FillRateCritical tier the overall fill-rate rule.
	FillRateWarn     = 0.8
	FillRateCritical = 0.6

	// UpcomingShiftDays is how many days ahead the volunteer
	// upcoming-shift reminder looks.
	UpcomingShiftDays = 3
)

// rule maps a snapshot to zero or more tasks. Most rules aggregate all
// matching records into one task; per-team rules emit one task each.
type rule func(snap *model.Snapshot) []model.Task

// catalog holds the rule table for each role. Organizer and admin share
// one table.
var catalog = map[model.Role][]rule{
	model.RoleOrganizer:    organizerRules,
	model.RoleAdmin:        organizerRules,
	model.RoleVolunteer:    volunteerRules,
	model.RoleTeamDirector: directorRules,
}

// Evaluate runs every rule for the role against the snapshot and
// concatenates the results in table order. Unknown roles produce no
// tasks.
func Evaluate(role model.Role, snap *model.Snapshot) []model.Task {
	var out []model.Task
	for _, r := range catalog[role] {
		out = append(out, r(snap)...)
	}
	return out
}

// RequiredHours returns the live event's configured required volunteer
// hours, falling back to DefaultRequiredHours when the event is missing
// or carries no value.
func RequiredHours(snap *model.Snapshot) float64 {
	if snap.LiveEvent != nil && snap.LiveEvent.RequiredVolunteerHours > 0 {
		return snap.LiveEvent.RequiredVolunteerHours
	}
	return DefaultRequiredHours
}

// liveShifts filters the snapshot down to shifts in live status.
func liveShifts(snap *model.Snapshot) []model.Shift {
	var out []model.Shift
	for _, sh := range snap.Shifts {
		if sh.Status == model.ShiftStatusLive {
			out = append(out, sh)
		}
	}
	return out
}

// shiftIDs collects the ids of the given shifts for task RelatedData.
func shiftIDs(shifts []model.Shift) []string {
	ids := make([]string, 0, len(shifts))
	for _, sh := range shifts {
		ids = append(ids, sh.ID)
	}
	return ids
}
