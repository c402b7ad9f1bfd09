package rules

import (
	"fmt"
	"time"

	"github.com/nhle/event-ops/internal/hours"
	"github.com/nhle/event-ops/internal/model"
)

// volunteerRules is the rule table for the volunteer role.
var volunteerRules = []rule{
	ruleHoursShortfall,
	ruleShiftsNeedingHelp,
	ruleShiftsToday,
	ruleUpcomingShifts,
}

// ruleHoursShortfall fires while the volunteer's credited hours are
// below the live event's requirement. Below half the requirement the
// task escalates to high urgency.
func ruleHoursShortfall(snap *model.Snapshot) []model.Task {
	required := RequiredHours(snap)
	credited := hours.CreditedFromSnapshot(snap)
	if credited >= required {
		return nil
	}

	urgency := model.UrgencyMedium
	if credited < required/2 {
		urgency = model.UrgencyHigh
	}
	var related []string
	if snap.LiveEvent != nil {
		related = []string{snap.LiveEvent.ID}
	}
	return []model.Task{{
		Kind:        model.KindUrgent,
		Category:    model.CategoryVolunteer,
		Title:       "Volunteer hours below requirement",
		Description: fmt.Sprintf("You have %.1f of %.1f required hours", credited, required),
		Count:       1,
		Urgency:     urgency,
		Action:      "Browse shifts",
		Icon:        "clock",
		Color:       "#FFA94D",
		CreatedAt:   snap.Now,
		RelatedData: related,
	}}
}

// ruleShiftsNeedingHelp surfaces live shifts strictly below the
// opportunity fill ratio. Exactly 50% full does not fire.
func ruleShiftsNeedingHelp(snap *model.Snapshot) []model.Task {
	var matches []model.Shift
	for _, sh := range liveShifts(snap) {
		if sh.FillRatio() < OpportunityRatio {
			matches = append(matches, sh)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindReminder,
		Category:    model.CategoryVolunteer,
		Title:       "Shifts that need help",
		Description: fmt.Sprintf("%d shift(s) are less than half full", len(matches)),
		Count:       len(matches),
		Urgency:     model.UrgencyMedium,
		Action:      "Sign up",
		Icon:        "hand",
		Color:       "#5B9BD5",
		CreatedAt:   snap.Now,
		RelatedData: shiftIDs(matches),
	}}
}

// ownActiveShifts returns the shifts the current user holds a signed-up
// or confirmed signup for.
func ownActiveShifts(snap *model.Snapshot) []model.Shift {
	var out []model.Shift
	for _, su := range snap.Signups {
		if su.VolunteerID != snap.UserID {
			continue
		}
		if su.Status != model.SignupStatusSignedUp && su.Status != model.SignupStatusConfirmed {
			continue
		}
		if sh, ok := snap.ShiftByID(su.ShiftID); ok {
			out = append(out, sh)
		}
	}
	return out
}

// daysUntil counts whole calendar days from now to the shift date.
func daysUntil(now, date time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	b := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return int(b.Sub(a) / (24 * time.Hour))
}

// ruleShiftsToday fires when one of the user's own shifts happens today.
func ruleShiftsToday(snap *model.Snapshot) []model.Task {
	var matches []model.Shift
	for _, sh := range ownActiveShifts(snap) {
		if daysUntil(snap.Now, sh.ShiftDate) == 0 {
			matches = append(matches, sh)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindCritical,
		Category:    model.CategoryShift,
		Title:       "You have a shift today",
		Description: fmt.Sprintf("%d of your shift(s) take place today", len(matches)),
		Count:       len(matches),
		Urgency:     model.UrgencyHigh,
		Action:      "View schedule",
		Icon:        "calendar",
		Color:       "#FF6B6B",
		CreatedAt:   snap.Now,
		RelatedData: shiftIDs(matches),
	}}
}

// ruleUpcomingShifts reminds about own shifts in the next few days,
// excluding today (covered by ruleShiftsToday).
func ruleUpcomingShifts(snap *model.Snapshot) []model.Task {
	var matches []model.Shift
	for _, sh := range ownActiveShifts(snap) {
		d := daysUntil(snap.Now, sh.ShiftDate)
		if d >= 1 && d <= UpcomingShiftDays {
			matches = append(matches, sh)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindReminder,
		Category:    model.CategoryShift,
		Title:       "Upcoming shifts",
		Description: fmt.Sprintf("%d of your shift(s) happen in the next %d days", len(matches), UpcomingShiftDays),
		Count:       len(matches),
		Urgency:     model.UrgencyLow,
		Action:      "View schedule",
		Icon:        "calendar",
		Color:       "#6BCB77",
		CreatedAt:   snap.Now,
		RelatedData: shiftIDs(matches),
	}}
}
