package rules

import (
	"fmt"

	"github.com/nhle/event-ops/internal/model"
)

// organizerRules is the shared rule table for the organizer and admin
// roles. Each entry aggregates all matching records into one task.
var organizerRules = []rule{
	ruleUnfilledShifts,
	ruleUnderstaffedShifts,
	ruleTeamsMissingMusic,
	rulePendingApprovals,
	ruleDraftShifts,
	ruleOverallFillRate,
}

// ruleUnfilledShifts fires when at least one live shift has no assigned
// volunteers at all.
func ruleUnfilledShifts(snap *model.Snapshot) []model.Task {
	var matches []model.Shift
	for _, sh := range liveShifts(snap) {
		if sh.CurrentVolunteers == 0 {
			matches = append(matches, sh)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindCritical,
		Category:    model.CategoryShift,
		Title:       "Shifts with no volunteers",
		Description: fmt.Sprintf("%d live shift(s) have zero volunteers assigned", len(matches)),
		Count:       len(matches),
		Urgency:     model.UrgencyHigh,
		Action:      "View shifts",
		Icon:        "alert",
		Color:       "#FF6B6B",
		CreatedAt:   snap.Now,
		RelatedData: shiftIDs(matches),
	}}
}

// ruleUnderstaffedShifts fires for live shifts that have some volunteers
// but sit strictly below the understaffed fill ratio. Fully empty shifts
// belong to ruleUnfilledShifts instead.
func ruleUnderstaffedShifts(snap *model.Snapshot) []model.Task {
	var matches []model.Shift
	for _, sh := range liveShifts(snap) {
		ratio := sh.FillRatio()
		if ratio > 0 && ratio < UnderstaffedRatio {
			matches = append(matches, sh)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindUrgent,
		Category:    model.CategoryShift,
		Title:       "Understaffed shifts",
		Description: fmt.Sprintf("%d live shift(s) are below %d%% capacity", len(matches), int(UnderstaffedRatio*100)),
		Count:       len(matches),
		Urgency:     model.UrgencyMedium,
		Action:      "Review staffing",
		Icon:        "users",
		Color:       "#FFA94D",
		CreatedAt:   snap.Now,
		RelatedData: shiftIDs(matches),
	}}
}

// ruleTeamsMissingMusic fires when a submitted or approved team has no
// uploaded music asset.
func ruleTeamsMissingMusic(snap *model.Snapshot) []model.Task {
	var ids []string
	for _, tm := range snap.Teams {
		if tm.Status != model.TeamStatusSubmitted && tm.Status != model.TeamStatusApproved {
			continue
		}
		if tm.MusicFileURL == "" {
			ids = append(ids, tm.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindUrgent,
		Category:    model.CategoryTeam,
		Title:       "Teams missing music",
		Description: fmt.Sprintf("%d team(s) have no music file uploaded", len(ids)),
		Count:       len(ids),
		Urgency:     model.UrgencyHigh,
		Action:      "Contact teams",
		Icon:        "music",
		Color:       "#FF6B6B",
		CreatedAt:   snap.Now,
		RelatedData: ids,
	}}
}

// rulePendingApprovals fires when teams are waiting in submitted status.
func rulePendingApprovals(snap *model.Snapshot) []model.Task {
	var ids []string
	for _, tm := range snap.Teams {
		if tm.Status == model.TeamStatusSubmitted {
			ids = append(ids, tm.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindUrgent,
		Category:    model.CategoryApproval,
		Title:       "Teams pending approval",
		Description: fmt.Sprintf("%d team submission(s) are waiting for review", len(ids)),
		Count:       len(ids),
		Urgency:     model.UrgencyMedium,
		Action:      "Review submissions",
		Icon:        "inbox",
		Color:       "#FFD93D",
		CreatedAt:   snap.Now,
		RelatedData: ids,
	}}
}

// ruleDraftShifts reminds organizers about shifts still in draft.
func ruleDraftShifts(snap *model.Snapshot) []model.Task {
	var matches []model.Shift
	for _, sh := range snap.Shifts {
		if sh.Status == model.ShiftStatusDraft {
			matches = append(matches, sh)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindReminder,
		Category:    model.CategoryShift,
		Title:       "Unpublished shifts",
		Description: fmt.Sprintf("%d shift(s) are still in draft", len(matches)),
		Count:       len(matches),
		Urgency:     model.UrgencyLow,
		Action:      "Publish shifts",
		Icon:        "edit",
		Color:       "#868E96",
		CreatedAt:   snap.Now,
		RelatedData: shiftIDs(matches),
	}}
}

// ruleOverallFillRate fires when the aggregate fill rate across live
// shifts drops below the warning tier; below the critical tier the task
// escalates to high urgency.
func ruleOverallFillRate(snap *model.Snapshot) []model.Task {
	live := liveShifts(snap)
	var assigned, needed int
	for _, sh := range live {
		assigned += sh.CurrentVolunteers
		needed += sh.MaxVolunteers
	}
	if needed == 0 {
		return nil
	}
	rate := float64(assigned) / float64(needed)
	if rate >= FillRateWarn {
		return nil
	}

	urgency := model.UrgencyMedium
	if rate < FillRateCritical {
		urgency = model.UrgencyHigh
	}
	return []model.Task{{
		Kind:        model.KindUrgent,
		Category:    model.CategoryVolunteer,
		Title:       "Low overall fill rate",
		Description: fmt.Sprintf("Only %d of %d volunteer spots are filled (%d%%)", assigned, needed, int(rate*100)),
		Count:       len(live),
		Urgency:     urgency,
		Action:      "Recruit volunteers",
		Icon:        "chart",
		Color:       "#FFA94D",
		CreatedAt:   snap.Now,
		RelatedData: shiftIDs(live),
	}}
}
