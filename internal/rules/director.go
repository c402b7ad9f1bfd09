package rules

import (
	"fmt"
	"strings"

	"github.com/nhle/event-ops/internal/model"
)

// directorRules is the rule table for the team-director role. The
// completeness and rejection rules emit one task per matching team;
// the status reminders aggregate.
var directorRules = []rule{
	ruleIncompleteTeams,
	ruleDraftTeams,
	ruleRejectedTeams,
	ruleApprovedTeams,
}

// ownTeams returns the teams directed by the current user.
func ownTeams(snap *model.Snapshot) []model.Team {
	var out []model.Team
	for _, tm := range snap.Teams {
		if tm.CreatedBy == snap.UserID || tm.DirectorEmail == snap.UserID {
			out = append(out, tm)
		}
	}
	return out
}

// missingFields lists the submission fields a team still needs. The
// member roster only counts when the team declares a group size.
func missingFields(tm model.Team) []string {
	var missing []string
	if tm.MusicFileURL == "" {
		missing = append(missing, "music file")
	}
	if tm.TeamPhotoURL == "" {
		missing = append(missing, "team photo")
	}
	if tm.SongTitle == "" {
		missing = append(missing, "song title")
	}
	if tm.SongArtist == "" {
		missing = append(missing, "song artist")
	}
	if tm.PerformanceVideoURL == "" {
		missing = append(missing, "performance video")
	}
	if tm.GroupSize > 0 && len(tm.Performers) == 0 {
		missing = append(missing, "member roster")
	}
	return missing
}

// ruleIncompleteTeams emits one high-urgency task per own team with an
// incomplete submission, naming the missing fields.
func ruleIncompleteTeams(snap *model.Snapshot) []model.Task {
	var out []model.Task
	for _, tm := range ownTeams(snap) {
		missing := missingFields(tm)
		if len(missing) == 0 {
			continue
		}
		out = append(out, model.Task{
			Kind:        model.KindUrgent,
			Category:    model.CategoryTeam,
			Title:       fmt.Sprintf("%s is incomplete", tm.TeamName),
			Description: "Missing: " + strings.Join(missing, ", "),
			Count:       1,
			Urgency:     model.UrgencyHigh,
			Action:      "Complete submission",
			Icon:        "clipboard",
			Color:       "#FF6B6B",
			CreatedAt:   snap.Now,
			RelatedData: []string{tm.ID},
		})
	}
	return out
}

// ruleDraftTeams reminds the director about teams not yet submitted.
func ruleDraftTeams(snap *model.Snapshot) []model.Task {
	var ids []string
	for _, tm := range ownTeams(snap) {
		if tm.Status == model.TeamStatusDraft {
			ids = append(ids, tm.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindReminder,
		Category:    model.CategoryTeam,
		Title:       "Team not submitted",
		Description: fmt.Sprintf("%d team(s) are still in draft", len(ids)),
		Count:       len(ids),
		Urgency:     model.UrgencyMedium,
		Action:      "Submit team",
		Icon:        "edit",
		Color:       "#FFD93D",
		CreatedAt:   snap.Now,
		RelatedData: ids,
	}}
}

// ruleRejectedTeams emits one critical task per rejected team.
func ruleRejectedTeams(snap *model.Snapshot) []model.Task {
	var out []model.Task
	for _, tm := range ownTeams(snap) {
		if tm.Status != model.TeamStatusRejected {
			continue
		}
		out = append(out, model.Task{
			Kind:        model.KindCritical,
			Category:    model.CategoryTeam,
			Title:       fmt.Sprintf("%s was rejected", tm.TeamName),
			Description: "Your team submission was rejected; review and resubmit",
			Count:       1,
			Urgency:     model.UrgencyHigh,
			Action:      "Review submission",
			Icon:        "x-circle",
			Color:       "#FF6B6B",
			CreatedAt:   snap.Now,
			RelatedData: []string{tm.ID},
		})
	}
	return out
}

// ruleApprovedTeams is the informational note that a team was approved.
func ruleApprovedTeams(snap *model.Snapshot) []model.Task {
	var ids []string
	for _, tm := range ownTeams(snap) {
		if tm.Status == model.TeamStatusApproved {
			ids = append(ids, tm.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return []model.Task{{
		Kind:        model.KindReminder,
		Category:    model.CategoryTeam,
		Title:       "Team approved",
		Description: fmt.Sprintf("%d of your team(s) have been approved", len(ids)),
		Count:       len(ids),
		Urgency:     model.UrgencyLow,
		Action:      "View team",
		Icon:        "check",
		Color:       "#6BCB77",
		CreatedAt:   snap.Now,
		RelatedData: ids,
	}}
}
