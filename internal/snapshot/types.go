package snapshot

import (
	"fmt"
	"time"

	"github.com/nhle/event-ops/internal/model"
)

// shiftDTO is the wire shape of a shift record. Numeric fields that the
// backend may deliver as null are pointers so absence maps to zero.
type shiftDTO struct {
	ID                string `json:"id"`
	EventID           string `json:"event_id"`
	Title             string `json:"title"`
	Status            string `json:"status"`
	ShiftDate         string `json:"shift_date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	MaxVolunteers     *int   `json:"max_volunteers"`
	CurrentVolunteers *int   `json:"current_volunteers"`
}

func (d shiftDTO) toModel() (model.Shift, error) {
	date, err := time.Parse("2006-01-02", d.ShiftDate)
	if err != nil {
		return model.Shift{}, fmt.Errorf("parsing shift_date %q: %w", d.ShiftDate, err)
	}
	start, err := model.ParseTimeOfDay(d.StartTime)
	if err != nil {
		return model.Shift{}, err
	}
	end, err := model.ParseTimeOfDay(d.EndTime)
	if err != nil {
		return model.Shift{}, err
	}

	sh := model.Shift{
		ID:        d.ID,
		EventID:   d.EventID,
		Title:     d.Title,
		Status:    d.Status,
		ShiftDate: date,
		StartTime: start,
		EndTime:   end,
	}
	if d.MaxVolunteers != nil {
		sh.MaxVolunteers = *d.MaxVolunteers
	}
	if d.CurrentVolunteers != nil {
		sh.CurrentVolunteers = *d.CurrentVolunteers
	}
	return sh, nil
}

// signupDTO is the wire shape of a signup record.
type signupDTO struct {
	ID          string `json:"id"`
	ShiftID     string `json:"shift_id"`
	VolunteerID string `json:"volunteer_id"`
	Status      string `json:"status"`
}

func (d signupDTO) toModel() model.Signup {
	return model.Signup{
		ID:          d.ID,
		ShiftID:     d.ShiftID,
		VolunteerID: d.VolunteerID,
		Status:      d.Status,
	}
}

// teamDTO is the wire shape of a performance-team record.
type teamDTO struct {
	ID                  string   `json:"id"`
	EventID             string   `json:"event_id"`
	TeamName            string   `json:"team_name"`
	Status              string   `json:"status"`
	CreatedBy           string   `json:"created_by"`
	DirectorEmail       string   `json:"director_email"`
	MusicFileURL        string   `json:"music_file_url"`
	TeamPhotoURL        string   `json:"team_photo_url"`
	SongTitle           string   `json:"song_title"`
	SongArtist          string   `json:"song_artist"`
	PerformanceVideoURL string   `json:"performance_video_url"`
	GroupSize           *int     `json:"group_size"`
	Performers          []string `json:"performers"`
}

func (d teamDTO) toModel() model.Team {
	tm := model.Team{
		ID:                  d.ID,
		EventID:             d.EventID,
		TeamName:            d.TeamName,
		Status:              d.Status,
		CreatedBy:           d.CreatedBy,
		DirectorEmail:       d.DirectorEmail,
		MusicFileURL:        d.MusicFileURL,
		TeamPhotoURL:        d.TeamPhotoURL,
		SongTitle:           d.SongTitle,
		SongArtist:          d.SongArtist,
		PerformanceVideoURL: d.PerformanceVideoURL,
		Performers:          d.Performers,
	}
	if d.GroupSize != nil {
		tm.GroupSize = *d.GroupSize
	}
	return tm
}

// eventDTO is the wire shape of an event record.
type eventDTO struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Status                 string   `json:"status"`
	RequiredVolunteerHours *float64 `json:"required_volunteer_hours"`
}

func (d eventDTO) toModel() model.Event {
	ev := model.Event{
		ID:     d.ID,
		Name:   d.Name,
		Status: d.Status,
	}
	if d.RequiredVolunteerHours != nil {
		ev.RequiredVolunteerHours = *d.RequiredVolunteerHours
	}
	return ev
}
