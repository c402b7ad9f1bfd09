package model

import (
	"fmt"
	"time"
)

// ShiftStatus values as delivered by the event store.
const (
	ShiftStatusDraft     = "draft"
	ShiftStatusLive      = "live"
	ShiftStatusCompleted = "completed"
	ShiftStatusCancelled = "cancelled"
)

// SignupStatus values as delivered by the event store.
const (
	SignupStatusSignedUp  = "signed_up"
	SignupStatusConfirmed = "confirmed"
	SignupStatusCheckedIn = "checked_in"
	SignupStatusNoShow    = "no_show"
	SignupStatusCancelled = "cancelled"
)

// TeamStatus values as delivered by the event store.
const (
	TeamStatusDraft     = "draft"
	TeamStatusSubmitted = "submitted"
	TeamStatusApproved  = "approved"
	TeamStatusRejected  = "rejected"
)

// TimeOfDay is a clock time within a single day, stored as minutes
// since midnight.
type TimeOfDay int

// ParseTimeOfDay parses a "15:04" formatted clock time.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parsing time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// Hours returns the time of day expressed in fractional hours.
func (t TimeOfDay) Hours() float64 {
	return float64(t) / 60.0
}

// String renders the time of day as "15:04".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Shift is a volunteer time slot within an event.
type Shift struct {
	ID                string    `json:"id" db:"id"`
	EventID           string    `json:"event_id" db:"event_id"`
	Title             string    `json:"title" db:"title"`
	Status            string    `json:"status" db:"status"`
	ShiftDate         time.Time `json:"shift_date" db:"shift_date"`
	StartTime         TimeOfDay `json:"start_time" db:"start_time"`
	EndTime           TimeOfDay `json:"end_time" db:"end_time"`
	MaxVolunteers     int       `json:"max_volunteers" db:"max_volunteers"`
	CurrentVolunteers int       `json:"current_volunteers" db:"current_volunteers"`
}

// FillRatio returns current over maximum volunteers, or 0 when the
// shift has no capacity configured.
func (s Shift) FillRatio() float64 {
	if s.MaxVolunteers <= 0 {
		return 0
	}
	return float64(s.CurrentVolunteers) / float64(s.MaxVolunteers)
}

// Signup links a volunteer to a shift.
type Signup struct {
	ID          string `json:"id" db:"id"`
	ShiftID     string `json:"shift_id" db:"shift_id"`
	VolunteerID string `json:"volunteer_id" db:"volunteer_id"`
	Status      string `json:"status" db:"status"`
}

// Team is a performance-team submission.
type Team struct {
	ID                  string   `json:"id" db:"id"`
	EventID             string   `json:"event_id" db:"event_id"`
	TeamName            string   `json:"team_name" db:"team_name"`
	Status              string   `json:"status" db:"status"`
	CreatedBy           string   `json:"created_by" db:"created_by"`
	DirectorEmail       string   `json:"director_email" db:"director_email"`
	MusicFileURL        string   `json:"music_file_url" db:"music_file_url"`
	TeamPhotoURL        string   `json:"team_photo_url" db:"team_photo_url"`
	SongTitle           string   `json:"song_title" db:"song_title"`
	SongArtist          string   `json:"song_artist" db:"song_artist"`
	PerformanceVideoURL string   `json:"performance_video_url" db:"performance_video_url"`
	GroupSize           int      `json:"group_size" db:"group_size"`
	Performers          []string `json:"performers"`
}

// Event is the containing event record. Only the live event's required
// volunteer hours feed the derivation rules.
type Event struct {
	ID                     string  `json:"id" db:"id"`
	Name                   string  `json:"name" db:"name"`
	Status                 string  `json:"status" db:"status"`
	RequiredVolunteerHours float64 `json:"required_volunteer_hours" db:"required_volunteer_hours"`
}

// Snapshot is a read-only, point-in-time view of the domain records a
// derivation pass works from. The engine never mutates a snapshot.
type Snapshot struct {
	// Shifts holds every shift visible for the event.
	Shifts []Shift

	// Signups holds every signup visible for the event. For volunteer
	// roles this includes the current user's own signups.
	Signups []Signup

	// Teams holds the performance teams visible for the event.
	Teams []Team

	// LiveEvent is the currently live event, if any.
	LiveEvent *Event

	// UserID scopes volunteer- and director-specific rules.
	UserID string

	// Now is the generation timestamp; rules derive date windows from it.
	Now time.Time
}

// ShiftByID returns the shift with the given id, if present.
func (s *Snapshot) ShiftByID(id string) (Shift, bool) {
	for _, sh := range s.Shifts {
		if sh.ID == id {
			return sh, true
		}
	}
	return Shift{}, false
}
