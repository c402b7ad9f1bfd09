// Package cache keeps the last successfully fetched domain snapshot in
// a local SQLite database, so a regeneration pass can fall back to
// stale-but-present records when the network fetch fails. Derived tasks
// are never persisted here.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/event-ops/internal/model"
)

// ErrNoSnapshot is returned by LoadSnapshot when no snapshot has been
// cached for the event yet.
var ErrNoSnapshot = errors.New("no cached snapshot for event")

// Cache implements last-good snapshot storage over a local SQLite file.
type Cache struct {
	db *sqlx.DB
}

// New opens (or creates) a SQLite database at dbPath, enables WAL mode,
// and runs any pending schema migrations.
func New(dbPath string) (*Cache, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	c := &Cache{db: db}
	if err := c.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (c *Cache) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := c.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = c.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := c.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveSnapshot replaces the cached records for the event with the
// contents of snap, in one transaction.
func (c *Cache) SaveSnapshot(ctx context.Context, eventID string, snap *model.Snapshot) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"shifts", "signups", "teams"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE event_id = ?", table), eventID); err != nil {
			return fmt.Errorf("clearing cached %s: %w", table, err)
		}
	}

	for _, sh := range snap.Shifts {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO shifts (
				id, event_id, title, status, shift_date,
				start_time, end_time, max_volunteers, current_volunteers
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sh.ID, eventID, sh.Title, sh.Status,
			sh.ShiftDate.Format("2006-01-02"),
			int(sh.StartTime), int(sh.EndTime),
			sh.MaxVolunteers, sh.CurrentVolunteers,
		)
		if err != nil {
			return fmt.Errorf("caching shift %s: %w", sh.ID, err)
		}
	}

	for _, su := range snap.Signups {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO signups (id, event_id, shift_id, volunteer_id, status)
			VALUES (?, ?, ?, ?, ?)`,
			su.ID, eventID, su.ShiftID, su.VolunteerID, su.Status,
		)
		if err != nil {
			return fmt.Errorf("caching signup %s: %w", su.ID, err)
		}
	}

	for _, tm := range snap.Teams {
		performers, err := json.Marshal(tm.Performers)
		if err != nil {
			return fmt.Errorf("marshaling performers for team %s: %w", tm.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO teams (
				id, event_id, team_name, status, created_by, director_email,
				music_file_url, team_photo_url, song_title, song_artist,
				performance_video_url, group_size, performers
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tm.ID, eventID, tm.TeamName, tm.Status, tm.CreatedBy, tm.DirectorEmail,
			tm.MusicFileURL, tm.TeamPhotoURL, tm.SongTitle, tm.SongArtist,
			tm.PerformanceVideoURL, tm.GroupSize, string(performers),
		)
		if err != nil {
			return fmt.Errorf("caching team %s: %w", tm.ID, err)
		}
	}

	liveEventID := ""
	if snap.LiveEvent != nil {
		liveEventID = snap.LiveEvent.ID
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO events (id, name, status, required_volunteer_hours)
			VALUES (?, ?, ?, ?)`,
			snap.LiveEvent.ID, snap.LiveEvent.Name, snap.LiveEvent.Status,
			snap.LiveEvent.RequiredVolunteerHours,
		)
		if err != nil {
			return fmt.Errorf("caching live event: %w", err)
		}
	}

	// The live event id is stamped on the snapshot row so a load for one
	// event can never pick up a live event cached for another.
	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots (event_id, live_event_id, fetched_at)
		VALUES (?, ?, ?)`,
		eventID, liveEventID, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("recording snapshot time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads back the cached records for the event. It returns
// ErrNoSnapshot when the event was never cached.
func (c *Cache) LoadSnapshot(ctx context.Context, eventID, userID string) (*model.Snapshot, error) {
	var snapRow struct {
		LiveEventID string    `db:"live_event_id"`
		FetchedAt   time.Time `db:"fetched_at"`
	}
	err := c.db.GetContext(ctx, &snapRow,
		"SELECT live_event_id, fetched_at FROM snapshots WHERE event_id = ?", eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot record: %w", err)
	}

	snap := &model.Snapshot{
		UserID: userID,
		Now:    time.Now(),
	}

	type shiftRow struct {
		ID                string `db:"id"`
		EventID           string `db:"event_id"`
		Title             string `db:"title"`
		Status            string `db:"status"`
		ShiftDate         string `db:"shift_date"`
		StartTime         int    `db:"start_time"`
		EndTime           int    `db:"end_time"`
		MaxVolunteers     int    `db:"max_volunteers"`
		CurrentVolunteers int    `db:"current_volunteers"`
	}
	var shiftRows []shiftRow
	if err := c.db.SelectContext(ctx, &shiftRows,
		"SELECT * FROM shifts WHERE event_id = ? ORDER BY shift_date, start_time", eventID); err != nil {
		return nil, fmt.Errorf("loading cached shifts: %w", err)
	}
	for _, r := range shiftRows {
		date, err := time.Parse("2006-01-02", r.ShiftDate)
		if err != nil {
			continue
		}
		snap.Shifts = append(snap.Shifts, model.Shift{
			ID:                r.ID,
			EventID:           r.EventID,
			Title:             r.Title,
			Status:            r.Status,
			ShiftDate:         date,
			StartTime:         model.TimeOfDay(r.StartTime),
			EndTime:           model.TimeOfDay(r.EndTime),
			MaxVolunteers:     r.MaxVolunteers,
			CurrentVolunteers: r.CurrentVolunteers,
		})
	}

	type signupRow struct {
		ID          string `db:"id"`
		EventID     string `db:"event_id"`
		ShiftID     string `db:"shift_id"`
		VolunteerID string `db:"volunteer_id"`
		Status      string `db:"status"`
	}
	var signupRows []signupRow
	if err := c.db.SelectContext(ctx, &signupRows,
		"SELECT * FROM signups WHERE event_id = ?", eventID); err != nil {
		return nil, fmt.Errorf("loading cached signups: %w", err)
	}
	for _, r := range signupRows {
		snap.Signups = append(snap.Signups, model.Signup{
			ID:          r.ID,
			ShiftID:     r.ShiftID,
			VolunteerID: r.VolunteerID,
			Status:      r.Status,
		})
	}

	type teamRow struct {
		ID                  string `db:"id"`
		EventID             string `db:"event_id"`
		TeamName            string `db:"team_name"`
		Status              string `db:"status"`
		CreatedBy           string `db:"created_by"`
		DirectorEmail       string `db:"director_email"`
		MusicFileURL        string `db:"music_file_url"`
		TeamPhotoURL        string `db:"team_photo_url"`
		SongTitle           string `db:"song_title"`
		SongArtist          string `db:"song_artist"`
		PerformanceVideoURL string `db:"performance_video_url"`
		GroupSize           int    `db:"group_size"`
		Performers          string `db:"performers"`
	}
	var teamRows []teamRow
	if err := c.db.SelectContext(ctx, &teamRows,
		"SELECT * FROM teams WHERE event_id = ?", eventID); err != nil {
		return nil, fmt.Errorf("loading cached teams: %w", err)
	}
	for _, r := range teamRows {
		var performers []string
		_ = json.Unmarshal([]byte(r.Performers), &performers)
		snap.Teams = append(snap.Teams, model.Team{
			ID:                  r.ID,
			EventID:             r.EventID,
			TeamName:            r.TeamName,
			Status:              r.Status,
			CreatedBy:           r.CreatedBy,
			DirectorEmail:       r.DirectorEmail,
			MusicFileURL:        r.MusicFileURL,
			TeamPhotoURL:        r.TeamPhotoURL,
			SongTitle:           r.SongTitle,
			SongArtist:          r.SongArtist,
			PerformanceVideoURL: r.PerformanceVideoURL,
			GroupSize:           r.GroupSize,
			Performers:          performers,
		})
	}

	if snapRow.LiveEventID != "" {
		type eventRow struct {
			ID                     string  `db:"id"`
			Name                   string  `db:"name"`
			Status                 string  `db:"status"`
			RequiredVolunteerHours float64 `db:"required_volunteer_hours"`
		}
		var ev eventRow
		err = c.db.GetContext(ctx, &ev,
			"SELECT * FROM events WHERE id = ?", snapRow.LiveEventID)
		if err == nil {
			snap.LiveEvent = &model.Event{
				ID:                     ev.ID,
				Name:                   ev.Name,
				Status:                 ev.Status,
				RequiredVolunteerHours: ev.RequiredVolunteerHours,
			}
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("loading cached live event: %w", err)
		}
	}

	return snap, nil
}
