package cache

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	event_id      TEXT PRIMARY KEY,
	live_event_id TEXT NOT NULL DEFAULT '',
	fetched_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS shifts (
	id                 TEXT PRIMARY KEY,
	event_id           TEXT NOT NULL,
	title              TEXT NOT NULL DEFAULT '',
	status             TEXT NOT NULL,
	shift_date         TEXT NOT NULL,
	start_time         INTEGER NOT NULL,
	end_time           INTEGER NOT NULL,
	max_volunteers     INTEGER NOT NULL DEFAULT 0,
	current_volunteers INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_shifts_event ON shifts(event_id);

CREATE TABLE IF NOT EXISTS signups (
	id           TEXT PRIMARY KEY,
	event_id     TEXT NOT NULL,
	shift_id     TEXT NOT NULL,
	volunteer_id TEXT NOT NULL,
	status       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signups_event ON signups(event_id);

CREATE TABLE IF NOT EXISTS teams (
	id                    TEXT PRIMARY KEY,
	event_id              TEXT NOT NULL,
	team_name             TEXT NOT NULL DEFAULT '',
	status                TEXT NOT NULL,
	created_by            TEXT NOT NULL DEFAULT '',
	director_email        TEXT NOT NULL DEFAULT '',
	music_file_url        TEXT NOT NULL DEFAULT '',
	team_photo_url        TEXT NOT NULL DEFAULT '',
	song_title            TEXT NOT NULL DEFAULT '',
	song_artist           TEXT NOT NULL DEFAULT '',
	performance_video_url TEXT NOT NULL DEFAULT '',
	group_size            INTEGER NOT NULL DEFAULT 0,
	performers            TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_teams_event ON teams(event_id);

CREATE TABLE IF NOT EXISTS events (
	id                       TEXT PRIMARY KEY,
	name                     TEXT NOT NULL DEFAULT '',
	status                   TEXT NOT NULL,
	required_volunteer_hours REAL NOT NULL DEFAULT 0
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
