// ABOUTME: SQL schema definition and initialization for both dialects.
// ABOUTME: Defines training_sessions, shot_logs, pickup_games, and official_games.
package storage

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS training_sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		notes TEXT,
		difficulty INTEGER NOT NULL CHECK (difficulty BETWEEN 1 AND 5),
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes >= 0),
		mood TEXT NOT NULL,
		video_url TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shot_logs (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		shot_type TEXT NOT NULL,
		made INTEGER NOT NULL CHECK (made >= 0),
		missed INTEGER NOT NULL CHECK (missed >= 0),
		created_at TEXT NOT NULL,
		UNIQUE (session_id, shot_type),
		FOREIGN KEY (session_id) REFERENCES training_sessions(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS pickup_games (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		location TEXT,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		players_notes TEXT,
		points INTEGER NOT NULL DEFAULT 0,
		assists INTEGER NOT NULL DEFAULT 0,
		rebounds INTEGER NOT NULL DEFAULT 0,
		steals INTEGER NOT NULL DEFAULT 0,
		blocks INTEGER NOT NULL DEFAULT 0,
		result TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS official_games (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT,
		opponent TEXT NOT NULL CHECK (opponent <> ''),
		location TEXT,
		status TEXT NOT NULL,
		team_score INTEGER,
		opponent_score INTEGER,
		points INTEGER NOT NULL DEFAULT 0,
		assists INTEGER NOT NULL DEFAULT 0,
		rebounds INTEGER NOT NULL DEFAULT 0,
		steals INTEGER NOT NULL DEFAULT 0,
		blocks INTEGER NOT NULL DEFAULT 0,
		minutes_played INTEGER NOT NULL DEFAULT 0,
		fouls INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON training_sessions(date DESC);
	CREATE INDEX IF NOT EXISTS idx_shot_logs_session ON shot_logs(session_id);
	CREATE INDEX IF NOT EXISTS idx_pickup_date ON pickup_games(date DESC);
	CREATE INDEX IF NOT EXISTS idx_official_date ON official_games(date DESC);
	CREATE INDEX IF NOT EXISTS idx_official_status ON official_games(status);
	`

// Postgres runs one statement per Exec through lib/pq's simple protocol,
// so the schema is a list.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS training_sessions (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		notes TEXT,
		difficulty INTEGER NOT NULL CHECK (difficulty BETWEEN 1 AND 5),
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes >= 0),
		mood TEXT NOT NULL,
		video_url TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shot_logs (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES training_sessions(id) ON DELETE CASCADE,
		shot_type TEXT NOT NULL,
		made INTEGER NOT NULL CHECK (made >= 0),
		missed INTEGER NOT NULL CHECK (missed >= 0),
		created_at TEXT NOT NULL,
		UNIQUE (session_id, shot_type)
	)`,
	`CREATE TABLE IF NOT EXISTS pickup_games (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		location TEXT,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		players_notes TEXT,
		points INTEGER NOT NULL DEFAULT 0,
		assists INTEGER NOT NULL DEFAULT 0,
		rebounds INTEGER NOT NULL DEFAULT 0,
		steals INTEGER NOT NULL DEFAULT 0,
		blocks INTEGER NOT NULL DEFAULT 0,
		result TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS official_games (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		time TEXT,
		opponent TEXT NOT NULL CHECK (opponent <> ''),
		location TEXT,
		status TEXT NOT NULL,
		team_score INTEGER,
		opponent_score INTEGER,
		points INTEGER NOT NULL DEFAULT 0,
		assists INTEGER NOT NULL DEFAULT 0,
		rebounds INTEGER NOT NULL DEFAULT 0,
		steals INTEGER NOT NULL DEFAULT 0,
		blocks INTEGER NOT NULL DEFAULT 0,
		minutes_played INTEGER NOT NULL DEFAULT 0,
		fouls INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_date ON training_sessions(date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_shot_logs_session ON shot_logs(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pickup_date ON pickup_games(date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_official_date ON official_games(date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_official_status ON official_games(status)`,
}

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	if d.dialect != Postgres {
		_, err := d.db.Exec(sqliteSchema)
		return err
	}
	for _, stmt := range postgresSchema {
		if _, err := d.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
