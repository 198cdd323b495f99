package store

import "entgo.io/ent/dialect"

const (
	tablePlayers  = "players"
	tableSessions = "game_sessions"
	tableTrophies = "trophies"
	tablePrefs    = "preferences"
)

// schema returns the CREATE statements for d. Columns follow the hosted
// schema the app has always used; only the timestamp type differs.
func schema(d string) []string {
	ts := "DATETIME"
	if d == dialect.Postgres {
		ts = "TIMESTAMPTZ"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at ` + ts + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS game_sessions (
			id TEXT PRIMARY KEY,
			player_id TEXT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			game_type TEXT NOT NULL CHECK (game_type IN ('math', 'numbers', 'words')),
			difficulty TEXT NOT NULL DEFAULT '',
			mode TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			time_seconds INTEGER NOT NULL,
			created_at ` + ts + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS game_sessions_player_created
			ON game_sessions (player_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS trophies (
			id TEXT PRIMARY KEY,
			player_id TEXT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			game_type TEXT NOT NULL,
			trophy_type TEXT NOT NULL CHECK (trophy_type IN ('bronze', 'silver', 'gold')),
			earned_at ` + ts + ` NOT NULL,
			UNIQUE (player_id, game_type, trophy_type)
		)`,
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
}
