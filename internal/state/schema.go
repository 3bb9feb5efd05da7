package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume REAL NOT NULL DEFAULT 1.0,
			amp_level REAL NOT NULL DEFAULT 1.0,
			fit_to_window INTEGER NOT NULL DEFAULT 0,
			sort_order TEXT NOT NULL DEFAULT 'name-asc',
			shuffle INTEGER NOT NULL DEFAULT 0,
			bounds_x INTEGER,
			bounds_y INTEGER,
			bounds_width INTEGER,
			bounds_height INTEGER
		);

		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL DEFAULT -1,
			saved_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS session_files (
			position INTEGER PRIMARY KEY,
			path TEXT NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
