// ABOUTME: SQL schema definition and initialization.
// ABOUTME: Defines tables for habits, habit_entries, cycles, and the single-row profile.
package storage

// initSchema creates or updates the database schema.
// Dates and timestamps are TEXT so the same DDL runs on SQLite and Postgres.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		target_frequency INTEGER NOT NULL CHECK (target_frequency >= 1),
		category TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS habit_entries (
		id TEXT PRIMARY KEY,
		habit_id TEXT NOT NULL,
		completed_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS cycles (
		id TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date TEXT,
		cycle_length INTEGER,
		period_length INTEGER,
		symptoms TEXT,
		mood TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		full_name TEXT NOT NULL,
		email TEXT,
		date_of_birth TEXT,
		gender TEXT,
		photo_url TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_habit_entries_habit_date ON habit_entries(habit_id, completed_date);
	CREATE INDEX IF NOT EXISTS idx_cycles_start ON cycles(start_date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
