// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for entries, metric definitions, and preferences.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		values_json TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS metric_definitions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		range_min REAL NOT NULL,
		range_max REAL NOT NULL,
		unit TEXT NOT NULL,
		fact TEXT,
		citation TEXT,
		step REAL,
		category TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		include_in_chart INTEGER NOT NULL DEFAULT 0,
		is_calculated INTEGER NOT NULL DEFAULT 0,
		formula TEXT,
		is_time_based INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_metric_definitions_position ON metric_definitions(position);
	`

	_, err := d.db.Exec(schema)
	return err
}
