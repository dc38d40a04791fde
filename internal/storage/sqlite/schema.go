package sqlite

// initSchema creates the database schema if it doesn't exist.
func (db *DB) initSchema() error {
	schema := `
	-- Alert rules as the list view shows them
	CREATE TABLE IF NOT EXISTS alert_rules (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		dashboard_uri TEXT NOT NULL,
		panel_id INTEGER NOT NULL,
		state TEXT NOT NULL DEFAULT 'unknown',
		new_state_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		info TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_alert_rules_state ON alert_rules(state);
	CREATE INDEX IF NOT EXISTS idx_alert_rules_position ON alert_rules(position, name);

	-- State transitions caused by pause/resume and imports
	CREATE TABLE IF NOT EXISTS alert_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rule_id INTEGER NOT NULL,
		prev_state TEXT NOT NULL,
		new_state TEXT NOT NULL,
		reason TEXT NOT NULL,
		occurred_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_alert_events_rule ON alert_events(rule_id, occurred_at DESC);

	-- Persisted query state of the views (e.g., the rule list filter)
	CREATE TABLE IF NOT EXISTS view_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}
