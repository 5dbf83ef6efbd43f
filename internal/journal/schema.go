package journal

import (
	"database/sql"
	"fmt"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS capture_sessions (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			slot TEXT NOT NULL,
			result TEXT NOT NULL,
			combo TEXT NOT NULL DEFAULT '',
			previous TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS binding_changes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at INTEGER NOT NULL,
			kind TEXT NOT NULL,
			action TEXT NOT NULL DEFAULT '',
			slot TEXT NOT NULL DEFAULT '',
			previous TEXT NOT NULL DEFAULT '',
			combo TEXT NOT NULL DEFAULT '',
			cause TEXT NOT NULL DEFAULT '',
			session_id TEXT REFERENCES capture_sessions(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_changes_at ON binding_changes(at);
		CREATE INDEX IF NOT EXISTS idx_changes_action ON binding_changes(action);
		CREATE INDEX IF NOT EXISTS idx_changes_session ON binding_changes(session_id);
	`)
	if err != nil {
		return fmt.Errorf("creating journal schema: %w", err)
	}

	var version int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("reading journal schema version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("journal schema version %d is newer than supported %d", version, currentSchemaVersion)
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, currentSchemaVersion); err != nil {
			return fmt.Errorf("recording journal schema version: %w", err)
		}
	}
	return nil
}
