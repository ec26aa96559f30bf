package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "users: people logging experiences",
		SQL: `
CREATE TABLE users (
    user_id    INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    age        INTEGER,
    created_at INTEGER NOT NULL
);

CREATE INDEX idx_users_age ON users(age);
`,
	},
	{
		Version:     2,
		Description: "experiences + emotions: daily logs and their emotion scores",
		SQL: `
CREATE TABLE experiences (
    experience_id INTEGER PRIMARY KEY,
    user_id       INTEGER NOT NULL,
    date          TEXT NOT NULL,
    feedback      TEXT,
    emotion       TEXT,
    created_at    INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE INDEX idx_experiences_user_date ON experiences(user_id, date);

CREATE TABLE emotions (
    experience_id INTEGER PRIMARY KEY,
    joy           REAL NOT NULL DEFAULT 0 CHECK (joy >= 0),
    sadness       REAL NOT NULL DEFAULT 0 CHECK (sadness >= 0),
    anger         REAL NOT NULL DEFAULT 0 CHECK (anger >= 0),
    anxiety       REAL NOT NULL DEFAULT 0 CHECK (anxiety >= 0),
    satisfaction  REAL NOT NULL DEFAULT 0 CHECK (satisfaction >= 0),
    FOREIGN KEY (experience_id) REFERENCES experiences(experience_id) ON DELETE CASCADE
);
`,
	},
	{
		Version:     3,
		Description: "goals + reports: goals and their periodic completion",
		SQL: `
CREATE TABLE goals (
    goal_id    INTEGER PRIMARY KEY,
    user_id    INTEGER NOT NULL,
    title      TEXT NOT NULL,
    start_date TEXT NOT NULL,
    is_saved   INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE INDEX idx_goals_user  ON goals(user_id);
CREATE INDEX idx_goals_saved ON goals(is_saved);

CREATE TABLE reports (
    report_id            INTEGER PRIMARY KEY,
    user_id              INTEGER NOT NULL,
    period_type          TEXT NOT NULL CHECK (period_type IN ('WEEKLY', 'MONTHLY')),
    start_date           TEXT NOT NULL,
    goal_completion_rate REAL NOT NULL CHECK (goal_completion_rate BETWEEN 0 AND 100),
    title                TEXT,
    created_at           INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE INDEX idx_reports_user ON reports(user_id);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
