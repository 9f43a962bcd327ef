package db

import "database/sql"

func init() {
	RegisterMigration(Migration{
		Version:     1,
		Description: "initial schema",
		Up: func(db *sql.DB) error {
			_, err := db.Exec(`
				CREATE TABLE oauth_tokens (
					provider TEXT PRIMARY KEY,
					token_json TEXT NOT NULL,
					updated_at INTEGER NOT NULL
				);

				CREATE TABLE rss_entries (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					title TEXT NOT NULL,
					description TEXT NOT NULL,
					links TEXT NOT NULL,
					pub_date TEXT,
					notified INTEGER NOT NULL DEFAULT 0,
					created_at INTEGER NOT NULL,
					UNIQUE (title, description)
				);

				CREATE TABLE sync_runs (
					id TEXT PRIMARY KEY,
					playlist TEXT NOT NULL,
					added INTEGER NOT NULL,
					skipped INTEGER NOT NULL,
					not_found INTEGER NOT NULL,
					failed INTEGER NOT NULL,
					started_at INTEGER NOT NULL,
					finished_at INTEGER NOT NULL
				);
			`)
			return err
		},
	})
}
