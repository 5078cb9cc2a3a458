package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite initializes the local SQLite database and creates the schemas
// for persisting the save game, roster, articles and the event ledger.
func InitSQLite(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS save_state (
			game_id TEXT PRIMARY KEY,
			cash REAL NOT NULL,
			tick INTEGER NOT NULL DEFAULT 0,
			subscribers INTEGER NOT NULL DEFAULT 0,
			publication_name TEXT NOT NULL DEFAULT '',
			last_updated DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS staff (
			staff_id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			FOREIGN KEY (game_id) REFERENCES save_state(game_id)
		);`,
		`CREATE TABLE IF NOT EXISTS articles (
			article_id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			topic TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			qualities_json TEXT NOT NULL,
			status TEXT NOT NULL,
			publish_tick INTEGER NOT NULL,
			reception_json TEXT NOT NULL,
			enrichment TEXT NOT NULL DEFAULT 'none',
			dek TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (game_id) REFERENCES save_state(game_id)
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			event_type TEXT NOT NULL,
			actor_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			tick INTEGER NOT NULL,
			FOREIGN KEY (game_id) REFERENCES save_state(game_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_game_id ON events(game_id);`,
		`CREATE INDEX IF NOT EXISTS idx_events_event_type ON events(event_type);`,
		`CREATE INDEX IF NOT EXISTS idx_articles_game_id ON articles(game_id);`,
		`CREATE INDEX IF NOT EXISTS idx_staff_game_id ON staff(game_id);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
