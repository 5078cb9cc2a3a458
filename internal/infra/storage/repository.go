// Package storage provides the persistence layer for the newsroom server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"context"
	"time"
)

// DefaultGameID names the single save slot. The schema keys everything by
// game id so multiple slots stay possible without a migration.
const DefaultGameID = "default"

// NewsEvent mirrors the domain event structure for persistence.
// The domain packages do NOT import this; adapters in main translate.
type NewsEvent struct {
	ID        string                 `json:"id" db:"id"`
	GameID    string                 `json:"game_id" db:"game_id"`
	Timestamp time.Time              `json:"timestamp" db:"timestamp"`
	EventType string                 `json:"event_type" db:"event_type"`
	ActorID   string                 `json:"actor_id" db:"actor_id"`
	TargetID  string                 `json:"target_id" db:"target_id"`
	Payload   map[string]interface{} `json:"payload" db:"payload"`
	Tick      int64                  `json:"tick" db:"tick"`
}

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	// Append adds a new event to the immutable ledger.
	Append(ctx context.Context, event NewsEvent) error

	// GetByGameID retrieves all events for a game, oldest first.
	GetByGameID(ctx context.Context, gameID string) ([]NewsEvent, error)

	// GetByEventType retrieves all events of a specific type.
	GetByEventType(ctx context.Context, gameID string, eventType string) ([]NewsEvent, error)

	// GetRecent retrieves the latest n events, newest first.
	GetRecent(ctx context.Context, gameID string, n int) ([]NewsEvent, error)

	// Clear removes every event for a game. Used by reset.
	Clear(ctx context.Context, gameID string) error
}

// SaveState is the flat keyed aggregate row of a saved game.
type SaveState struct {
	GameID          string    `json:"game_id" db:"game_id"`
	Cash            float64   `json:"cash" db:"cash"`
	Tick            int64     `json:"tick" db:"tick"`
	Subscribers     int       `json:"subscribers" db:"subscribers"`
	PublicationName string    `json:"publication_name" db:"publication_name"`
	LastUpdated     time.Time `json:"last_updated" db:"last_updated"`
}

// StaffRecord is one roster row. Position preserves hire order.
type StaffRecord struct {
	StaffID  string `json:"staff_id" db:"staff_id"`
	GameID   string `json:"game_id" db:"game_id"`
	Name     string `json:"name" db:"name"`
	Position int    `json:"position" db:"position"`
}

// ArticleRecord is one persisted article. Qualities and reception are
// stored as JSON blobs; they are opaque to SQL queries.
type ArticleRecord struct {
	ArticleID     string `json:"article_id" db:"article_id"`
	GameID        string `json:"game_id" db:"game_id"`
	Topic         string `json:"topic" db:"topic"`
	Category      string `json:"category" db:"category"`
	Type          string `json:"type" db:"type"`
	QualitiesJSON string `json:"qualities_json" db:"qualities_json"`
	Status        string `json:"status" db:"status"`
	PublishTick   int64  `json:"publish_tick" db:"publish_tick"`
	ReceptionJSON string `json:"reception_json" db:"reception_json"`
	Enrichment    string `json:"enrichment" db:"enrichment"`
	Dek           string `json:"dek" db:"dek"`
	Body          string `json:"body" db:"body"`
}

// SaveGame bundles everything needed to restore a simulation byte for byte.
type SaveGame struct {
	State    SaveState
	Staff    []StaffRecord
	Articles []ArticleRecord
}

// SnapshotRepository defines the interface for whole-game saves.
type SnapshotRepository interface {
	// Save persists the full game state atomically, replacing any
	// previous save for the same game id.
	Save(ctx context.Context, game SaveGame) error

	// Load retrieves a saved game. Returns nil when no save exists.
	Load(ctx context.Context, gameID string) (*SaveGame, error)

	// Clear removes the saved game. Used by reset.
	Clear(ctx context.Context, gameID string) error
}
