// Package cache provides Redis-based caching for quick state reads.
// A companion dashboard polls the latest snapshot here instead of hitting
// the game server; SQLite stays the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RedisClient is an interface for Redis operations.
// This allows for easy mocking in tests.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// GameState is the trimmed snapshot view exposed to dashboard readers.
type GameState struct {
	GameID          string  `json:"game_id"`
	Cash            float64 `json:"cash"`
	Tick            int64   `json:"tick"`
	Date            string  `json:"date"`
	Subscribers     int     `json:"subscribers"`
	StaffCount      int     `json:"staff_count"`
	PendingArticles int     `json:"pending_articles"`
	PublishedViews  int     `json:"published_views"`
	LastSync        int64   `json:"last_sync"` // Unix timestamp
}

// StateCache provides fast access to the latest game state snapshot.
type StateCache struct {
	client     RedisClient
	expiration time.Duration
}

// NewStateCache creates a new state cache instance.
func NewStateCache(client RedisClient) *StateCache {
	return &StateCache{
		client:     client,
		expiration: 15 * time.Minute,
	}
}

// SetGameState caches the current state of a game.
func (c *StateCache) SetGameState(ctx context.Context, state GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}
	return c.client.Set(ctx, c.stateKey(state.GameID), data, c.expiration)
}

// GetGameState retrieves the cached state of a game.
func (c *StateCache) GetGameState(ctx context.Context, gameID string) (*GameState, error) {
	raw, err := c.client.Get(ctx, c.stateKey(gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	var state GameState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	return &state, nil
}

// Invalidate removes the cached state for a game. Used by reset.
func (c *StateCache) Invalidate(ctx context.Context, gameID string) error {
	return c.client.Del(ctx, c.stateKey(gameID))
}

func (c *StateCache) stateKey(gameID string) string {
	return fmt.Sprintf("rnn:state:%s", gameID)
}
