package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errNotFound = errors.New("key not found")

// fakeRedis is an in-memory RedisClient for tests.
type fakeRedis struct {
	values      map[string]string
	expirations map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values:      make(map[string]string),
		expirations: make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", errNotFound
	}
	return v, nil
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.values[key] = string(value.([]byte))
	f.expirations[key] = expiration
	return nil
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func TestStateCacheRoundTrip(t *testing.T) {
	fake := newFakeRedis()
	cache := NewStateCache(fake)
	ctx := context.Background()

	state := GameState{
		GameID:      "default",
		Cash:        1234.5,
		Tick:        678,
		Date:        "March 14, Year 2",
		Subscribers: 90,
		StaffCount:  3,
		LastSync:    time.Now().Unix(),
	}

	if err := cache.SetGameState(ctx, state); err != nil {
		t.Fatalf("SetGameState failed: %v", err)
	}

	got, err := cache.GetGameState(ctx, "default")
	if err != nil {
		t.Fatalf("GetGameState failed: %v", err)
	}
	if got.Cash != state.Cash || got.Tick != state.Tick || got.Date != state.Date {
		t.Errorf("State changed through the cache: %+v", got)
	}

	// Entries carry the cache TTL.
	if exp := fake.expirations["rnn:state:default"]; exp != 15*time.Minute {
		t.Errorf("Expected 15m expiration, got %v", exp)
	}
}

func TestStateCacheMiss(t *testing.T) {
	cache := NewStateCache(newFakeRedis())

	got, err := cache.GetGameState(context.Background(), "missing")
	if err == nil {
		t.Errorf("Expected an error for an absent game, got %+v", got)
	}
	if got != nil {
		t.Errorf("Expected nil state on a miss, got %+v", got)
	}
}

func TestStateCacheInvalidate(t *testing.T) {
	fake := newFakeRedis()
	cache := NewStateCache(fake)
	ctx := context.Background()

	if err := cache.SetGameState(ctx, GameState{GameID: "default"}); err != nil {
		t.Fatalf("SetGameState failed: %v", err)
	}
	if err := cache.Invalidate(ctx, "default"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, ok := fake.values["rnn:state:default"]; ok {
		t.Error("Expected the cached state removed")
	}
}
