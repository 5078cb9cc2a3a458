package main

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/events"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/infra/storage"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/metrics"
)

func TestPersisterAdapterWritesEventAndMetrics(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.InitSQLite(dbPath)
	if err != nil {
		t.Fatalf("Failed to init database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	adapter := &SQLitePersisterAdapter{repo: storage.NewSQLiteEventRepository(db)}

	writtenBefore := atomic.LoadInt64(&metrics.Get().EventsWritten)
	errorsBefore := atomic.LoadInt64(&metrics.Get().EventWriteErrors)

	event := events.Event{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeArticleCommitted,
		ActorID:   "PLAYER",
		TargetID:  "article-1",
		Payload:   map[string]interface{}{"topic": "Cheese Futures"},
		Tick:      42,
	}
	if err := adapter.Append(event); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	stored, err := adapter.repo.GetByGameID(context.Background(), storage.DefaultGameID)
	if err != nil {
		t.Fatalf("GetByGameID failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored event, got %d", len(stored))
	}
	if stored[0].ID != event.ID || stored[0].EventType != string(events.EventTypeArticleCommitted) {
		t.Errorf("Stored event does not match: %+v", stored[0])
	}
	if stored[0].Tick != 42 {
		t.Errorf("Expected tick 42, got %d", stored[0].Tick)
	}

	if got := atomic.LoadInt64(&metrics.Get().EventsWritten); got != writtenBefore+1 {
		t.Errorf("Expected events-written counter to advance by 1, got %d -> %d", writtenBefore, got)
	}
	if got := atomic.LoadInt64(&metrics.Get().EventWriteErrors); got != errorsBefore {
		t.Errorf("Expected no write errors, got %d -> %d", errorsBefore, got)
	}
}
