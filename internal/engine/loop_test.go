package engine

import (
	"testing"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/events"
)

func TestLoopSpeedClamp(t *testing.T) {
	store, eventLog := newTestStore(t)
	loop := NewLoop(store, eventLog, store.logger, time.Second)

	if loop.Speed() != 1 {
		t.Errorf("Expected default speed 1, got %d", loop.Speed())
	}

	loop.SetSpeed(5)
	if loop.Speed() != 5 {
		t.Errorf("Expected speed 5, got %d", loop.Speed())
	}

	loop.SetSpeed(0)
	if loop.Speed() != 1 {
		t.Errorf("Expected non-positive speed clamped to 1, got %d", loop.Speed())
	}

	if n := len(eventLog.GetByType(events.EventTypeSpeedChanged)); n != 2 {
		t.Errorf("Expected 2 speed events, got %d", n)
	}
}

func TestLoopPauseToggle(t *testing.T) {
	store, eventLog := newTestStore(t)
	loop := NewLoop(store, eventLog, store.logger, time.Second)

	if loop.Paused() {
		t.Error("Expected the loop to start unpaused")
	}

	loop.SetPaused(true)
	if !loop.Paused() {
		t.Error("Expected the loop paused")
	}

	loop.SetPaused(false)
	if loop.Paused() {
		t.Error("Expected the loop resumed")
	}

	if n := len(eventLog.GetByType(events.EventTypePauseToggled)); n != 2 {
		t.Errorf("Expected 2 pause events, got %d", n)
	}
}
