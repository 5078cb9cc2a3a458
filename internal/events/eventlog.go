// Package events provides the append-only newsroom event log. The engine
// emits an event for every state change; the WebSocket hub polls the log
// to push updates to the front end, and a persister writes it through to
// SQLite for post-mortem review.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType categorizes a newsroom event.
type EventType string

const (
	EventTypeTimeTick         EventType = "TIME_TICK"
	EventTypeMonthSettled     EventType = "MONTH_SETTLED"
	EventTypeArticleCommitted EventType = "ARTICLE_COMMITTED"
	EventTypeArticlePublished EventType = "ARTICLE_PUBLISHED"
	EventTypeArticleEnriched  EventType = "ARTICLE_ENRICHED"
	EventTypeEnrichmentFailed EventType = "ENRICHMENT_FAILED"
	EventTypeStaffHired       EventType = "STAFF_HIRED"
	EventTypeSimReset         EventType = "SIM_RESET"
	EventTypeSpeedChanged     EventType = "SPEED_CHANGED"
	EventTypePauseToggled     EventType = "PAUSE_TOGGLED"
)

// Event is an immutable record of a simulation state change.
type Event struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`  // "SYSTEM_CLOCK", "PLAYER", ...
	TargetID  string      `json:"target_id"` // affected entity, usually an article id
	Payload   interface{} `json:"payload"`
	Tick      int64       `json:"tick"`
}

// Persister defines how an event is durably stored.
type Persister interface {
	Append(event Event) error
}

// Log is the in-memory append-only event log. Writes fan out to the
// optional persister asynchronously so the engine never blocks on disk.
type Log struct {
	mu        sync.RWMutex
	events    []Event
	persister Persister
}

// NewLog creates an event log with an optional persister.
func NewLog(persister Persister) *Log {
	return &Log{
		events:    make([]Event, 0),
		persister: persister,
	}
}

// Append adds an event to the log. Events are immutable once appended.
func (l *Log) Append(event Event) {
	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	if l.persister != nil {
		go func(e Event) {
			_ = l.persister.Append(e)
		}(event)
	}
}

// Len returns the number of events recorded so far.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Since returns a copy of every event at or after the given offset. Pollers
// keep their own offset instead of re-reading the full history.
func (l *Log) Since(offset int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if offset >= len(l.events) {
		return nil
	}
	out := make([]Event, len(l.events)-offset)
	copy(out, l.events[offset:])
	return out
}

// GetByType returns every event of the given type.
func (l *Log) GetByType(t EventType) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []Event
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// NewEventID creates a unique event identifier.
func NewEventID() string {
	return uuid.NewString()
}
