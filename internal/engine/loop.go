package engine

import (
	"context"
	"sync"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/events"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/logger"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/metrics"
)

// DefaultTickInterval is the wall-clock cadence of the simulation:
// one real second per baseline tick.
const DefaultTickInterval = 1 * time.Second

// Loop drives the Store on a wall-clock timer. The player controls a
// speed multiplier and a pause flag; advances are serialized through the
// Store's own mutex so overlapping timer fires cannot interleave.
type Loop struct {
	store    *Store
	eventLog *events.Log
	logger   *logger.Logger
	interval time.Duration

	mu       sync.Mutex
	speed    int64
	paused   bool
	stopChan chan struct{}
}

// NewLoop creates the game loop at speed 1, unpaused.
func NewLoop(store *Store, eventLog *events.Log, log *logger.Logger, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Loop{
		store:    store,
		eventLog: eventLog,
		logger:   log,
		interval: interval,
		speed:    1,
		stopChan: make(chan struct{}),
	}
}

// Start begins the loop. Call in a goroutine.
func (l *Loop) Start(ctx context.Context) {
	l.logger.Info("Game loop started (interval %s)", l.interval)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Game loop stopped by context.")
			return
		case <-l.stopChan:
			l.logger.Info("Game loop stopped manually.")
			return
		case <-ticker.C:
			l.beat()
		}
	}
}

// Stop gracefully stops the loop.
func (l *Loop) Stop() {
	close(l.stopChan)
}

// beat runs one timer cycle. The timer must survive anything a single
// cycle does, so failures are contained here and logged.
func (l *Loop) beat() {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Advance cycle panicked: %v", r)
		}
	}()

	l.mu.Lock()
	paused := l.paused
	speed := l.speed
	l.mu.Unlock()

	if paused {
		return
	}

	start := time.Now()
	l.store.Advance(speed)
	metrics.Get().RecordAdvance(time.Since(start))
}

// SetSpeed changes the speed multiplier. Values below 1 are clamped to 1;
// use SetPaused to stop time.
func (l *Loop) SetSpeed(speed int64) {
	if speed < 1 {
		speed = 1
	}
	l.mu.Lock()
	l.speed = speed
	l.mu.Unlock()

	l.eventLog.Append(events.Event{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeSpeedChanged,
		ActorID:   "PLAYER",
		Payload:   map[string]int64{"speed": speed},
	})
}

// Speed returns the current speed multiplier.
func (l *Loop) Speed() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.speed
}

// SetPaused gates the timer without stopping it.
func (l *Loop) SetPaused(paused bool) {
	l.mu.Lock()
	l.paused = paused
	l.mu.Unlock()

	l.eventLog.Append(events.Event{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypePauseToggled,
		ActorID:   "PLAYER",
		Payload:   map[string]bool{"paused": paused},
	})
}

// Paused reports whether the loop is currently gated.
func (l *Loop) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}
