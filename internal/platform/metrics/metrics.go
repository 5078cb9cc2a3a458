// Package metrics provides observability for the newsroom server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance counters.
type Collector struct {
	// Advance metrics
	AdvanceCount      int64
	AdvanceLatencySum int64 // nanoseconds
	AdvanceLatencyMax int64
	LastAdvanceTime   time.Time

	// Event metrics
	EventsWritten    int64
	EventWriteLatSum int64
	EventWriteLatMax int64
	EventWriteErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// Enrichment metrics
	EnrichRequests   int64
	EnrichFailures   int64
	EnrichLatencySum int64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordAdvance records an advance cycle completion.
func (c *Collector) RecordAdvance(latency time.Duration) {
	atomic.AddInt64(&c.AdvanceCount, 1)
	atomic.AddInt64(&c.AdvanceLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.AdvanceLatencyMax) {
		atomic.StoreInt64(&c.AdvanceLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastAdvanceTime = time.Now()
	c.mu.Unlock()
}

// RecordEventWrite records an event write to the database.
func (c *Collector) RecordEventWrite(latency time.Duration, err error) {
	atomic.AddInt64(&c.EventsWritten, 1)
	atomic.AddInt64(&c.EventWriteLatSum, int64(latency))

	if int64(latency) > atomic.LoadInt64(&c.EventWriteLatMax) {
		atomic.StoreInt64(&c.EventWriteLatMax, int64(latency))
	}

	if err != nil {
		atomic.AddInt64(&c.EventWriteErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// RecordEnrichment records a content generation API call.
func (c *Collector) RecordEnrichment(latency time.Duration, err error) {
	atomic.AddInt64(&c.EnrichRequests, 1)
	atomic.AddInt64(&c.EnrichLatencySum, int64(latency))
	if err != nil {
		atomic.AddInt64(&c.EnrichFailures, 1)
	}
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	advanceCount := atomic.LoadInt64(&c.AdvanceCount)
	eventsWritten := atomic.LoadInt64(&c.EventsWritten)
	enrichRequests := atomic.LoadInt64(&c.EnrichRequests)

	var advanceAvg, eventAvg, enrichAvg float64
	if advanceCount > 0 {
		advanceAvg = float64(atomic.LoadInt64(&c.AdvanceLatencySum)) / float64(advanceCount) / 1e6 // ms
	}
	if eventsWritten > 0 {
		eventAvg = float64(atomic.LoadInt64(&c.EventWriteLatSum)) / float64(eventsWritten) / 1e6
	}
	if enrichRequests > 0 {
		enrichAvg = float64(atomic.LoadInt64(&c.EnrichLatencySum)) / float64(enrichRequests) / 1e9 // seconds
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"advance": map[string]interface{}{
			"count":          advanceCount,
			"avg_latency_ms": advanceAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.AdvanceLatencyMax)) / 1e6,
			"last_advance":   c.LastAdvanceTime.Format(time.RFC3339),
		},

		"events": map[string]interface{}{
			"written":          eventsWritten,
			"avg_write_lat_ms": eventAvg,
			"max_write_lat_ms": float64(atomic.LoadInt64(&c.EventWriteLatMax)) / 1e6,
			"errors":           atomic.LoadInt64(&c.EventWriteErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},

		"enrichment": map[string]interface{}{
			"requests":        enrichRequests,
			"failures":        atomic.LoadInt64(&c.EnrichFailures),
			"avg_latency_sec": enrichAvg,
		},
	}
}

// Handler returns an HTTP handler for the /api/metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus text format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		fmt.Fprintf(w, "# HELP rnn_advance_count Total advance cycles\n")
		fmt.Fprintf(w, "# TYPE rnn_advance_count counter\n")
		fmt.Fprintf(w, "rnn_advance_count %d\n\n", atomic.LoadInt64(&c.AdvanceCount))

		fmt.Fprintf(w, "# HELP rnn_advance_latency_max_ms Maximum advance latency\n")
		fmt.Fprintf(w, "# TYPE rnn_advance_latency_max_ms gauge\n")
		fmt.Fprintf(w, "rnn_advance_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.AdvanceLatencyMax))/1e6)

		fmt.Fprintf(w, "# HELP rnn_events_written Total events written\n")
		fmt.Fprintf(w, "# TYPE rnn_events_written counter\n")
		fmt.Fprintf(w, "rnn_events_written %d\n\n", atomic.LoadInt64(&c.EventsWritten))

		fmt.Fprintf(w, "# HELP rnn_event_write_errors Total event write errors\n")
		fmt.Fprintf(w, "# TYPE rnn_event_write_errors counter\n")
		fmt.Fprintf(w, "rnn_event_write_errors %d\n\n", atomic.LoadInt64(&c.EventWriteErrors))

		fmt.Fprintf(w, "# HELP rnn_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE rnn_ws_connections gauge\n")
		fmt.Fprintf(w, "rnn_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP rnn_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE rnn_ws_messages_total counter\n")
		fmt.Fprintf(w, "rnn_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "rnn_ws_messages_total{direction=\"out\"} %d\n\n", atomic.LoadInt64(&c.WSMessagesOut))

		fmt.Fprintf(w, "# HELP rnn_enrich_requests Total content generation requests\n")
		fmt.Fprintf(w, "# TYPE rnn_enrich_requests counter\n")
		fmt.Fprintf(w, "rnn_enrich_requests %d\n\n", atomic.LoadInt64(&c.EnrichRequests))

		fmt.Fprintf(w, "# HELP rnn_enrich_failures Total content generation failures\n")
		fmt.Fprintf(w, "# TYPE rnn_enrich_failures counter\n")
		fmt.Fprintf(w, "rnn_enrich_failures %d\n", atomic.LoadInt64(&c.EnrichFailures))
	}
}
