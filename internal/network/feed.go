// Package network - feed.go
// Newsroom feed endpoint - JSON export of the in-memory event history.
//
// The feed is the ticker strip at the bottom of the front end. It reads
// the live event log directly, so it reflects everything since process
// start, independent of what has been persisted.
package network

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/events"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/logger"
)

// FeedHandler serves the live event feed API.
type FeedHandler struct {
	eventLog *events.Log
	logger   *logger.Logger
}

// NewFeedHandler creates a new feed handler.
func NewFeedHandler(el *events.Log, log *logger.Logger) *FeedHandler {
	return &FeedHandler{
		eventLog: el,
		logger:   log,
	}
}

// FeedEvent is a sanitized event for the front end.
type FeedEvent struct {
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	Tick      int64       `json:"tick"`
	Type      string      `json:"type"`
	ActorName string      `json:"actor_name"`
	TargetID  string      `json:"target_id,omitempty"`
	Summary   string      `json:"summary"`
	Impact    string      `json:"impact"`
	Details   interface{} `json:"details,omitempty"`
}

// FeedResponse is the API response for the event feed.
type FeedResponse struct {
	TotalEvents int         `json:"total_events"`
	NextOffset  int         `json:"next_offset"`
	FilteredBy  string      `json:"filtered_by,omitempty"`
	GeneratedAt string      `json:"generated_at"`
	Events      []FeedEvent `json:"events"`
}

// HandleFeed returns the event feed, optionally filtered.
// GET /api/feed?since=N&type=ARTICLE_PUBLISHED&limit=50
func (fh *FeedHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	since := 0
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			fh.jsonError(w, "Invalid since offset", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			fh.jsonError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	eventType := r.URL.Query().Get("type")

	all := fh.eventLog.Since(since)
	nextOffset := since + len(all)

	var feed []FeedEvent
	filterDesc := ""
	for _, e := range all {
		if eventType != "" && string(e.Type) != eventType {
			continue
		}
		if eventType != "" {
			filterDesc = "Type " + eventType
		}
		feed = append(feed, fh.convertToFeedEvent(e))
		if len(feed) >= limit {
			break
		}
	}

	response := FeedResponse{
		TotalEvents: len(feed),
		NextOffset:  nextOffset,
		FilteredBy:  filterDesc,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Events:      feed,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleFeedStats returns aggregate counts for the feed.
// GET /api/feed/stats
func (fh *FeedHandler) HandleFeedStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	all := fh.eventLog.Since(0)

	stats := map[string]int{
		"total_events":       len(all),
		"articles_committed": 0,
		"articles_published": 0,
		"months_settled":     0,
		"staff_hired":        0,
		"enrichment_failed":  0,
	}

	for _, e := range all {
		switch e.Type {
		case events.EventTypeArticleCommitted:
			stats["articles_committed"]++
		case events.EventTypeArticlePublished:
			stats["articles_published"]++
		case events.EventTypeMonthSettled:
			stats["months_settled"]++
		case events.EventTypeStaffHired:
			stats["staff_hired"]++
		case events.EventTypeEnrichmentFailed:
			stats["enrichment_failed"]++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"stats":        stats,
	})
}

// RegisterRoutes sets up the feed API routes.
func (fh *FeedHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/feed", fh.HandleFeed)
	mux.HandleFunc("/api/feed/stats", fh.HandleFeedStats)
}

// convertToFeedEvent transforms an internal event to the public format.
func (fh *FeedHandler) convertToFeedEvent(e events.Event) FeedEvent {
	actorName := e.ActorID
	switch e.ActorID {
	case "SYSTEM_CLOCK":
		actorName = "The Clock"
	case "SYSTEM_CONTENT":
		actorName = "The Wire"
	case "PLAYER":
		actorName = "The Editor"
	}

	return FeedEvent{
		ID:        e.ID,
		Timestamp: e.Timestamp.Format("15:04:05"),
		Tick:      e.Tick,
		Type:      string(e.Type),
		ActorName: actorName,
		TargetID:  e.TargetID,
		Summary:   fh.summarizeEvent(e),
		Impact:    fh.determineImpact(e),
		Details:   e.Payload,
	}
}

// summarizeEvent creates a human-readable summary line.
func (fh *FeedHandler) summarizeEvent(e events.Event) string {
	switch e.Type {
	case events.EventTypeTimeTick:
		return "The newsroom clock ticked on."
	case events.EventTypeMonthSettled:
		return "The books were settled for the month."
	case events.EventTypeArticleCommitted:
		return "A story was sent to the presses."
	case events.EventTypeArticlePublished:
		return "A story hit the front page."
	case events.EventTypeArticleEnriched:
		return "A story came back from the wire with full copy."
	case events.EventTypeEnrichmentFailed:
		return "The wire failed to deliver copy for a story."
	case events.EventTypeStaffHired:
		return "A new writer joined the newsroom."
	case events.EventTypeSimReset:
		return "The newsroom started over from scratch."
	case events.EventTypeSpeedChanged:
		return "The clock changed pace."
	case events.EventTypePauseToggled:
		return "The clock was paused or resumed."
	default:
		return "Something happened in the newsroom."
	}
}

// determineImpact classifies the event for the feed color coding.
func (fh *FeedHandler) determineImpact(e events.Event) string {
	switch e.Type {
	case events.EventTypeArticlePublished, events.EventTypeArticleEnriched, events.EventTypeStaffHired:
		return "POSITIVE"
	case events.EventTypeEnrichmentFailed, events.EventTypeMonthSettled:
		return "NEGATIVE"
	default:
		return "NEUTRAL"
	}
}

// jsonError sends an error response.
func (fh *FeedHandler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
