package storage

import (
	"context"
	"fmt"
)

// Recapper turns the persisted event ledger into a human-readable feed.
// Used for the "while you were away" screen shown when a saved game is
// resumed, and for debugging a run after the fact.
type Recapper struct {
	eventRepo EventRepository
}

// NewRecapper creates a recap builder over the event ledger.
func NewRecapper(eventRepo EventRepository) *Recapper {
	return &Recapper{eventRepo: eventRepo}
}

// RecapEntry is one line of the activity feed.
type RecapEntry struct {
	Timestamp string `json:"timestamp"`
	EventType string `json:"event_type"`
	Tick      int64  `json:"tick"`
	Summary   string `json:"summary"`
}

// Recap returns the latest n noteworthy events, newest first. TIME_TICK
// events are skipped; they are heartbeat noise, not news.
func (r *Recapper) Recap(ctx context.Context, gameID string, n int) ([]RecapEntry, error) {
	// Over-fetch so the feed stays full after filtering heartbeats.
	events, err := r.eventRepo.GetRecent(ctx, gameID, n*4)
	if err != nil {
		return nil, fmt.Errorf("recap: %w", err)
	}

	entries := make([]RecapEntry, 0, n)
	for _, e := range events {
		if e.EventType == "TIME_TICK" {
			continue
		}
		entries = append(entries, RecapEntry{
			Timestamp: e.Timestamp.Format("2006-01-02 15:04:05"),
			EventType: e.EventType,
			Tick:      e.Tick,
			Summary:   summarize(e),
		})
		if len(entries) == n {
			break
		}
	}
	return entries, nil
}

func summarize(e NewsEvent) string {
	str := func(key string) string {
		if v, ok := e.Payload[key].(string); ok {
			return v
		}
		return ""
	}
	num := func(key string) float64 {
		if v, ok := e.Payload[key].(float64); ok {
			return v
		}
		return 0
	}

	switch e.EventType {
	case "ARTICLE_COMMITTED":
		return fmt.Sprintf("Desk committed %q (%s) for publication", str("topic"), str("type"))
	case "ARTICLE_PUBLISHED":
		return fmt.Sprintf("%q went live with %.0f readers and %.0f new subscribers",
			str("topic"), num("readership"), num("new_subscribers"))
	case "ARTICLE_ENRICHED":
		return "Generated copy arrived for article " + str("article_id")
	case "ENRICHMENT_FAILED":
		return "Content generation failed for article " + str("article_id")
	case "STAFF_HIRED":
		return fmt.Sprintf("Hired %s for %.0f", str("name"), num("cost"))
	case "MONTH_SETTLED":
		return fmt.Sprintf("Month closed: payroll %.0f, subscriptions %.0f, churned %.0f subscribers",
			num("payroll"), num("subscription_income"), num("subscriber_loss"))
	case "SIM_RESET":
		return "Simulation reset to a fresh newsroom"
	default:
		return e.EventType
	}
}
