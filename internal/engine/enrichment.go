package engine

import (
	"context"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/logger"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/metrics"
)

// ContentClient is the remote article generation service. The response is
// decorative only; the engine tolerates the call being slow or failing.
type ContentClient interface {
	Generate(ctx context.Context, draft article.Draft, publicationName string, sliderScore float64) (article.GeneratedContent, error)
}

// DefaultEnrichTimeout bounds a single generation call.
const DefaultEnrichTimeout = 30 * time.Second

// EnrichmentManager runs content generation off the command critical path.
// Each dispatch carries the store generation it was issued under; the
// write-back is dropped if the sim was reset in the meantime.
type EnrichmentManager struct {
	store   *Store
	client  ContentClient
	logger  *logger.Logger
	timeout time.Duration

	// SliderScore is the tunable forwarded to the generation API.
	SliderScore float64
}

// NewEnrichmentManager wires the manager. A zero timeout falls back to
// DefaultEnrichTimeout.
func NewEnrichmentManager(store *Store, client ContentClient, log *logger.Logger, timeout time.Duration) *EnrichmentManager {
	if timeout <= 0 {
		timeout = DefaultEnrichTimeout
	}
	return &EnrichmentManager{
		store:       store,
		client:      client,
		logger:      log,
		timeout:     timeout,
		SliderScore: 0.5,
	}
}

// Enrich dispatches a fire-and-forget generation call for a committed
// article. Never blocks the caller.
func (m *EnrichmentManager) Enrich(generation int64, a article.Article, publicationName string) {
	draft := article.Draft{
		Topic:     a.Topic,
		Category:  a.Category,
		Type:      a.Type,
		Qualities: a.Qualities,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		start := time.Now()
		content, err := m.client.Generate(ctx, draft, publicationName, m.SliderScore)
		metrics.Get().RecordEnrichment(time.Since(start), err)

		if err != nil {
			m.logger.Warn("Content generation failed for article %s: %v", a.ID, err)
		}
		m.store.ApplyEnrichment(generation, a.ID, content, err)
	}()
}
