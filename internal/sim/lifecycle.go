package sim

import (
	"github.com/google/uuid"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
)

// Lifecycle owns the article state machine. Drafts become pending articles
// at commit; pending articles become published when their publish tick
// arrives. There are no other transitions: no retract, no failure state.
type Lifecycle struct {
	projector *Projector
}

// NewLifecycle wires the lifecycle to a reception projector.
func NewLifecycle(projector *Projector) *Lifecycle {
	return &Lifecycle{projector: projector}
}

// Commit turns a draft into a pending article. The reception projection is
// computed here, once, and carried frozen to the publish tick. Panics on an
// unknown article type (via the scorer) since the caller validates input.
func (l *Lifecycle) Commit(draft article.Draft, currentTick int64, subscribers int) article.Article {
	return article.Article{
		ID:          uuid.NewString(),
		Topic:       draft.Topic,
		Category:    draft.Category,
		Type:        draft.Type,
		Qualities:   draft.Qualities,
		Status:      article.StatusPending,
		PublishTick: currentTick + PublishDurationTicks,
		Reception:   l.projector.Project(draft, subscribers),
		Enrichment:  article.EnrichmentNone,
	}
}

// ResolveDue flips a pending article to published once its publish tick has
// arrived. Idempotent: already-published articles and not-yet-due pending
// ones come back unchanged.
func ResolveDue(a article.Article, currentTick int64) article.Article {
	if a.Status != article.StatusPending {
		return a
	}
	if a.PublishTick > currentTick {
		return a
	}
	a.Status = article.StatusPublished
	return a
}
