package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
)

// Projector turns a scored draft into a frozen audience projection.
// The random source is injected so tests can seed it; the same source is
// shared with the economy clock in production.
type Projector struct {
	tuning Tuning
	rng    *rand.Rand
}

// NewProjector creates a projector. A nil rng falls back to a time-seeded
// source.
func NewProjector(tuning Tuning, rng *rand.Rand) *Projector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Projector{tuning: tuning, rng: rng}
}

// Project computes the reception a draft would get against the current
// subscriber base. The result is frozen into the article at commit time
// and never recomputed, even if the base changes before publish.
func (p *Projector) Project(draft article.Draft, subscribers int) article.Reception {
	scores := Score(draft.Qualities, draft.Type)
	t := p.tuning

	maxAudience := t.BaseAudience + float64(subscribers)*t.AudienceMultiplier

	// Quadratic on quality: mediocre pieces barely travel, excellent ones
	// spike. Jitter is a single symmetric draw per projection.
	jitter := (p.rng.Float64()*2 - 1) * t.JitterHalfWidth
	viralReads := maxAudience * scores.Overall * scores.Overall * (1 + jitter)

	subscriberReads := float64(subscribers) * (t.BaseSubscriberReadRatio + scores.Overall*t.BonusSubscriberReadRatio)

	return article.Reception{
		Readership:     int(math.Round(subscriberReads + viralReads)),
		NewSubscribers: int(math.Round(viralReads * t.MaxConversionRate * scores.Overall)),
		Scores:         scores,
	}
}
