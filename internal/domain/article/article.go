// Package article defines the core domain entity of the newsroom simulation.
// This package is PURE and must NOT import any infrastructure packages (network, events, platform).
package article

// Type classifies the editorial angle of a piece. The set is closed:
// the scoring tables are defined per type and an unknown type is a bug.
type Type string

const (
	TypeEntertainment Type = "entertainment"
	TypeListicle      Type = "listicle"
	TypeScience       Type = "science"
	TypeBreaking      Type = "breaking"
)

// Types lists every valid article type, in display order.
var Types = []Type{TypeEntertainment, TypeListicle, TypeScience, TypeBreaking}

// Valid reports whether t is one of the closed set of article types.
func (t Type) Valid() bool {
	switch t {
	case TypeEntertainment, TypeListicle, TypeScience, TypeBreaking:
		return true
	}
	return false
}

// Status tracks an article through its lifecycle. Transitions only move
// forward: draft -> pending -> published.
type Status string

const (
	StatusDraft     Status = "draft"     // player is still editing, never stored
	StatusPending   Status = "pending"   // committed, waiting for its publish tick
	StatusPublished Status = "published" // terminal
)

// InvestigationQualities is the effort the player put into research.
type InvestigationQualities struct {
	Background float64 `json:"background"`
	Original   float64 `json:"original"`
	FactCheck  float64 `json:"factCheck"`
}

// WritingQualities is the effort the player put into prose.
type WritingQualities struct {
	Engagement float64 `json:"engagement"`
	Depth      float64 `json:"depth"`
}

// PublishingQualities is the effort the player put into presentation.
type PublishingQualities struct {
	Editing float64 `json:"editing"`
	Visuals float64 `json:"visuals"`
}

// Qualities is the full effort allocation of a draft. Values are normally
// slider positions in [0,100] but out-of-range values are legal; the scorer
// degrades gracefully instead of clamping.
type Qualities struct {
	Investigation InvestigationQualities `json:"investigation"`
	Writing       WritingQualities       `json:"writing"`
	Publishing    PublishingQualities    `json:"publishing"`
}

// ScoreBreakdown is the output of the quality scorer. All numeric fields
// are in [0,1]. InsightTags are cosmetic flavor labels and carry no
// economic weight.
type ScoreBreakdown struct {
	Overall       float64  `json:"overall"`
	Investigation float64  `json:"investigation"`
	Writing       float64  `json:"writing"`
	Publishing    float64  `json:"publishing"`
	InsightTags   []string `json:"insightTags,omitempty"`
}

// Reception is the frozen projection of an article's audience impact,
// computed exactly once at commit time. The engine credits these numbers
// at the publish tick even if the subscriber base changed in between.
type Reception struct {
	Readership     int            `json:"readership"`
	NewSubscribers int            `json:"newSubscribers"`
	Scores         ScoreBreakdown `json:"scores"`
}

// EnrichmentState tracks the optional remote content generation for an
// article. It is deliberately separate from Status: a slow or failed
// enrichment never blocks or reverses the pending -> published transition.
type EnrichmentState string

const (
	EnrichmentNone    EnrichmentState = "none"
	EnrichmentPending EnrichmentState = "pending"
	EnrichmentReady   EnrichmentState = "ready"
	EnrichmentFailed  EnrichmentState = "failed"
)

// GeneratedContent is the decorative body text produced by the remote
// article generation service.
type GeneratedContent struct {
	Dek  string `json:"dek"`
	Body string `json:"body"`
}

// Draft is the raw player input to a commit. It is ephemeral UI state and
// is never stored as an entity.
type Draft struct {
	Topic     string    `json:"topic"`
	Category  string    `json:"category,omitempty"`
	Type      Type      `json:"type"`
	Qualities Qualities `json:"qualities"`
}

// Article is a committed piece. ID, Type, Qualities, PublishTick and
// Reception are immutable after commit; only Status and the enrichment
// fields change, each at most once.
type Article struct {
	ID          string            `json:"id"`
	Topic       string            `json:"topic"`
	Category    string            `json:"category,omitempty"`
	Type        Type              `json:"type"`
	Qualities   Qualities         `json:"qualities"`
	Status      Status            `json:"status"`
	PublishTick int64             `json:"publish_tick"`
	Reception   Reception         `json:"reception"`
	Enrichment  EnrichmentState   `json:"enrichment"`
	Content     *GeneratedContent `json:"content,omitempty"`
}
