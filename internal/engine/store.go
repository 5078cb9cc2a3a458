package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/staff"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/events"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/logger"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/sim"
)

// TickPayload is attached to every TIME_TICK event.
type TickPayload struct {
	Tick        int64   `json:"tick"`
	Date        string  `json:"date"`
	Cash        float64 `json:"cash"`
	Subscribers int     `json:"subscribers"`
}

// MonthSettledPayload records a monthly settlement for the finance panel.
type MonthSettledPayload struct {
	MonthsCrossed      int64   `json:"months_crossed"`
	Payroll            float64 `json:"payroll"`
	SubscriptionIncome float64 `json:"subscription_income"`
	SubscriberLoss     int     `json:"subscriber_loss"`
	Subscribers        int     `json:"subscribers"`
}

// ArticleCommittedPayload records a draft commit.
type ArticleCommittedPayload struct {
	ArticleID   string  `json:"article_id"`
	Topic       string  `json:"topic"`
	Type        string  `json:"type"`
	PublishTick int64   `json:"publish_tick"`
	Cost        float64 `json:"cost"`
}

// ArticlePublishedPayload records an article going live.
type ArticlePublishedPayload struct {
	ArticleID      string  `json:"article_id"`
	Topic          string  `json:"topic"`
	Readership     int     `json:"readership"`
	NewSubscribers int     `json:"new_subscribers"`
	ViewIncome     float64 `json:"view_income"`
}

// StaffHiredPayload records a new writer joining the roster.
type StaffHiredPayload struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Cost       float64 `json:"cost"`
}

// Enricher dispatches the optional remote content generation for a freshly
// committed article. Implementations must not block the caller.
type Enricher interface {
	Enrich(generation int64, a article.Article, publicationName string)
}

// Store is the aggregate root: it owns the snapshot and serializes every
// command behind one mutex. There is exactly one Store per process,
// created at startup and passed explicitly to its consumers.
type Store struct {
	mu         sync.Mutex
	snap       Snapshot
	generation int64 // bumped on reset; stale enrichment writes are discarded

	tuning    sim.Tuning
	clock     *Clock
	lifecycle *sim.Lifecycle
	eventLog  *events.Log
	logger    *logger.Logger
	enricher  Enricher
}

// NewStore creates the simulation store with a fresh initial snapshot.
func NewStore(tuning sim.Tuning, clock *Clock, lifecycle *sim.Lifecycle, eventLog *events.Log, log *logger.Logger) *Store {
	return &Store{
		snap:      NewInitialSnapshot(tuning),
		tuning:    tuning,
		clock:     clock,
		lifecycle: lifecycle,
		eventLog:  eventLog,
		logger:    log,
	}
}

// SetEnricher wires the optional content enrichment dispatcher.
func (s *Store) SetEnricher(e Enricher) {
	s.mu.Lock()
	s.enricher = e
	s.mu.Unlock()
}

// Restore replaces the in-memory snapshot, used at startup to resume a
// saved game.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap.Clone()
	s.mu.Unlock()
}

// Advance moves the simulation forward by dt ticks. Never fails; dt <= 0
// is ignored (see Clock.Advance).
func (s *Store) Advance(dt int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.snap
	after, report := s.clock.Advance(before, dt)
	s.snap = after

	s.emit(events.EventTypeTimeTick, "SYSTEM_CLOCK", "", TickPayload{
		Tick:        after.Tick,
		Date:        FormatDate(after.Tick),
		Cash:        after.Cash,
		Subscribers: after.Subscribers,
	})

	for _, id := range report.PublishedArticles {
		a := after.Articles[id]
		s.emit(events.EventTypeArticlePublished, "SYSTEM_CLOCK", id, ArticlePublishedPayload{
			ArticleID:      id,
			Topic:          a.Topic,
			Readership:     a.Reception.Readership,
			NewSubscribers: a.Reception.NewSubscribers,
			ViewIncome:     float64(a.Reception.Readership) * s.tuning.RevenuePerView,
		})
	}

	if report.MonthsCrossed > 0 {
		s.emit(events.EventTypeMonthSettled, "SYSTEM_CLOCK", "", MonthSettledPayload{
			MonthsCrossed:      report.MonthsCrossed,
			Payroll:            report.Payroll,
			SubscriptionIncome: report.SubscriptionIncome,
			SubscriberLoss:     report.SubscriberLoss,
			Subscribers:        after.Subscribers,
		})
	}
}

// HireStaff adds a writer to the roster. Insufficient cash is a silent
// rejection, not an error: the UI is expected to gate the button.
func (s *Store) HireStaff() (staff.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.Cash < s.tuning.CostWriterHire {
		return staff.Employee{}, false
	}

	hire := staff.Employee{ID: uuid.NewString(), Name: staff.RandomRatName()}
	s.snap.Cash -= s.tuning.CostWriterHire
	s.snap.Staff = append(s.snap.Staff, hire)

	s.emit(events.EventTypeStaffHired, "PLAYER", hire.ID, StaffHiredPayload{
		EmployeeID: hire.ID,
		Name:       hire.Name,
		Cost:       s.tuning.CostWriterHire,
	})
	return hire, true
}

// CommitDraft turns a draft into a pending article. The publish cost is
// deducted unconditionally, even into negative cash; unlike hiring there
// is no balance guard. That asymmetry is deliberate and preserved.
func (s *Store) CommitDraft(draft article.Draft) (article.Article, error) {
	if !draft.Type.Valid() {
		return article.Article{}, fmt.Errorf("commit draft: unknown article type %q", draft.Type)
	}

	s.mu.Lock()

	a := s.lifecycle.Commit(draft, s.snap.Tick, s.snap.Subscribers)
	if s.enricher != nil {
		a.Enrichment = article.EnrichmentPending
	}
	s.snap.Cash -= s.tuning.CostArticlePublish
	s.snap.Articles[a.ID] = a

	generation := s.generation
	enricher := s.enricher
	publication := s.snap.PublicationName

	s.emit(events.EventTypeArticleCommitted, "PLAYER", a.ID, ArticleCommittedPayload{
		ArticleID:   a.ID,
		Topic:       a.Topic,
		Type:        string(a.Type),
		PublishTick: a.PublishTick,
		Cost:        s.tuning.CostArticlePublish,
	})
	s.mu.Unlock()

	// Fire-and-forget: enrichment runs outside the command critical path
	// and writes back through ApplyEnrichment with the generation tag.
	if enricher != nil {
		enricher.Enrich(generation, a, publication)
	}
	return a, nil
}

// ApplyEnrichment writes back the result of a remote content generation.
// Results tagged with a stale generation (the sim was reset in between)
// or an unknown article id are discarded silently.
func (s *Store) ApplyEnrichment(generation int64, articleID string, content article.GeneratedContent, enrichErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		s.logger.Info("Discarding stale enrichment for article %s", articleID)
		return
	}
	a, ok := s.snap.Articles[articleID]
	if !ok {
		s.logger.Info("Discarding enrichment for unknown article %s", articleID)
		return
	}

	if enrichErr != nil {
		a.Enrichment = article.EnrichmentFailed
		s.snap.Articles[articleID] = a
		s.emit(events.EventTypeEnrichmentFailed, "SYSTEM_CONTENT", articleID, map[string]string{
			"article_id": articleID,
			"error":      enrichErr.Error(),
		})
		return
	}

	a.Enrichment = article.EnrichmentReady
	a.Content = &content
	s.snap.Articles[articleID] = a
	s.emit(events.EventTypeArticleEnriched, "SYSTEM_CONTENT", articleID, map[string]string{
		"article_id": articleID,
	})
}

// Reset returns the simulation to the fixed initial snapshot and bumps
// the generation counter so in-flight enrichment results are discarded.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.snap = NewInitialSnapshot(s.tuning)
	s.emit(events.EventTypeSimReset, "PLAYER", "", nil)
}

// SetPublicationName renames the outlet. Empty names are ignored.
func (s *Store) SetPublicationName(name string) {
	if name == "" {
		return
	}
	s.mu.Lock()
	s.snap.PublicationName = name
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Generation returns the current reset generation.
func (s *Store) Generation() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// MonthlyCost is the payroll due at each month boundary.
func (s *Store) MonthlyCost() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(len(s.snap.Staff)) * s.tuning.CostWriterMonthly
}

// MonthlyRevenue is the subscription income due at each month boundary at
// the current subscriber count.
func (s *Store) MonthlyRevenue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.snap.Subscribers) * s.tuning.RevenuePerSubscriber
}

// ArticleViewRevenue returns the realized view revenue for a published
// article. Pending articles have not earned anything yet.
func (s *Store) ArticleViewRevenue(articleID string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.snap.Articles[articleID]
	if !ok || a.Status != article.StatusPublished {
		return 0, ok
	}
	return float64(a.Reception.Readership) * s.tuning.RevenuePerView, true
}

// PendingArticles lists committed-but-not-yet-live articles, soonest first.
func (s *Store) PendingArticles() []article.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []article.Article
	for _, a := range s.snap.Articles {
		if a.Status == article.StatusPending {
			pending = append(pending, a)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].PublishTick != pending[j].PublishTick {
			return pending[i].PublishTick < pending[j].PublishTick
		}
		return pending[i].ID < pending[j].ID
	})
	return pending
}

// TotalPublishedViews sums lifetime readership across published articles.
func (s *Store) TotalPublishedViews() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, a := range s.snap.Articles {
		if a.Status == article.StatusPublished {
			total += a.Reception.Readership
		}
	}
	return total
}

// CurrentDate returns the formatted in-game date.
func (s *Store) CurrentDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FormatDate(s.snap.Tick)
}

func (s *Store) emit(t events.EventType, actor, target string, payload interface{}) {
	s.eventLog.Append(events.Event{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      t,
		ActorID:   actor,
		TargetID:  target,
		Payload:   payload,
		Tick:      s.snap.Tick,
	})
}
