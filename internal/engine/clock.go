package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/sim"
)

// AdvanceReport summarizes what a single Advance call settled. The Store
// turns it into newsroom events; tests assert on it directly.
type AdvanceReport struct {
	MonthsCrossed      int64
	PublishedArticles  []string // ids that flipped to published this call
	NewSubscribers     int
	NewViews           int
	SubscriberLoss     int
	Payroll            float64
	SubscriptionIncome float64
	ViewIncome         float64
	ProratedIncome     float64
}

// Clock advances the economy. It is a pure transformation over snapshots:
// every figure is computed against the single consistent before-state, and
// the mutated after-state is returned as a new value.
type Clock struct {
	tuning sim.Tuning
	rng    *rand.Rand
}

// NewClock creates the economy clock. A nil rng falls back to a
// time-seeded source; tests inject a seeded one for deterministic decay.
func NewClock(tuning sim.Tuning, rng *rand.Rand) *Clock {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Clock{tuning: tuning, rng: rng}
}

// Advance moves the simulation forward by dt ticks, resolving due
// articles and settling any crossed month boundaries.
//
// Advance never fails. A non-positive dt is a caller contract violation
// and is treated as a documented no-op: the snapshot comes back unchanged
// with a zero report.
func (c *Clock) Advance(snap Snapshot, dt int64) (Snapshot, AdvanceReport) {
	if dt <= 0 {
		return snap, AdvanceReport{}
	}

	t := c.tuning
	out := snap.Clone()
	report := AdvanceReport{}

	newTick := snap.Tick + dt

	monthsCrossed := newTick/sim.TicksPerMonth - snap.Tick/sim.TicksPerMonth
	if monthsCrossed < 0 {
		monthsCrossed = 0
	}
	report.MonthsCrossed = monthsCrossed

	// Resolve pending articles against the new tick. Only articles that
	// flip during this call contribute views and subscribers.
	for id, a := range out.Articles {
		resolved := sim.ResolveDue(a, newTick)
		if resolved.Status == article.StatusPublished && a.Status == article.StatusPending {
			report.PublishedArticles = append(report.PublishedArticles, id)
			report.NewSubscribers += resolved.Reception.NewSubscribers
			report.NewViews += resolved.Reception.Readership
		}
		out.Articles[id] = resolved
	}

	// Churn only settles on month boundaries. Recent output dampens it:
	// every article published in the trailing month shaves a slice off the
	// rolled decay fraction.
	if monthsCrossed > 0 {
		publishedInWindow := 0
		windowStart := newTick - sim.TicksPerMonth
		for _, a := range out.Articles {
			if a.Status == article.StatusPublished && a.PublishTick >= windowStart {
				publishedInWindow++
			}
		}

		decayFraction := c.rng.Float64()*t.DecayMax - float64(publishedInWindow)/t.DecayDampingDivisor
		if decayFraction < 0 {
			decayFraction = 0
		}
		report.SubscriberLoss = int(monthsCrossed) * int(math.Round(decayFraction*float64(snap.Subscribers)))
	}

	out.Subscribers = snap.Subscribers + report.NewSubscribers - report.SubscriberLoss
	if out.Subscribers < 0 {
		out.Subscribers = 0
	}

	report.Payroll = float64(monthsCrossed) * t.CostWriterMonthly * float64(len(snap.Staff))
	report.SubscriptionIncome = float64(monthsCrossed) * float64(out.Subscribers) * t.RevenuePerSubscriber
	report.ViewIncome = float64(report.NewViews) * t.RevenuePerView

	// Subscribers gained mid-month earn a prorated slice of the monthly
	// fee instead of waiting for the next boundary.
	if monthsCrossed == 0 && report.NewSubscribers > 0 {
		prorate := float64(sim.DaysPerMonth-dayOfMonth(newTick)) / float64(sim.DaysPerMonth)
		report.ProratedIncome = float64(report.NewSubscribers) * t.RevenuePerSubscriber * prorate
	}

	out.Tick = newTick
	out.Cash = snap.Cash - report.Payroll + report.SubscriptionIncome + report.ViewIncome + report.ProratedIncome

	return out, report
}
