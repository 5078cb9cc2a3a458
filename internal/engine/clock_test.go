package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/staff"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/sim"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Cash:            1000,
		Staff:           nil,
		Tick:            0,
		Articles:        make(map[string]article.Article),
		Subscribers:     0,
		PublicationName: "Rat News Network",
	}
}

func pendingArticle(id string, publishTick int64, readership, newSubs int) article.Article {
	return article.Article{
		ID:          id,
		Topic:       "Test Story",
		Type:        article.TypeBreaking,
		Status:      article.StatusPending,
		PublishTick: publishTick,
		Reception: article.Reception{
			Readership:     readership,
			NewSubscribers: newSubs,
		},
	}
}

func TestAdvanceNonPositiveIsNoOp(t *testing.T) {
	clock := NewClock(sim.DefaultTuning(), rand.New(rand.NewSource(1)))
	snap := testSnapshot()
	snap.Tick = 42

	for _, dt := range []int64{0, -1, -300} {
		out, report := clock.Advance(snap, dt)
		if out.Tick != 42 || out.Cash != snap.Cash {
			t.Errorf("dt=%d: expected unchanged snapshot, got tick %d cash %f", dt, out.Tick, out.Cash)
		}
		if report.MonthsCrossed != 0 || report.Payroll != 0 || len(report.PublishedArticles) != 0 {
			t.Errorf("dt=%d: expected a zero report, got %+v", dt, report)
		}
	}
}

func TestAdvanceTickMonotonic(t *testing.T) {
	clock := NewClock(sim.DefaultTuning(), rand.New(rand.NewSource(1)))
	snap := testSnapshot()

	for i := 0; i < 100; i++ {
		out, _ := clock.Advance(snap, 7)
		if out.Tick != snap.Tick+7 {
			t.Fatalf("Expected tick %d, got %d", snap.Tick+7, out.Tick)
		}
		snap = out
	}
}

func TestAdvancePublishesDueArticles(t *testing.T) {
	clock := NewClock(sim.DefaultTuning(), rand.New(rand.NewSource(1)))
	snap := testSnapshot()
	snap.Articles["A1"] = pendingArticle("A1", sim.PublishDurationTicks, 1000, 5)

	out, report := clock.Advance(snap, sim.PublishDurationTicks)

	if out.Articles["A1"].Status != article.StatusPublished {
		t.Errorf("Expected article to publish, got %s", out.Articles["A1"].Status)
	}
	if len(report.PublishedArticles) != 1 || report.PublishedArticles[0] != "A1" {
		t.Errorf("Expected the report to list A1, got %v", report.PublishedArticles)
	}
	if report.NewViews != 1000 || report.NewSubscribers != 5 {
		t.Errorf("Expected 1000 views and 5 subscribers credited, got %d and %d", report.NewViews, report.NewSubscribers)
	}

	// Day 2 of the month: view income 1000*0.01 plus 5 subscribers at
	// 2.0/month prorated over the 28 remaining days.
	expectedCash := 1000.0 + 1000*0.01 + 5*2.0*(28.0/30.0)
	if math.Abs(out.Cash-expectedCash) > 1e-9 {
		t.Errorf("Expected cash %f, got %f", expectedCash, out.Cash)
	}
	if out.Subscribers != 5 {
		t.Errorf("Expected 5 subscribers, got %d", out.Subscribers)
	}
}

func TestAdvanceDoesNotDoubleCreditPublished(t *testing.T) {
	clock := NewClock(sim.DefaultTuning(), rand.New(rand.NewSource(1)))
	snap := testSnapshot()
	snap.Articles["A1"] = pendingArticle("A1", 10, 500, 3)

	first, report := clock.Advance(snap, 10)
	if len(report.PublishedArticles) != 1 {
		t.Fatalf("Expected one publish on the first advance, got %v", report.PublishedArticles)
	}

	_, report = clock.Advance(first, 10)
	if len(report.PublishedArticles) != 0 || report.NewViews != 0 || report.NewSubscribers != 0 {
		t.Errorf("Expected no credit on re-advance over a published article, got %+v", report)
	}
}

func TestAdvanceMonthBoundarySettlement(t *testing.T) {
	tuning := sim.DefaultTuning()
	seed := int64(99)
	clock := NewClock(tuning, rand.New(rand.NewSource(seed)))

	snap := testSnapshot()
	snap.Subscribers = 1000
	snap.Staff = []staff.Employee{{ID: "W1", Name: "Remy Whiskers"}}

	// Replay the decay roll with an identical source to predict the loss.
	mirror := rand.New(rand.NewSource(seed))
	decayFraction := mirror.Float64() * tuning.DecayMax
	expectedLoss := int(math.Round(decayFraction * 1000))

	out, report := clock.Advance(snap, sim.TicksPerMonth)

	if report.MonthsCrossed != 1 {
		t.Fatalf("Expected one month crossed, got %d", report.MonthsCrossed)
	}
	if report.SubscriberLoss != expectedLoss {
		t.Errorf("Expected subscriber loss %d, got %d", expectedLoss, report.SubscriberLoss)
	}
	if out.Subscribers != 1000-expectedLoss {
		t.Errorf("Expected %d subscribers after decay, got %d", 1000-expectedLoss, out.Subscribers)
	}
	if report.Payroll != tuning.CostWriterMonthly {
		t.Errorf("Expected payroll %f for one writer, got %f", tuning.CostWriterMonthly, report.Payroll)
	}

	// Subscription revenue settles on the post-decay count.
	expectedIncome := float64(1000-expectedLoss) * tuning.RevenuePerSubscriber
	if math.Abs(report.SubscriptionIncome-expectedIncome) > 1e-9 {
		t.Errorf("Expected subscription income %f, got %f", expectedIncome, report.SubscriptionIncome)
	}

	expectedCash := snap.Cash - report.Payroll + report.SubscriptionIncome
	if math.Abs(out.Cash-expectedCash) > 1e-9 {
		t.Errorf("Expected cash %f, got %f", expectedCash, out.Cash)
	}
}

func TestAdvanceDecayDampenedByRecentOutput(t *testing.T) {
	tuning := sim.DefaultTuning()
	clock := NewClock(tuning, rand.New(rand.NewSource(3)))

	snap := testSnapshot()
	snap.Subscribers = 500

	// Five articles published inside the trailing month fully offset the
	// maximum possible decay roll (5/10 >= DecayMax).
	for i := 0; i < 5; i++ {
		id := string(rune('A' + i))
		a := pendingArticle(id, 295, 0, 0)
		a.Status = article.StatusPublished
		snap.Articles[id] = a
	}

	_, report := clock.Advance(snap, sim.TicksPerMonth)

	if report.MonthsCrossed != 1 {
		t.Fatalf("Expected one month crossed, got %d", report.MonthsCrossed)
	}
	if report.SubscriberLoss != 0 {
		t.Errorf("Expected churn fully dampened by output, got loss %d", report.SubscriberLoss)
	}
}

func TestAdvanceSubscribersNeverNegative(t *testing.T) {
	tuning := sim.DefaultTuning()
	tuning.DecayMax = 5 // force catastrophic churn

	clock := NewClock(tuning, rand.New(rand.NewSource(1)))
	snap := testSnapshot()
	snap.Subscribers = 10

	out, _ := clock.Advance(snap, sim.TicksPerMonth)
	if out.Subscribers < 0 {
		t.Errorf("Expected subscriber floor at zero, got %d", out.Subscribers)
	}
}

func TestAdvanceInputSnapshotUntouched(t *testing.T) {
	clock := NewClock(sim.DefaultTuning(), rand.New(rand.NewSource(1)))
	snap := testSnapshot()
	snap.Articles["A1"] = pendingArticle("A1", 10, 100, 1)

	clock.Advance(snap, 50)

	if snap.Tick != 0 {
		t.Errorf("Expected the input snapshot tick to stay 0, got %d", snap.Tick)
	}
	if snap.Articles["A1"].Status != article.StatusPending {
		t.Errorf("Expected the input article to stay pending, got %s", snap.Articles["A1"].Status)
	}
}
