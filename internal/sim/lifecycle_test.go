package sim

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
)

func newTestLifecycle() *Lifecycle {
	return NewLifecycle(NewProjector(DefaultTuning(), rand.New(rand.NewSource(1))))
}

func TestCommitProducesPendingArticle(t *testing.T) {
	lc := newTestLifecycle()
	draft := perfectListicleDraft()

	a := lc.Commit(draft, 100, 50)

	if a.ID == "" {
		t.Error("Expected a committed article to get an id")
	}
	if a.Status != article.StatusPending {
		t.Errorf("Expected status pending, got %s", a.Status)
	}
	if a.PublishTick != 100+PublishDurationTicks {
		t.Errorf("Expected publish tick %d, got %d", 100+PublishDurationTicks, a.PublishTick)
	}
	if a.Topic != draft.Topic || a.Type != draft.Type || a.Qualities != draft.Qualities {
		t.Error("Expected the draft fields to carry over unchanged")
	}
	if a.Enrichment != article.EnrichmentNone {
		t.Errorf("Expected enrichment to start at none, got %s", a.Enrichment)
	}
	if a.Reception.Readership <= 0 {
		t.Errorf("Expected a frozen reception projection, got %+v", a.Reception)
	}
}

func TestCommitFreezesReception(t *testing.T) {
	lc := newTestLifecycle()

	// Identical drafts against wildly different subscriber bases must not
	// share receptions: the projection binds at commit time.
	small := lc.Commit(perfectListicleDraft(), 0, 0)
	large := lc.Commit(perfectListicleDraft(), 0, 10000)

	if large.Reception.Readership <= small.Reception.Readership {
		t.Errorf("Expected the larger base to project more reads: %d vs %d",
			large.Reception.Readership, small.Reception.Readership)
	}
}

func TestResolveDueFlipsAtPublishTick(t *testing.T) {
	lc := newTestLifecycle()
	a := lc.Commit(perfectListicleDraft(), 0, 0)

	early := ResolveDue(a, a.PublishTick-1)
	if early.Status != article.StatusPending {
		t.Errorf("Expected article to stay pending before its tick, got %s", early.Status)
	}

	due := ResolveDue(a, a.PublishTick)
	if due.Status != article.StatusPublished {
		t.Errorf("Expected article to publish at its tick, got %s", due.Status)
	}

	late := ResolveDue(a, a.PublishTick+500)
	if late.Status != article.StatusPublished {
		t.Errorf("Expected article to publish past its tick, got %s", late.Status)
	}
}

func TestResolveDueIdempotent(t *testing.T) {
	lc := newTestLifecycle()
	a := lc.Commit(perfectListicleDraft(), 0, 0)

	published := ResolveDue(a, a.PublishTick)
	again := ResolveDue(published, a.PublishTick+1000)

	if !reflect.DeepEqual(again, published) {
		t.Errorf("Expected resolving a published article to be a no-op: %+v vs %+v", again, published)
	}
	if !reflect.DeepEqual(again.Reception, a.Reception) {
		t.Error("Expected the frozen reception to survive publishing unchanged")
	}
}
