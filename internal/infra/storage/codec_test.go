package storage

import (
	"reflect"
	"testing"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/staff"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/engine"
)

func sampleSnapshot() engine.Snapshot {
	return engine.Snapshot{
		Cash: 9876.54,
		Staff: []staff.Employee{
			{ID: "W1", Name: "Remy Whiskers"},
			{ID: "W2", Name: "Brie Nibbleton"},
		},
		Tick:            1234,
		Subscribers:     321,
		PublicationName: "The Daily Squeak",
		Articles: map[string]article.Article{
			"A1": {
				ID:    "A1",
				Topic: "Cheese Heist at City Hall",
				Type:  article.TypeBreaking,
				Qualities: article.Qualities{
					Investigation: article.InvestigationQualities{Background: 10, Original: 50, FactCheck: 40},
					Writing:       article.WritingQualities{Engagement: 60, Depth: 40},
					Publishing:    article.PublishingQualities{Editing: 80, Visuals: 20},
				},
				Status:      article.StatusPublished,
				PublishTick: 1200,
				Reception: article.Reception{
					Readership:     1500,
					NewSubscribers: 42,
					Scores: article.ScoreBreakdown{
						Overall:       0.91,
						Investigation: 0.88,
						Writing:       0.93,
						Publishing:    0.92,
						InsightTags:   []string{"Great Writing"},
					},
				},
				Enrichment: article.EnrichmentReady,
				Content:    &article.GeneratedContent{Dek: "A daring dek", Body: "Full body text."},
			},
			"A2": {
				ID:          "A2",
				Topic:       "Sewer Property Prices Hit Record High",
				Category:    "economy",
				Type:        article.TypeScience,
				Status:      article.StatusPending,
				PublishTick: 1250,
				Reception: article.Reception{
					Readership:     300,
					NewSubscribers: 2,
				},
				Enrichment: article.EnrichmentPending,
			},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	original := sampleSnapshot()

	game, err := EncodeSnapshot(DefaultGameID, original)
	if err != nil {
		t.Fatalf("EncodeSnapshot failed: %v", err)
	}

	decoded, err := DecodeSnapshot(game)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}

	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("Round trip changed the snapshot.\n got: %+v\nwant: %+v", decoded, original)
	}
}

func TestEncodeSnapshotRecordShapes(t *testing.T) {
	game, err := EncodeSnapshot("slot-7", sampleSnapshot())
	if err != nil {
		t.Fatalf("EncodeSnapshot failed: %v", err)
	}

	if game.State.GameID != "slot-7" {
		t.Errorf("Expected game id on the state record, got %q", game.State.GameID)
	}
	if len(game.Staff) != 2 || game.Staff[0].Position != 0 || game.Staff[1].Position != 1 {
		t.Errorf("Expected roster order captured in positions, got %+v", game.Staff)
	}
	if len(game.Articles) != 2 {
		t.Fatalf("Expected 2 article records, got %d", len(game.Articles))
	}

	// Records come out id-sorted so saves are deterministic.
	if game.Articles[0].ArticleID != "A1" || game.Articles[1].ArticleID != "A2" {
		t.Errorf("Expected id-sorted article records, got %s then %s",
			game.Articles[0].ArticleID, game.Articles[1].ArticleID)
	}
	if game.Articles[0].Dek != "A daring dek" {
		t.Errorf("Expected enriched content flattened onto the record, got %q", game.Articles[0].Dek)
	}
	if game.Articles[1].Dek != "" || game.Articles[1].Body != "" {
		t.Error("Expected empty content columns for an unenriched article")
	}
}

func TestSnapshotRoundTripEmptyGeneratedContent(t *testing.T) {
	original := sampleSnapshot()
	a := original.Articles["A1"]
	a.Content = &article.GeneratedContent{}
	original.Articles["A1"] = a

	game, err := EncodeSnapshot(DefaultGameID, original)
	if err != nil {
		t.Fatalf("EncodeSnapshot failed: %v", err)
	}
	decoded, err := DecodeSnapshot(game)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}

	got := decoded.Articles["A1"]
	if got.Content == nil {
		t.Fatal("Expected non-nil content for a ready enrichment with empty text")
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("Round trip changed the snapshot.\n got: %+v\nwant: %+v", decoded, original)
	}

	// Articles that were never enriched still decode without content.
	if decoded.Articles["A2"].Content != nil {
		t.Errorf("Expected nil content for an unenriched article, got %+v", decoded.Articles["A2"].Content)
	}
}

func TestDecodeSnapshotRestoresStaffOrder(t *testing.T) {
	game, err := EncodeSnapshot(DefaultGameID, sampleSnapshot())
	if err != nil {
		t.Fatalf("EncodeSnapshot failed: %v", err)
	}

	// Shuffle the records; Position must win over slice order.
	game.Staff[0], game.Staff[1] = game.Staff[1], game.Staff[0]

	decoded, err := DecodeSnapshot(game)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}
	if decoded.Staff[0].ID != "W1" || decoded.Staff[1].ID != "W2" {
		t.Errorf("Expected roster restored in position order, got %+v", decoded.Staff)
	}
}
