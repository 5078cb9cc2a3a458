package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/article"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/domain/staff"
	"github.com/RDelgadoM/RatNewsNetwork/server/internal/engine"
)

// EncodeSnapshot flattens an engine snapshot into persistable records.
// The inverse of DecodeSnapshot: encode-then-decode must reproduce every
// field exactly.
func EncodeSnapshot(gameID string, snap engine.Snapshot) (SaveGame, error) {
	game := SaveGame{
		State: SaveState{
			GameID:          gameID,
			Cash:            snap.Cash,
			Tick:            snap.Tick,
			Subscribers:     snap.Subscribers,
			PublicationName: snap.PublicationName,
		},
	}

	for i, e := range snap.Staff {
		game.Staff = append(game.Staff, StaffRecord{
			StaffID:  e.ID,
			GameID:   gameID,
			Name:     e.Name,
			Position: i,
		})
	}

	ids := make([]string, 0, len(snap.Articles))
	for id := range snap.Articles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		a := snap.Articles[id]
		qualities, err := json.Marshal(a.Qualities)
		if err != nil {
			return SaveGame{}, fmt.Errorf("encode qualities for %s: %w", id, err)
		}
		reception, err := json.Marshal(a.Reception)
		if err != nil {
			return SaveGame{}, fmt.Errorf("encode reception for %s: %w", id, err)
		}

		rec := ArticleRecord{
			ArticleID:     a.ID,
			GameID:        gameID,
			Topic:         a.Topic,
			Category:      a.Category,
			Type:          string(a.Type),
			QualitiesJSON: string(qualities),
			Status:        string(a.Status),
			PublishTick:   a.PublishTick,
			ReceptionJSON: string(reception),
			Enrichment:    string(a.Enrichment),
		}
		if a.Content != nil {
			rec.Dek = a.Content.Dek
			rec.Body = a.Content.Body
		}
		game.Articles = append(game.Articles, rec)
	}

	return game, nil
}

// DecodeSnapshot rebuilds an engine snapshot from persisted records.
func DecodeSnapshot(game SaveGame) (engine.Snapshot, error) {
	snap := engine.Snapshot{
		Cash:            game.State.Cash,
		Tick:            game.State.Tick,
		Subscribers:     game.State.Subscribers,
		PublicationName: game.State.PublicationName,
		Articles:        make(map[string]article.Article, len(game.Articles)),
	}

	records := make([]StaffRecord, len(game.Staff))
	copy(records, game.Staff)
	sort.Slice(records, func(i, j int) bool { return records[i].Position < records[j].Position })
	for _, s := range records {
		snap.Staff = append(snap.Staff, staff.Employee{ID: s.StaffID, Name: s.Name})
	}

	for _, rec := range game.Articles {
		a := article.Article{
			ID:          rec.ArticleID,
			Topic:       rec.Topic,
			Category:    rec.Category,
			Type:        article.Type(rec.Type),
			Status:      article.Status(rec.Status),
			PublishTick: rec.PublishTick,
			Enrichment:  article.EnrichmentState(rec.Enrichment),
		}
		if err := json.Unmarshal([]byte(rec.QualitiesJSON), &a.Qualities); err != nil {
			return engine.Snapshot{}, fmt.Errorf("decode qualities for %s: %w", rec.ArticleID, err)
		}
		if err := json.Unmarshal([]byte(rec.ReceptionJSON), &a.Reception); err != nil {
			return engine.Snapshot{}, fmt.Errorf("decode reception for %s: %w", rec.ArticleID, err)
		}
		// A ready enrichment always carries content, even when the
		// service returned empty text.
		if a.Enrichment == article.EnrichmentReady || rec.Dek != "" || rec.Body != "" {
			a.Content = &article.GeneratedContent{Dek: rec.Dek, Body: rec.Body}
		}
		snap.Articles[a.ID] = a
	}

	return snap, nil
}
