package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event NewsEvent) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO events (id, game_id, timestamp, event_type, actor_id, target_id, payload, tick)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.GameID, event.Timestamp, event.EventType, event.ActorID,
		event.TargetID, string(payloadBytes), event.Tick,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]NewsEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []NewsEvent
	for rows.Next() {
		var e NewsEvent
		var payloadStr string
		err := rows.Scan(
			&e.ID, &e.GameID, &e.Timestamp, &e.EventType, &e.ActorID,
			&e.TargetID, &payloadStr, &e.Tick,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteEventRepository) GetByGameID(ctx context.Context, gameID string) ([]NewsEvent, error) {
	query := `SELECT id, game_id, timestamp, event_type, actor_id, target_id, payload, tick FROM events WHERE game_id = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, gameID)
}

func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, gameID string, eventType string) ([]NewsEvent, error) {
	query := `SELECT id, game_id, timestamp, event_type, actor_id, target_id, payload, tick FROM events WHERE game_id = ? AND event_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, gameID, eventType)
}

func (r *SQLiteEventRepository) GetRecent(ctx context.Context, gameID string, n int) ([]NewsEvent, error) {
	query := `SELECT id, game_id, timestamp, event_type, actor_id, target_id, payload, tick FROM events WHERE game_id = ? ORDER BY timestamp DESC LIMIT ?`
	return r.getMany(ctx, query, gameID, n)
}

func (r *SQLiteEventRepository) Clear(ctx context.Context, gameID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE game_id = ?`, gameID)
	return err
}

// ---------------------------------------------------------
// SQLiteSnapshotRepository
// ---------------------------------------------------------

// SQLiteSnapshotRepository implements SnapshotRepository for SQLite.
// Save replaces the whole game in one transaction so a crash mid-write
// can never leave a half-saved state.
type SQLiteSnapshotRepository struct {
	db *sql.DB
}

func NewSQLiteSnapshotRepository(db *sql.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

func (r *SQLiteSnapshotRepository) Save(ctx context.Context, game SaveGame) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer tx.Rollback()

	gameID := game.State.GameID
	if _, err := tx.ExecContext(ctx, `DELETE FROM staff WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("clear staff: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("clear articles: %w", err)
	}

	stateQuery := `
		INSERT INTO save_state (game_id, cash, tick, subscribers, publication_name, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			cash=excluded.cash,
			tick=excluded.tick,
			subscribers=excluded.subscribers,
			publication_name=excluded.publication_name,
			last_updated=excluded.last_updated
	`
	_, err = tx.ExecContext(ctx, stateQuery,
		gameID, game.State.Cash, game.State.Tick, game.State.Subscribers,
		game.State.PublicationName, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	for _, s := range game.Staff {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO staff (staff_id, game_id, name, position) VALUES (?, ?, ?, ?)`,
			s.StaffID, gameID, s.Name, s.Position,
		)
		if err != nil {
			return fmt.Errorf("save staff %s: %w", s.StaffID, err)
		}
	}

	for _, a := range game.Articles {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO articles (article_id, game_id, topic, category, type, qualities_json, status, publish_tick, reception_json, enrichment, dek, body)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ArticleID, gameID, a.Topic, a.Category, a.Type, a.QualitiesJSON,
			a.Status, a.PublishTick, a.ReceptionJSON, a.Enrichment, a.Dek, a.Body,
		)
		if err != nil {
			return fmt.Errorf("save article %s: %w", a.ArticleID, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteSnapshotRepository) Load(ctx context.Context, gameID string) (*SaveGame, error) {
	var game SaveGame
	err := r.db.QueryRowContext(ctx,
		`SELECT game_id, cash, tick, subscribers, publication_name, last_updated FROM save_state WHERE game_id = ?`,
		gameID,
	).Scan(&game.State.GameID, &game.State.Cash, &game.State.Tick,
		&game.State.Subscribers, &game.State.PublicationName, &game.State.LastUpdated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load state: %w", err)
	}

	staffRows, err := r.db.QueryContext(ctx,
		`SELECT staff_id, game_id, name, position FROM staff WHERE game_id = ? ORDER BY position ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("load staff: %w", err)
	}
	defer staffRows.Close()
	for staffRows.Next() {
		var s StaffRecord
		if err := staffRows.Scan(&s.StaffID, &s.GameID, &s.Name, &s.Position); err != nil {
			return nil, err
		}
		game.Staff = append(game.Staff, s)
	}
	if err := staffRows.Err(); err != nil {
		return nil, err
	}

	articleRows, err := r.db.QueryContext(ctx, `
		SELECT article_id, game_id, topic, category, type, qualities_json, status, publish_tick, reception_json, enrichment, dek, body
		FROM articles WHERE game_id = ?`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}
	defer articleRows.Close()
	for articleRows.Next() {
		var a ArticleRecord
		err := articleRows.Scan(&a.ArticleID, &a.GameID, &a.Topic, &a.Category, &a.Type,
			&a.QualitiesJSON, &a.Status, &a.PublishTick, &a.ReceptionJSON, &a.Enrichment, &a.Dek, &a.Body)
		if err != nil {
			return nil, err
		}
		game.Articles = append(game.Articles, a)
	}
	if err := articleRows.Err(); err != nil {
		return nil, err
	}

	return &game, nil
}

func (r *SQLiteSnapshotRepository) Clear(ctx context.Context, gameID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM staff WHERE game_id = ?`,
		`DELETE FROM articles WHERE game_id = ?`,
		`DELETE FROM save_state WHERE game_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, gameID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
