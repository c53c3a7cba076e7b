package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type PlayerRepo struct {
	db DBTX
}

func NewPlayerRepo(db DBTX) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// Get returns nil, nil when the player row does not exist yet.
func (r *PlayerRepo) Get(ctx context.Context, key string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, quest_points, game_ticks, play_time_ms, quests, activities, updated_at
		FROM player WHERE key = ?
	`, key)

	var (
		p                  Player
		playMS             int64
		quests, activities sql.NullString
	)
	if err := row.Scan(&p.Key, &p.QuestPoints, &p.GameTicks, &playMS, &quests, &activities, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("player get: %w", err)
	}
	p.PlayTime = time.Duration(playMS) * time.Millisecond

	p.Quests = map[string]bool{}
	if quests.Valid && quests.String != "" {
		if err := json.Unmarshal([]byte(quests.String), &p.Quests); err != nil {
			return nil, fmt.Errorf("player quests: %w", err)
		}
	}
	p.Activities = map[string]int{}
	if activities.Valid && activities.String != "" {
		if err := json.Unmarshal([]byte(activities.String), &p.Activities); err != nil {
			return nil, fmt.Errorf("player activities: %w", err)
		}
	}
	return &p, nil
}

// Save inserts or replaces the player row.
func (r *PlayerRepo) Save(ctx context.Context, p *Player) error {
	quests, err := json.Marshal(p.Quests)
	if err != nil {
		return fmt.Errorf("marshal quests: %w", err)
	}
	activities, err := json.Marshal(p.Activities)
	if err != nil {
		return fmt.Errorf("marshal activities: %w", err)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO player (key, quest_points, game_ticks, play_time_ms, quests, activities, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			quest_points = excluded.quest_points,
			game_ticks = excluded.game_ticks,
			play_time_ms = excluded.play_time_ms,
			quests = excluded.quests,
			activities = excluded.activities,
			updated_at = excluded.updated_at
	`, p.Key, p.QuestPoints, p.GameTicks, p.PlayTime.Milliseconds(), string(quests), string(activities), p.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("player save: %w", err)
	}
	return nil
}
