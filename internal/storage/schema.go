package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS player (
			key TEXT PRIMARY KEY,
			quest_points INTEGER DEFAULT 0,
			game_ticks INTEGER DEFAULT 0,
			play_time_ms INTEGER DEFAULT 0,
			quests TEXT,
			activities TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			difficulty INTEGER NOT NULL,
			category TEXT NOT NULL,
			source TEXT NOT NULL,
			completed INTEGER DEFAULT 0,
			visible INTEGER DEFAULT 1,
			xp_reward INTEGER DEFAULT 0,
			points_reward INTEGER DEFAULT 0,
			related_quest TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS skill_snapshots (
			skill TEXT PRIMARY KEY,
			level INTEGER NOT NULL,
			xp INTEGER NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		// Completions outlive their task so the report keeps history after a remove.
		`CREATE TABLE IF NOT EXISTS task_completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id TEXT NOT NULL,
			name TEXT NOT NULL,
			completed_at DATETIME NOT NULL,
			xp_reward INTEGER NOT NULL,
			points_reward INTEGER NOT NULL,
			auto INTEGER DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);`,
		`CREATE INDEX IF NOT EXISTS idx_task_completions_completed_at ON task_completions(completed_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
