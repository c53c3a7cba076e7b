package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/resolve109/solo-leveling/internal/task"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, name, description, difficulty, category, source, completed, visible,
	xp_reward, points_reward, related_quest, created_at`

// ReplaceAll stores tasks as the full list, keeping their order. Call it inside
// WithTx so readers never see a partial list.
func (r *TaskRepo) ReplaceAll(ctx context.Context, tasks []task.Task) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("task clear: %w", err)
	}
	for i, t := range tasks {
		if err := r.upsert(ctx, i, t); err != nil {
			return err
		}
	}
	return nil
}

// Upsert inserts or updates one task, appending new ones at the end.
func (r *TaskRepo) Upsert(ctx context.Context, t task.Task) error {
	var pos int
	err := r.db.QueryRowContext(ctx, `SELECT position FROM tasks WHERE id = ?`, t.ID).Scan(&pos)
	if err == sql.ErrNoRows {
		err = r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM tasks`).Scan(&pos)
	}
	if err != nil {
		return fmt.Errorf("task position: %w", err)
	}
	return r.upsert(ctx, pos, t)
}

func (r *TaskRepo) upsert(ctx context.Context, pos int, t task.Task) error {
	var related *string
	if t.RelatedQuest != "" {
		related = &t.RelatedQuest
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, position, name, description, difficulty, category, source,
			completed, visible, xp_reward, points_reward, related_quest, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position = excluded.position,
			name = excluded.name,
			description = excluded.description,
			difficulty = excluded.difficulty,
			category = excluded.category,
			source = excluded.source,
			completed = excluded.completed,
			visible = excluded.visible,
			xp_reward = excluded.xp_reward,
			points_reward = excluded.points_reward,
			related_quest = excluded.related_quest
	`, t.ID, pos, t.Name, t.Description, int(t.Difficulty), string(t.Category), string(t.Source),
		boolToInt(t.Completed), boolToInt(t.Visible), t.ExperienceReward, t.PointsReward, related, t.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("task upsert %s: %w", t.ID, err)
	}
	return nil
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		t                  task.Task
		description        sql.NullString
		related            sql.NullString
		difficulty         int
		category, source   string
		completed, visible int
	)
	if err := row.Scan(&t.ID, &t.Name, &description, &difficulty, &category, &source,
		&completed, &visible, &t.ExperienceReward, &t.PointsReward, &related, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Description = description.String
	t.RelatedQuest = related.String
	t.Difficulty = task.Difficulty(difficulty)
	t.Category = task.Category(category)
	t.Source = task.Source(source)
	t.Completed = completed != 0
	t.Visible = visible != 0
	return &t, nil
}
