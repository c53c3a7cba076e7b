package storage

import (
	"context"
	"fmt"
)

type CompletionRepo struct {
	db DBTX
}

func NewCompletionRepo(db DBTX) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Insert(ctx context.Context, c Completion) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO task_completions (task_id, name, completed_at, xp_reward, points_reward, auto)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.TaskID, c.Name, c.CompletedAt.UTC(), c.XPReward, c.PointsReward, boolToInt(c.Auto))
	if err != nil {
		return 0, fmt.Errorf("completion insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("completion last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns up to limit completions, newest first. limit <= 0 means all.
func (r *CompletionRepo) ListRecent(ctx context.Context, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, name, completed_at, xp_reward, points_reward, auto
		FROM task_completions
		ORDER BY completed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var (
			c    Completion
			auto int
		)
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Name, &c.CompletedAt, &c.XPReward, &c.PointsReward, &auto); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		c.Auto = auto != 0
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion list rows: %w", err)
	}
	return out, nil
}

func (r *CompletionRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(xp_reward), 0), COALESCE(SUM(points_reward), 0)
		FROM task_completions
	`)
	if err := row.Scan(&t.Count, &t.XP, &t.Points); err != nil {
		return Totals{}, fmt.Errorf("completion totals: %w", err)
	}
	return t, nil
}
