package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/resolve109/solo-leveling/internal/skill"
)

type SnapshotRepo struct {
	db DBTX
}

func NewSnapshotRepo(db DBTX) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// SaveAll upserts one row per skill present in levels.
func (r *SnapshotRepo) SaveAll(ctx context.Context, levels, xp map[skill.Skill]int, at time.Time) error {
	for s, lvl := range levels {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO skill_snapshots (skill, level, xp, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(skill) DO UPDATE SET
				level = excluded.level,
				xp = excluded.xp,
				updated_at = excluded.updated_at
		`, string(s), lvl, xp[s], at.UTC())
		if err != nil {
			return fmt.Errorf("snapshot save %s: %w", s, err)
		}
	}
	return nil
}

func (r *SnapshotRepo) ListAll(ctx context.Context) ([]SkillSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT skill, level, xp, updated_at FROM skill_snapshots ORDER BY skill`)
	if err != nil {
		return nil, fmt.Errorf("snapshot list: %w", err)
	}
	defer rows.Close()

	var out []SkillSnapshot
	for rows.Next() {
		var (
			s    SkillSnapshot
			name string
		)
		if err := rows.Scan(&name, &s.Level, &s.XP, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("snapshot scan: %w", err)
		}
		s.Skill = skill.Skill(name)
		if !s.Skill.IsValid() {
			continue
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot list rows: %w", err)
	}
	return out, nil
}
