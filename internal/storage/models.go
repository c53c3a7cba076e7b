package storage

import (
	"time"

	"github.com/resolve109/solo-leveling/internal/skill"
)

const MainPlayerKey = "main_user"

type Player struct {
	Key         string
	QuestPoints int
	GameTicks   int
	PlayTime    time.Duration
	Quests      map[string]bool
	Activities  map[string]int
	UpdatedAt   time.Time
}

type SkillSnapshot struct {
	Skill     skill.Skill
	Level     int
	XP        int
	UpdatedAt time.Time
}

type Completion struct {
	ID           int64     `json:"id"`
	TaskID       string    `json:"task_id"`
	Name         string    `json:"name"`
	CompletedAt  time.Time `json:"completed_at"`
	XPReward     int       `json:"xp_reward"`
	PointsReward int       `json:"points_reward"`
	Auto         bool      `json:"auto"`
}

// Totals aggregates every recorded completion.
type Totals struct {
	Count  int   `json:"count"`
	XP     int64 `json:"xp"`
	Points int64 `json:"points"`
}
