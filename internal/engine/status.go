package engine

import (
	"time"

	"github.com/resolve109/solo-leveling/internal/rank"
	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/task"
)

// Status is what the overlay shows.
type Status struct {
	HunterRank    string       `json:"hunter_rank"`
	TotalLevel    int          `json:"total_level"`
	TotalXP       int64        `json:"total_xp"`
	CombatLevel   int          `json:"combat_level"`
	QuestPoints   int          `json:"quest_points"`
	QuestsDone    int          `json:"quests_done"`
	PowerLevel    int          `json:"power_level"`
	NextMilestone string       `json:"next_milestone"`
	RecentGains   []rank.Gain  `json:"recent_gains"`
	PlayTime      string       `json:"play_time"`
	GameTicks     int          `json:"game_ticks"`
	GameState     GameState    `json:"game_state"`
	Tasks         TaskCounts   `json:"tasks"`
	Badges        []rank.Badge `json:"badges"`
}

type TaskCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Visible   int `json:"visible"`
}

// Tasks returns the visible tasks after the display filter.
func (s *Service) Tasks() []task.Task {
	return task.Filter(s.tasks.Visible(), s.Settings().TaskFilter())
}

func (s *Service) Status() Status {
	s.mu.Lock()
	settings := s.settings
	state := s.state
	last := make(map[skill.Skill]time.Time, len(s.lastGain))
	for k, v := range s.lastGain {
		last[k] = v
	}
	s.mu.Unlock()

	total := s.tracker.TotalLevel()
	combat := s.tracker.CombatLevel()
	qp := s.tracker.QuestPoints()
	completed := len(s.tasks.Completed())

	st := Status{
		HunterRank:    rank.HunterRank(total, settings.UseCustomRank, settings.HunterTitle),
		TotalLevel:    total,
		TotalXP:       s.tracker.TotalXP(),
		CombatLevel:   combat,
		QuestPoints:   qp,
		QuestsDone:    s.tracker.CompletedQuestCount(),
		PowerLevel:    rank.PowerLevel(total, combat, qp),
		NextMilestone: rank.NextMilestone(total),
		RecentGains:   rank.RecentGains(last, s.now(), settings.RecentXPWindow()),
		PlayTime:      s.tracker.FormattedPlayTime(),
		GameTicks:     s.tracker.GameTicks(),
		GameState:     state,
		Tasks: TaskCounts{
			Total:     s.tasks.Len(),
			Completed: completed,
			Visible:   len(s.tasks.Visible()),
		},
	}
	st.Badges = rank.Badges(rank.Progress{
		TotalLevel:     total,
		CombatLevel:    combat,
		QuestPoints:    qp,
		QuestCape:      s.tracker.HasQuestCape(),
		CompletedTasks: completed,
		Levels:         s.tracker.Levels(),
	})
	return st
}
