package rank

import "github.com/resolve109/solo-leveling/internal/skill"

// Badge is a milestone the hunter can earn.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

// Progress is the input badges are computed from.
type Progress struct {
	TotalLevel     int
	CombatLevel    int
	QuestPoints    int
	QuestCape      bool
	CompletedTasks int
	Levels         map[skill.Skill]int
}

// Badges lists every badge with its earned flag.
func Badges(p Progress) []Badge {
	return []Badge{
		totalBadge("awakened", "Awakened", "Reach 500 total level", "🌱", p, 500),
		totalBadge("d_rank", "D-Rank Licence", "Reach 1000 total level", "⚪", p, 1000),
		totalBadge("c_rank", "C-Rank Licence", "Reach 1500 total level", "🔸", p, 1500),
		totalBadge("b_rank", "B-Rank Licence", "Reach 1750 total level", "🔷", p, 1750),
		totalBadge("a_rank", "A-Rank Licence", "Reach 2000 total level", "💎", p, 2000),
		totalBadge("s_rank", "National Level Hunter", "Reach max total level", "🌟", p, skill.MaxTotalLevel),

		taskBadge("first_task", "First Dungeon", "Complete 1 task", "✓", p, 1),
		taskBadge("raid_leader", "Raid Leader", "Complete 10 tasks", "📋", p, 10),
		taskBadge("guild_master", "Guild Master", "Complete 50 tasks", "🏅", p, 50),

		combatBadge("knight", "Knight", "Reach combat level 100", "⚔️", p, 100),
		combatBadge("monarch", "Monarch", "Reach combat level 126", "👑", p, 126),

		skillBadge("first_99", "Limit Breaker", "Reach level 99 in any skill", "🔥", p, skill.MaxLevel),
		{ID: "quest_cape", Name: "Shadow Extraction", Description: "Complete every quest", Icon: "📜", Earned: p.QuestCape},
	}
}

// CountEarned returns how many badges in list are earned.
func CountEarned(list []Badge) int {
	n := 0
	for _, b := range list {
		if b.Earned {
			n++
		}
	}
	return n
}

func totalBadge(id, name, desc, icon string, p Progress, level int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Icon: icon, Earned: p.TotalLevel >= level}
}

func taskBadge(id, name, desc, icon string, p Progress, count int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Icon: icon, Earned: p.CompletedTasks >= count}
}

func combatBadge(id, name, desc, icon string, p Progress, level int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Icon: icon, Earned: p.CombatLevel >= level}
}

func skillBadge(id, name, desc, icon string, p Progress, level int) Badge {
	earned := false
	for _, lvl := range p.Levels {
		if lvl >= level {
			earned = true
			break
		}
	}
	return Badge{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}
