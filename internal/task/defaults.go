package task

import "time"

// DefaultTasks returns the built-in league and quest tasks.
func DefaultTasks(now time.Time) []Task {
	tasks := []Task{
		// Raging Echoes league, combat.
		{
			ID:               "rel_combat_1",
			Name:             "Defeat the King Black Dragon",
			Description:      "Defeat the King Black Dragon in the Wilderness.",
			Difficulty:       DifficultyMedium,
			Category:         CategoryCombat,
			Source:           SourceLeagueRagingEchoes,
			ExperienceReward: 5000,
			PointsReward:     50,
		},
		{
			ID:               "rel_combat_2",
			Name:             "Defeat Zulrah",
			Description:      "Defeat the toxic serpent, Zulrah.",
			Difficulty:       DifficultyHard,
			Category:         CategoryCombat,
			Source:           SourceLeagueRagingEchoes,
			ExperienceReward: 10000,
			PointsReward:     100,
		},
		// Trailblazer Reloaded league, skilling.
		{
			ID:               "trl_skilling_1",
			Name:             "Reach Level 70 in a Skill",
			Description:      "Reach level 70 in any skill.",
			Difficulty:       DifficultyMedium,
			Category:         CategorySkilling,
			Source:           SourceLeagueTrailblazer,
			ExperienceReward: 7000,
			PointsReward:     70,
		},
		{
			ID:               "trl_skilling_2",
			Name:             "Reach Level 99 in a Skill",
			Description:      "Reach level 99 in any skill.",
			Difficulty:       DifficultyMaster,
			Category:         CategorySkilling,
			Source:           SourceLeagueTrailblazer,
			ExperienceReward: 25000,
			PointsReward:     250,
		},
		{
			ID:               "quest_1",
			Name:             "Complete Cook's Assistant",
			Description:      "Help the cook in Lumbridge Castle to make a cake.",
			Difficulty:       DifficultyEasy,
			Category:         CategoryQuest,
			Source:           SourceQuest,
			ExperienceReward: 1000,
			PointsReward:     10,
			RelatedQuest:     "Cook's Assistant",
		},
		{
			ID:               "quest_2",
			Name:             "Complete Dragon Slayer",
			Description:      "Slay the mighty dragon Elvarg on Crandor Island.",
			Difficulty:       DifficultyHard,
			Category:         CategoryQuest,
			Source:           SourceQuest,
			ExperienceReward: 15000,
			PointsReward:     150,
			RelatedQuest:     "Dragon Slayer I",
		},
		{
			ID:               "quest_3",
			Name:             "Complete Dragon Slayer II",
			Description:      "Investigate the Dragonkin and face a new dragon threat.",
			Difficulty:       DifficultyMaster,
			Category:         CategoryQuest,
			Source:           SourceQuest,
			ExperienceReward: 30000,
			PointsReward:     300,
			RelatedQuest:     "Dragon Slayer II",
		},
	}
	return stamp(tasks, now)
}

// StarterTasks are added on start so a fresh hunter always has something to do.
func StarterTasks(now time.Time) []Task {
	tasks := []Task{
		{
			ID:               "initial_task_1",
			Name:             "Begin your journey",
			Description:      "Start leveling your skills and becoming stronger",
			Difficulty:       DifficultyEasy,
			Category:         CategorySkilling,
			Source:           SourceCustom,
			ExperienceReward: 1000,
			PointsReward:     50,
		},
		{
			ID:               "initial_combat_1",
			Name:             "Defeat a goblin",
			Description:      "Start your combat journey by defeating a goblin",
			Difficulty:       DifficultyEasy,
			Category:         CategoryCombat,
			Source:           SourceCustom,
			ExperienceReward: 500,
			PointsReward:     25,
		},
	}
	return stamp(tasks, now)
}

func stamp(tasks []Task, now time.Time) []Task {
	for i := range tasks {
		tasks[i].Visible = true
		tasks[i].CreatedAt = now
	}
	return tasks
}
