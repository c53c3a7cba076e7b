// Package task holds the flavor-text task list: the task model, an in-memory
// manager with derived views, a template generator and the display filter.
package task

import (
	"fmt"
	"strings"
	"time"
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota + 1
	DifficultyMedium
	DifficultyHard
	DifficultyElite
	DifficultyMaster
)

var difficultyNames = map[Difficulty]string{
	DifficultyEasy:   "EASY",
	DifficultyMedium: "MEDIUM",
	DifficultyHard:   "HARD",
	DifficultyElite:  "ELITE",
	DifficultyMaster: "MASTER",
}

// Difficulties lists every difficulty from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyElite, DifficultyMaster}
}

func (d Difficulty) IsValid() bool {
	return d >= DifficultyEasy && d <= DifficultyMaster
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid difficulty: %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

type Category string

const (
	CategoryCombat           Category = "COMBAT"
	CategorySkilling         Category = "SKILLING"
	CategoryExploration      Category = "EXPLORATION"
	CategoryMinigame         Category = "MINIGAME"
	CategoryQuest            Category = "QUEST"
	CategoryAchievementDiary Category = "ACHIEVEMENT_DIARY"
	CategoryCollectionLog    Category = "COLLECTION_LOG"
	CategoryMiscellaneous    Category = "MISCELLANEOUS"
)

var categoryNames = []struct {
	c    Category
	name string
}{
	{CategoryCombat, "Combat"},
	{CategorySkilling, "Skilling"},
	{CategoryExploration, "Exploration"},
	{CategoryMinigame, "Minigame"},
	{CategoryQuest, "Quest"},
	{CategoryAchievementDiary, "Achievement Diary"},
	{CategoryCollectionLog, "Collection Log"},
	{CategoryMiscellaneous, "Miscellaneous"},
}

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for _, e := range categoryNames {
		out = append(out, e.c)
	}
	return out
}

func (c Category) DisplayName() string {
	for _, e := range categoryNames {
		if e.c == c {
			return e.name
		}
	}
	return string(c)
}

func (c Category) IsValid() bool {
	for _, e := range categoryNames {
		if e.c == c {
			return true
		}
	}
	return false
}

type Source string

const (
	SourceLeagueRagingEchoes Source = "LEAGUE_RAGING_ECHOES"
	SourceLeagueTrailblazer  Source = "LEAGUE_TRAILBLAZER"
	SourceQuest              Source = "QUEST"
	SourceCustom             Source = "CUSTOM"
	SourceCombatAchievement  Source = "COMBAT_ACHIEVEMENT"
	SourceAchievementDiary   Source = "ACHIEVEMENT_DIARY"
	SourceCollectionLog      Source = "COLLECTION_LOG"
	SourceSkillProgression   Source = "SKILL_PROGRESSION"
	SourceEquipmentUpgrade   Source = "EQUIPMENT_UPGRADE"
	SourceBossChallenge      Source = "BOSS_CHALLENGE"
	SourceMinigameMastery    Source = "MINIGAME_MASTERY"
)

var sourceNames = []struct {
	s    Source
	name string
}{
	{SourceLeagueRagingEchoes, "Raging Echoes League"},
	{SourceLeagueTrailblazer, "Trailblazer Reloaded League"},
	{SourceQuest, "OSRS Quest"},
	{SourceCustom, "Custom"},
	{SourceCombatAchievement, "Combat Achievement"},
	{SourceAchievementDiary, "Achievement Diary"},
	{SourceCollectionLog, "Collection Log"},
	{SourceSkillProgression, "Skill Progression"},
	{SourceEquipmentUpgrade, "Equipment Upgrade"},
	{SourceBossChallenge, "Boss Challenge"},
	{SourceMinigameMastery, "Minigame Mastery"},
}

// Sources lists every source in declaration order.
func Sources() []Source {
	out := make([]Source, 0, len(sourceNames))
	for _, e := range sourceNames {
		out = append(out, e.s)
	}
	return out
}

func (s Source) DisplayName() string {
	for _, e := range sourceNames {
		if e.s == s {
			return e.name
		}
	}
	return string(s)
}

func (s Source) IsValid() bool {
	for _, e := range sourceNames {
		if e.s == s {
			return true
		}
	}
	return false
}

// IsLeague reports whether the task comes from one of the seasonal leagues.
func (s Source) IsLeague() bool {
	return s == SourceLeagueRagingEchoes || s == SourceLeagueTrailblazer
}

// Task is a flavor-text to-do entry.
type Task struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Difficulty       Difficulty `json:"difficulty"`
	Category         Category   `json:"category"`
	Source           Source     `json:"source"`
	Completed        bool       `json:"completed"`
	Visible          bool       `json:"visible"`
	ExperienceReward int        `json:"experience_reward"`
	PointsReward     int        `json:"points_reward"`

	// RelatedQuest names the quest whose completion finishes this task, if any.
	RelatedQuest string    `json:"related_quest,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasReward reports whether completing the task grants anything.
func (t Task) HasReward() bool {
	return t.ExperienceReward > 0 || t.PointsReward > 0
}

func (t Task) validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidTask)
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required (task %s)", ErrInvalidTask, t.ID)
	}
	if !t.Difficulty.IsValid() {
		return fmt.Errorf("%w: invalid difficulty %d (task %s)", ErrInvalidTask, int(t.Difficulty), t.ID)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: invalid category %q (task %s)", ErrInvalidTask, t.Category, t.ID)
	}
	if !t.Source.IsValid() {
		return fmt.Errorf("%w: invalid source %q (task %s)", ErrInvalidTask, t.Source, t.ID)
	}
	if t.ExperienceReward < 0 || t.PointsReward < 0 {
		return fmt.Errorf("%w: rewards must not be negative (task %s)", ErrInvalidTask, t.ID)
	}
	return nil
}
