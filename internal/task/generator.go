package task

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resolve109/solo-leveling/internal/skill"
)

const (
	RandomPrefix       = "random_"
	PersonalizedPrefix = "personalized_"
	QuestPrefix        = "quest_gen_"
)

// reward is the XP and point payout of a generated task.
type reward struct {
	xp     int
	points int
	count  int // how many kills/games/items the template asks for
}

var rewardsByDifficulty = map[Difficulty]reward{
	DifficultyEasy:   {xp: 500, points: 10, count: 5},
	DifficultyMedium: {xp: 2000, points: 25, count: 10},
	DifficultyHard:   {xp: 5000, points: 50, count: 25},
	DifficultyElite:  {xp: 10000, points: 100, count: 50},
	DifficultyMaster: {xp: 25000, points: 250, count: 100},
}

var (
	monsters = []string{
		"Goblin", "Hill Giant", "Moss Giant", "Skeleton", "Zombie", "Ghost",
		"Bandit", "Farmer", "Guard", "Lesser Demon", "Greater Demon", "Black Demon",
		"Green Dragon", "Blue Dragon", "Red Dragon", "Black Dragon", "Iron Dragon", "Steel Dragon",
		"Abyssal Demon", "Dark Beast", "Cave Kraken", "Gargoyle", "Nechryael", "Spiritual Mage",
	}
	items = []string{
		"Bones", "Big Bones", "Feathers", "Runes", "Herbs", "Gems",
		"Coal", "Iron Ore", "Gold Ore", "Mithril Ore", "Adamantite Ore", "Runite Ore",
		"Logs", "Oak Logs", "Willow Logs", "Maple Logs", "Yew Logs", "Magic Logs",
		"Raw Shrimp", "Raw Trout", "Raw Salmon", "Raw Lobster", "Raw Swordfish", "Raw Shark",
	}
	regions = []string{
		"Varrock", "Falador", "Morytania", "Kandarin", "Karamja", "the Fremennik Province",
		"the Kharidian Desert", "Tirannwn", "the Wilderness", "Kourend",
	}
	minigames = []string{
		"Pest Control", "Barbarian Assault", "Castle Wars", "Wintertodt",
		"Tempoross", "Guardians of the Rift", "Soul Wars", "Last Man Standing",
	}
	collectionItems = []string{
		"a Dragon Warhammer", "a Granite Maul", "a pet", "an Abyssal Whip",
		"a Dragon Pickaxe", "a Trident of the Seas", "a Fire Cape", "a Barrows item",
	}
	questNames = []string{
		"Cook's Assistant", "Dragon Slayer I", "Dragon Slayer II", "Monkey Madness I",
		"Recipe for Disaster", "Desert Treasure I", "Lost City", "Underground Pass",
		"Regicide", "Song of the Elves", "Sins of the Father", "While Guthix Sleeps",
	}
	// Quest-cape holders get rematch challenges instead.
	capeChallenges = []struct{ name, desc string }{
		{"Rematch the Culinaromancer", "Defeat the Culinaromancer again in the Lumbridge basement."},
		{"Challenge the Dessous", "Return to the desert and best a Desert Treasure foe without prayer."},
		{"Revisit Galvek", "Face the fire of Galvek once more and walk away victorious."},
		{"Endure the Gauntlet", "Complete the Gauntlet to prove the elves' trials still bow to you."},
	}
)

// Generator builds flavor tasks from templates. It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	newID func() string
	now   func() time.Time
}

// NewGenerator uses rnd for every random choice. A nil rnd is seeded from the clock.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		rnd:   rnd,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// RandomDifficulty is weighted towards easier tasks: 40% easy, 30% medium,
// 20% hard, 5% elite, 5% master.
func (g *Generator) RandomDifficulty() Difficulty {
	g.mu.Lock()
	r := g.rnd.Float64()
	g.mu.Unlock()

	switch {
	case r < 0.4:
		return DifficultyEasy
	case r < 0.7:
		return DifficultyMedium
	case r < 0.9:
		return DifficultyHard
	case r < 0.95:
		return DifficultyElite
	default:
		return DifficultyMaster
	}
}

func (g *Generator) RandomCategory() Category {
	cats := Categories()
	return cats[g.intn(len(cats))]
}

func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Intn(n)
}

func (g *Generator) pick(list []string) string {
	return list[g.intn(len(list))]
}

// Random builds a template task for the given difficulty and category.
func (g *Generator) Random(d Difficulty, c Category) Task {
	if !d.IsValid() {
		d = DifficultyEasy
	}
	if !c.IsValid() {
		c = CategoryMiscellaneous
	}
	rw := rewardsByDifficulty[d]

	var name, desc string
	source := SourceCustom
	switch c {
	case CategoryCombat:
		monster := g.pick(monsters)
		name = fmt.Sprintf("Defeat %d %ss", rw.count, monster)
		desc = fmt.Sprintf("Hunt down %d %ss to prove your strength.", rw.count, monster)
		source = SourceBossChallenge
	case CategorySkilling:
		s := g.pickSkill()
		name = fmt.Sprintf("Gain a level in %s", s)
		desc = fmt.Sprintf("Train %s until you reach your next level.", s)
		source = SourceSkillProgression
	case CategoryExploration:
		region := g.pick(regions)
		name = fmt.Sprintf("Scout %s", region)
		desc = fmt.Sprintf("Travel to %s and uncover its secrets.", region)
	case CategoryMinigame:
		game := g.pick(minigames)
		games := rw.count / 5
		if games < 1 {
			games = 1
		}
		name = fmt.Sprintf("Complete %d games of %s", games, game)
		desc = fmt.Sprintf("Show your mastery in %s.", game)
		source = SourceMinigameMastery
	case CategoryQuest:
		quest := g.pick(questNames)
		name = fmt.Sprintf("Complete %s", quest)
		desc = fmt.Sprintf("Finish the quest %s.", quest)
	case CategoryAchievementDiary:
		region := g.pick(regions)
		name = fmt.Sprintf("Complete a %s diary task in %s", strings.ToLower(d.String()), region)
		desc = fmt.Sprintf("Make progress on the %s achievement diary.", region)
		source = SourceAchievementDiary
	case CategoryCollectionLog:
		item := g.pick(collectionItems)
		name = fmt.Sprintf("Obtain %s", item)
		desc = fmt.Sprintf("Add %s to your collection log.", item)
		source = SourceCollectionLog
	default:
		item := g.pick(items)
		name = fmt.Sprintf("Collect %d %s", rw.count*10, item)
		desc = fmt.Sprintf("Gather %d %s for the Hunters Association.", rw.count*10, item)
	}

	return Task{
		ID:               RandomPrefix + g.newID(),
		Name:             name,
		Description:      desc,
		Difficulty:       d,
		Category:         c,
		Source:           source,
		Visible:          true,
		ExperienceReward: rw.xp,
		PointsReward:     rw.points,
		CreatedAt:        g.now().UTC(),
	}
}

func (g *Generator) pickSkill() skill.Skill {
	skills := skill.Trainable()
	return skills[g.intn(len(skills))]
}

// Personalized builds a skilling task scaled to the player's current level.
func (g *Generator) Personalized(s skill.Skill, level int) Task {
	d := DifficultyForLevel(level)
	rw := rewardsByDifficulty[d]
	action := SkillingAction(s)
	entity := SkillEntityForLevel(s, level)
	amount := rw.count * 20

	return Task{
		ID:               PersonalizedPrefix + g.newID(),
		Name:             fmt.Sprintf("%s %d %s", action, amount, entity),
		Description:      fmt.Sprintf("%s %s at level %d to push past your limits.", s.Emoji(), s, level),
		Difficulty:       d,
		Category:         CategorySkilling,
		Source:           SourceSkillProgression,
		Visible:          true,
		ExperienceReward: rw.xp,
		PointsReward:     rw.points,
		CreatedAt:        g.now().UTC(),
	}
}

// Quest builds a quest challenge. When pending quests exist one of them becomes the
// target and completing it in game finishes the task; otherwise a rematch
// challenge is returned.
func (g *Generator) Quest(pending []string) Task {
	d := g.RandomDifficulty()
	rw := rewardsByDifficulty[d]
	t := Task{
		ID:               QuestPrefix + g.newID(),
		Difficulty:       d,
		Category:         CategoryQuest,
		Source:           SourceQuest,
		Visible:          true,
		ExperienceReward: rw.xp,
		PointsReward:     rw.points,
		CreatedAt:        g.now().UTC(),
	}

	if len(pending) > 0 {
		quest := pending[g.intn(len(pending))]
		t.Name = fmt.Sprintf("Complete %s", quest)
		t.Description = fmt.Sprintf("The System has issued a quest: finish %s.", quest)
		t.RelatedQuest = quest
		return t
	}

	c := capeChallenges[g.intn(len(capeChallenges))]
	t.Name = c.name
	t.Description = c.desc
	return t
}

// DifficultyForLevel scales personalized tasks with the skill level.
func DifficultyForLevel(level int) Difficulty {
	switch {
	case level < 30:
		return DifficultyEasy
	case level < 50:
		return DifficultyMedium
	case level < 70:
		return DifficultyHard
	case level < 90:
		return DifficultyElite
	default:
		return DifficultyMaster
	}
}

func SkillingAction(s skill.Skill) string {
	switch s {
	case skill.Mining:
		return "Mine"
	case skill.Fishing:
		return "Catch"
	case skill.Woodcutting:
		return "Cut"
	case skill.Cooking:
		return "Cook"
	case skill.Smithing:
		return "Smith"
	default:
		return "Train"
	}
}

func SkillEntityForLevel(s skill.Skill, level int) string {
	switch s {
	case skill.Woodcutting:
		switch {
		case level < 30:
			return "oak logs"
		case level < 45:
			return "willow logs"
		case level < 60:
			return "maple logs"
		default:
			return "yew logs"
		}
	case skill.Fishing:
		switch {
		case level < 40:
			return "trout"
		case level < 60:
			return "lobsters"
		default:
			return "sharks"
		}
	default:
		return "resources"
	}
}

// IsGenerated reports whether the task came from the random or personalized generator.
func IsGenerated(t Task) bool {
	return strings.HasPrefix(t.ID, RandomPrefix) || strings.HasPrefix(t.ID, PersonalizedPrefix)
}
