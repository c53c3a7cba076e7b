package skill

import "math"

const (
	MinLevel = 1
	MaxLevel = 99

	// MaxTotalLevel is every trainable skill at MaxLevel.
	MaxTotalLevel = 2277

	// MaxXP is the experience cap for a single skill.
	MaxXP = 200_000_000
)

// xpTable[l] is the experience required to reach level l. Index 0 is unused.
var xpTable = buildXPTable()

func buildXPTable() [MaxLevel + 1]int {
	var table [MaxLevel + 1]int
	points := 0.0
	for level := 1; level < MaxLevel; level++ {
		points += math.Floor(float64(level) + 300*math.Pow(2, float64(level)/7))
		table[level+1] = int(math.Floor(points / 4))
	}
	return table
}

// XPForLevel returns the experience threshold for level, clamped to [MinLevel, MaxLevel].
func XPForLevel(level int) int {
	if level <= MinLevel {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return xpTable[level]
}

// LevelForXP returns the highest level L such that xp >= XPForLevel(L).
func LevelForXP(xp int) int {
	if xp <= 0 {
		return MinLevel
	}

	low, high := MinLevel, MaxLevel+1
	for low+1 < high {
		mid := low + (high-low)/2
		if XPForLevel(mid) <= xp {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}

// CombatLevel applies the standard combat formula to real skill levels.
// Missing skills count as level 1, except Hitpoints which starts at 10.
func CombatLevel(levels map[Skill]int) int {
	lvl := func(s Skill, def int) float64 {
		if v, ok := levels[s]; ok && v > 0 {
			return float64(v)
		}
		return float64(def)
	}

	base := 0.25 * (lvl(Defence, 1) + lvl(Hitpoints, 10) + math.Floor(lvl(Prayer, 1)/2))
	melee := 0.325 * (lvl(Attack, 1) + lvl(Strength, 1))
	ranged := 0.325 * math.Floor(lvl(Ranged, 1)*3/2)
	magic := 0.325 * math.Floor(lvl(Magic, 1)*3/2)

	return int(math.Floor(base + math.Max(melee, math.Max(ranged, magic))))
}
