// Package rank derives the hunter-themed standing shown in the overlay from the
// player's totals.
package rank

import (
	"fmt"
	"sort"
	"time"

	"github.com/resolve109/solo-leveling/internal/skill"
)

// Tier thresholds on total level, highest first.
var tiers = []struct {
	min   int
	title string
}{
	{skill.MaxTotalLevel, "🌟 S-Rank Hunter"},
	{2000, "💎 A-Rank Hunter"},
	{1750, "🔷 B-Rank Hunter"},
	{1500, "🔸 C-Rank Hunter"},
	{1000, "⚪ D-Rank Hunter"},
	{0, "🟤 E-Rank Hunter"},
}

// HunterRank returns the tier title for totalLevel, or title itself when the
// custom rank is disabled.
func HunterRank(totalLevel int, useCustom bool, title string) string {
	if !useCustom {
		return title
	}
	for _, t := range tiers {
		if totalLevel >= t.min {
			return t.title
		}
	}
	return tiers[len(tiers)-1].title
}

const (
	powerPerTotalLevel = 5
	powerPerCombat     = 50
	powerPerQuestPoint = 25
)

func PowerLevel(totalLevel, combatLevel, questPoints int) int {
	return totalLevel*powerPerTotalLevel + combatLevel*powerPerCombat + questPoints*powerPerQuestPoint
}

func NextMilestone(totalLevel int) string {
	switch {
	case totalLevel < 1000:
		return "Level 1000 Total"
	case totalLevel < 1500:
		return "Level 1500 Total"
	case totalLevel < 1750:
		return "Level 1750 Total"
	case totalLevel < 2000:
		return "Level 2000 Total"
	case totalLevel < skill.MaxTotalLevel:
		return "Max Total Level"
	default:
		return "Legendary Status"
	}
}

// Gain is a skill that gained experience recently.
type Gain struct {
	Skill skill.Skill   `json:"skill"`
	Age   time.Duration `json:"age"`
	Label string        `json:"label"`
}

// RecentGains returns the skills whose last gain is within window of now,
// most recent first.
func RecentGains(last map[skill.Skill]time.Time, now time.Time, window time.Duration) []Gain {
	out := []Gain{}
	for s, at := range last {
		age := now.Sub(at)
		if age < 0 {
			age = 0
		}
		if age > window {
			continue
		}
		out = append(out, Gain{Skill: s, Age: age, Label: AgeLabel(age)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Age == out[j].Age {
			return out[i].Skill < out[j].Skill
		}
		return out[i].Age < out[j].Age
	})
	return out
}

// AgeLabel renders "12s" under a minute and whole minutes ("3m") above.
func AgeLabel(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm", secs/60)
}
