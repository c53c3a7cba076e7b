// Package skill describes the trainable skills exposed by the game client and the
// experience curve they share.
package skill

import (
	"fmt"
	"strings"
)

type Skill string

const (
	Attack       Skill = "Attack"
	Defence      Skill = "Defence"
	Strength     Skill = "Strength"
	Hitpoints    Skill = "Hitpoints"
	Ranged       Skill = "Ranged"
	Prayer       Skill = "Prayer"
	Magic        Skill = "Magic"
	Cooking      Skill = "Cooking"
	Woodcutting  Skill = "Woodcutting"
	Fletching    Skill = "Fletching"
	Fishing      Skill = "Fishing"
	Firemaking   Skill = "Firemaking"
	Crafting     Skill = "Crafting"
	Smithing     Skill = "Smithing"
	Mining       Skill = "Mining"
	Herblore     Skill = "Herblore"
	Agility      Skill = "Agility"
	Thieving     Skill = "Thieving"
	Slayer       Skill = "Slayer"
	Farming      Skill = "Farming"
	Runecraft    Skill = "Runecraft"
	Hunter       Skill = "Hunter"
	Construction Skill = "Construction"

	// Overall is the aggregate row. It is never tracked as a skill of its own.
	Overall Skill = "Overall"
)

// hiscoreOrder is the order skills appear in the hiscores lite endpoint, after Overall.
var hiscoreOrder = []Skill{
	Attack, Defence, Strength, Hitpoints, Ranged, Prayer, Magic, Cooking,
	Woodcutting, Fletching, Fishing, Firemaking, Crafting, Smithing, Mining,
	Herblore, Agility, Thieving, Slayer, Farming, Runecraft, Hunter, Construction,
}

// Trainable returns every skill except Overall, in hiscore order.
func Trainable() []Skill {
	out := make([]Skill, len(hiscoreOrder))
	copy(out, hiscoreOrder)
	return out
}

func (s Skill) IsValid() bool {
	for _, k := range hiscoreOrder {
		if k == s {
			return true
		}
	}
	return false
}

func (s Skill) String() string { return string(s) }

// Parse resolves a skill name case-insensitively ("woodcutting", "WOODCUTTING").
func Parse(input string) (Skill, error) {
	in := strings.TrimSpace(input)
	for _, k := range hiscoreOrder {
		if strings.EqualFold(string(k), in) {
			return k, nil
		}
	}
	// Common alias used by older clients.
	if strings.EqualFold(in, "runecrafting") {
		return Runecraft, nil
	}
	return "", fmt.Errorf("unknown skill: %q", input)
}

func (s Skill) Emoji() string {
	switch s {
	case Attack:
		return "⚔️"
	case Defence:
		return "🛡️"
	case Strength:
		return "💪"
	case Hitpoints:
		return "❤️"
	case Ranged, Fletching, Hunter:
		return "🏹"
	case Prayer:
		return "🙏"
	case Magic, Runecraft:
		return "🔮"
	case Cooking:
		return "🍳"
	case Woodcutting:
		return "🪓"
	case Fishing:
		return "🎣"
	case Firemaking:
		return "🔥"
	case Crafting:
		return "🛠️"
	case Smithing:
		return "⚒️"
	case Mining:
		return "⛏️"
	case Herblore:
		return "🧪"
	case Agility:
		return "🏃"
	case Thieving:
		return "🗝️"
	case Slayer:
		return "💀"
	case Farming:
		return "🌱"
	case Construction:
		return "🏠"
	default:
		return "⭐"
	}
}
