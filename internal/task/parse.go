package task

import (
	"fmt"
	"strings"
)

// normalizeEnum turns "Achievement Diary", "achievement-diary" and
// "achievement_diary" into "ACHIEVEMENT_DIARY".
func normalizeEnum(input string) string {
	s := strings.TrimSpace(strings.ToUpper(input))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

// ParseDifficulty accepts names ("hard") and 1-based ranks ("3").
func ParseDifficulty(input string) (Difficulty, error) {
	s := normalizeEnum(input)
	for d, name := range difficultyNames {
		if name == s {
			return d, nil
		}
	}
	if len(s) == 1 && s[0] >= '1' && s[0] <= '5' {
		return Difficulty(s[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid difficulty: %q", input)
}

func ParseCategory(input string) (Category, error) {
	s := normalizeEnum(input)
	for _, e := range categoryNames {
		if string(e.c) == s || normalizeEnum(e.name) == s {
			return e.c, nil
		}
	}
	return "", fmt.Errorf("invalid category: %q", input)
}

// ParseSource accepts enum names and display names ("OSRS Quest", "custom").
func ParseSource(input string) (Source, error) {
	s := normalizeEnum(input)
	for _, e := range sourceNames {
		if string(e.s) == s || normalizeEnum(e.name) == s {
			return e.s, nil
		}
	}
	return "", fmt.Errorf("invalid source: %q", input)
}
