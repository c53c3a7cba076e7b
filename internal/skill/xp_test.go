package skill

import "testing"

func TestXPBoundaries(t *testing.T) {
	if got := XPForLevel(1); got != 0 {
		t.Fatalf("XPForLevel(1)=%d, want 0", got)
	}
	if got := XPForLevel(2); got != 83 {
		t.Fatalf("XPForLevel(2)=%d, want 83", got)
	}
	if got := XPForLevel(99); got != 13_034_431 {
		t.Fatalf("XPForLevel(99)=%d, want 13034431", got)
	}

	l50 := XPForLevel(50)
	if got := LevelForXP(l50 - 1); got != 49 {
		t.Fatalf("LevelForXP(l50-1)=%d, want 49", got)
	}
	if got := LevelForXP(l50); got != 50 {
		t.Fatalf("LevelForXP(l50)=%d, want 50", got)
	}
	if got := LevelForXP(MaxXP); got != MaxLevel {
		t.Fatalf("LevelForXP(MaxXP)=%d, want %d", got, MaxLevel)
	}
	if got := LevelForXP(-5); got != MinLevel {
		t.Fatalf("LevelForXP(-5)=%d, want %d", got, MinLevel)
	}
}

func TestCombatLevel(t *testing.T) {
	if got := CombatLevel(nil); got != 3 {
		t.Fatalf("fresh account combat=%d, want 3", got)
	}

	maxed := map[Skill]int{}
	for _, s := range Trainable() {
		maxed[s] = 99
	}
	if got := CombatLevel(maxed); got != 126 {
		t.Fatalf("maxed combat=%d, want 126", got)
	}
}

func TestParse(t *testing.T) {
	cases := map[string]Skill{
		"attack":        Attack,
		" WOODCUTTING ": Woodcutting,
		"Runecrafting":  Runecraft,
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q)=%s, want %s", in, got, want)
		}
	}
	if _, err := Parse("Overall"); err == nil {
		t.Fatalf("expected error parsing Overall")
	}
	if len(Trainable()) != 23 {
		t.Fatalf("trainable skills=%d, want 23", len(Trainable()))
	}
}
