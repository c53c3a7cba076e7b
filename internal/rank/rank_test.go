package rank

import (
	"testing"
	"time"

	"github.com/resolve109/solo-leveling/internal/skill"
)

func TestHunterRankTiers(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{0, "🟤 E-Rank Hunter"},
		{999, "🟤 E-Rank Hunter"},
		{1000, "⚪ D-Rank Hunter"},
		{1500, "🔸 C-Rank Hunter"},
		{1750, "🔷 B-Rank Hunter"},
		{2276, "💎 A-Rank Hunter"},
		{2277, "🌟 S-Rank Hunter"},
	}
	for _, tc := range cases {
		if got := HunterRank(tc.total, true, "ignored"); got != tc.want {
			t.Fatalf("HunterRank(%d)=%q, want %q", tc.total, got, tc.want)
		}
	}
	if got := HunterRank(2277, false, "Shadow Monarch"); got != "Shadow Monarch" {
		t.Fatalf("HunterRank custom off=%q, want Shadow Monarch", got)
	}
}

func TestPowerLevel(t *testing.T) {
	if got := PowerLevel(1000, 90, 100); got != 1000*5+90*50+100*25 {
		t.Fatalf("PowerLevel=%d", got)
	}
	if got := PowerLevel(0, 0, 0); got != 0 {
		t.Fatalf("PowerLevel(0,0,0)=%d, want 0", got)
	}
}

func TestNextMilestone(t *testing.T) {
	cases := map[int]string{
		32:   "Level 1000 Total",
		1000: "Level 1500 Total",
		1600: "Level 1750 Total",
		1999: "Level 2000 Total",
		2100: "Max Total Level",
		2277: "Legendary Status",
	}
	for total, want := range cases {
		if got := NextMilestone(total); got != want {
			t.Fatalf("NextMilestone(%d)=%q, want %q", total, got, want)
		}
	}
}

func TestRecentGainsWindowAndOrder(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC)
	last := map[skill.Skill]time.Time{
		skill.Attack:  now.Add(-12 * time.Second),
		skill.Mining:  now.Add(-3 * time.Minute),
		skill.Fishing: now.Add(-2 * time.Second),
	}
	got := RecentGains(last, now, 30*time.Second)
	if len(got) != 2 {
		t.Fatalf("len=%d, want 2", len(got))
	}
	if got[0].Skill != skill.Fishing || got[0].Label != "2s" {
		t.Fatalf("got[0]=%+v", got[0])
	}
	if got[1].Skill != skill.Attack || got[1].Label != "12s" {
		t.Fatalf("got[1]=%+v", got[1])
	}

	wide := RecentGains(last, now, 5*time.Minute)
	if len(wide) != 3 || wide[2].Label != "3m" {
		t.Fatalf("wide=%+v", wide)
	}
}

func TestBadges(t *testing.T) {
	p := Progress{
		TotalLevel:     1520,
		CombatLevel:    101,
		CompletedTasks: 10,
		Levels:         map[skill.Skill]int{skill.Cooking: 99},
	}
	list := Badges(p)
	earned := map[string]bool{}
	for _, b := range list {
		earned[b.ID] = b.Earned
	}
	for _, id := range []string{"awakened", "d_rank", "c_rank", "first_task", "raid_leader", "knight", "first_99"} {
		if !earned[id] {
			t.Fatalf("badge %s not earned", id)
		}
	}
	for _, id := range []string{"b_rank", "guild_master", "monarch", "quest_cape"} {
		if earned[id] {
			t.Fatalf("badge %s earned too early", id)
		}
	}
	if got := CountEarned(list); got != 7 {
		t.Fatalf("CountEarned=%d, want 7", got)
	}
}
