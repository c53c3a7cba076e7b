package tracker

import (
	"testing"
	"time"

	"github.com/resolve109/solo-leveling/internal/skill"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker() (*Tracker, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewWithClock(clk.now), clk
}

func TestInitializeIgnoredWhenLoggedOut(t *testing.T) {
	tr, _ := newTestTracker()
	tr.Initialize(Snapshot{Levels: map[skill.Skill]int{skill.Attack: 50}})
	if _, ok := tr.Level(skill.Attack); ok {
		t.Fatalf("level tracked while logged out")
	}
	if got := tr.TotalLevel(); got != 0 {
		t.Fatalf("TotalLevel()=%d, want 0", got)
	}
}

func TestInitializeSkipsOverall(t *testing.T) {
	tr, _ := newTestTracker()
	tr.Initialize(Snapshot{
		LoggedIn: true,
		Levels:   map[skill.Skill]int{skill.Attack: 60, skill.Overall: 500},
		XP:       map[skill.Skill]int{skill.Attack: 273742, skill.Overall: 1},
	})
	if _, ok := tr.Level(skill.Overall); ok {
		t.Fatalf("Overall must not be tracked")
	}
	if got := tr.TotalLevel(); got != 60+22 {
		t.Fatalf("TotalLevel()=%d, want %d", got, 60+22)
	}
	if got := tr.TotalXP(); got != 273742 {
		t.Fatalf("TotalXP()=%d, want 273742", got)
	}
}

func TestUpdateQuestsReportsNewCompletions(t *testing.T) {
	tr, _ := newTestTracker()
	if tr.HasQuestCape() {
		t.Fatalf("HasQuestCape()=true with no quests known")
	}

	newly := tr.UpdateQuests(map[string]bool{"Cook's Assistant": true, "Dragon Slayer I": false})
	if len(newly) != 1 || newly[0] != "Cook's Assistant" {
		t.Fatalf("newly=%v, want [Cook's Assistant]", newly)
	}
	if again := tr.UpdateQuests(map[string]bool{"Cook's Assistant": true}); len(again) != 0 {
		t.Fatalf("second update newly=%v, want none", again)
	}
	if tr.HasQuestCape() {
		t.Fatalf("HasQuestCape()=true with a pending quest")
	}
	if got := tr.PendingQuests(); len(got) != 1 || got[0] != "Dragon Slayer I" {
		t.Fatalf("PendingQuests()=%v", got)
	}

	tr.UpdateQuests(map[string]bool{"Dragon Slayer I": true})
	if !tr.HasQuestCape() {
		t.Fatalf("HasQuestCape()=false with every quest done")
	}
	if got := tr.CompletedQuestCount(); got != 2 {
		t.Fatalf("CompletedQuestCount()=%d, want 2", got)
	}
	if !tr.QuestCompleted("Dragon Slayer I") || tr.QuestCompleted("Unknown") {
		t.Fatalf("QuestCompleted mismatch")
	}
}

func TestTicksAndActivities(t *testing.T) {
	tr, _ := newTestTracker()
	for i := 0; i < 3; i++ {
		tr.RecordTick()
	}
	if got := tr.GameTicks(); got != 3 {
		t.Fatalf("GameTicks()=%d, want 3", got)
	}
	tr.RecordActivity("barrows", 1)
	tr.RecordActivity("barrows", 4)
	if got := tr.ActivityCount("barrows"); got != 5 {
		t.Fatalf("ActivityCount=%d, want 5", got)
	}
	if got := tr.ActivityCount("zulrah"); got != 0 {
		t.Fatalf("ActivityCount(unknown)=%d, want 0", got)
	}
}

func TestPlayTimeAccumulates(t *testing.T) {
	tr, clk := newTestTracker()
	clk.advance(1*time.Hour + 2*time.Minute + 3*time.Second)
	tr.UpdateSessionTime()
	clk.advance(10 * time.Second)
	tr.UpdateSessionTime()

	if got := tr.FormattedPlayTime(); got != "01:02:13" {
		t.Fatalf("FormattedPlayTime()=%q, want 01:02:13", got)
	}
	if got := FormatDuration(30 * time.Hour); got != "30:00:00" {
		t.Fatalf("FormatDuration(30h)=%q", got)
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	tr, clk := newTestTracker()
	tr.SetSkill(skill.Mining, 45, 61512)
	tr.SetQuestPoints(12)
	tr.UpdateQuests(map[string]bool{"Lost City": true})
	tr.RecordTick()
	tr.RecordActivity("clues", 2)
	clk.advance(time.Minute)
	tr.UpdateSessionTime()

	other, _ := newTestTracker()
	other.Restore(tr.Export())

	if lvl, _ := other.Level(skill.Mining); lvl != 45 {
		t.Fatalf("Level(Mining)=%d, want 45", lvl)
	}
	if other.QuestPoints() != 12 || other.GameTicks() != 1 || other.ActivityCount("clues") != 2 {
		t.Fatalf("restored state mismatch: %+v", other.Export())
	}
	if other.PlayTime() != time.Minute {
		t.Fatalf("PlayTime()=%v, want 1m", other.PlayTime())
	}
	if !other.QuestCompleted("Lost City") {
		t.Fatalf("quest lost on restore")
	}
}
