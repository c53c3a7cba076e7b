// Package tracker keeps the player's progress as reported by the game client:
// skills, quests, ticks, activity counters and play time.
package tracker

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/resolve109/solo-leveling/internal/skill"
)

// QuestPointsVarbit is the varbit the client stores quest points in.
const QuestPointsVarbit = 101

// Snapshot is the client state handed over on login.
type Snapshot struct {
	LoggedIn    bool                `json:"logged_in"`
	Levels      map[skill.Skill]int `json:"levels"`
	XP          map[skill.Skill]int `json:"xp"`
	QuestPoints int                 `json:"quest_points"`
	Quests      map[string]bool     `json:"quests"`
}

// State is the persisted part of a tracker.
type State struct {
	Levels      map[skill.Skill]int `json:"levels"`
	XP          map[skill.Skill]int `json:"xp"`
	QuestPoints int                 `json:"quest_points"`
	Quests      map[string]bool     `json:"quests"`
	GameTicks   int                 `json:"game_ticks"`
	PlayTime    time.Duration       `json:"play_time"`
	Activities  map[string]int      `json:"activities"`
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu sync.RWMutex

	levels      map[skill.Skill]int
	xp          map[skill.Skill]int
	questPoints int
	quests      map[string]bool

	sessionStart time.Time
	playTime     time.Duration
	gameTicks    int
	activities   map[string]int

	now func() time.Time
}

func New() *Tracker {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Tracker {
	return &Tracker{
		levels:       make(map[skill.Skill]int),
		xp:           make(map[skill.Skill]int),
		quests:       make(map[string]bool),
		activities:   make(map[string]int),
		now:          now,
		sessionStart: now(),
	}
}

// Initialize starts a session from the client snapshot. It does nothing when the
// player is not logged in.
func (t *Tracker) Initialize(s Snapshot) {
	if !s.LoggedIn {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.sessionStart = t.now()
	for k, v := range s.Levels {
		if k.IsValid() {
			t.levels[k] = v
		}
	}
	for k, v := range s.XP {
		if k.IsValid() {
			t.xp[k] = v
		}
	}
	t.questPoints = s.QuestPoints
	for name, done := range s.Quests {
		t.quests[name] = done
	}
}

// SetSkill records the latest level and experience for one skill. Overall is ignored.
func (t *Tracker) SetSkill(s skill.Skill, level, xp int) {
	if !s.IsValid() {
		return
	}
	t.mu.Lock()
	t.levels[s] = level
	t.xp[s] = xp
	t.mu.Unlock()
}

func (t *Tracker) Level(s skill.Skill) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.levels[s]
	return v, ok
}

func (t *Tracker) XP(s skill.Skill) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.xp[s]
	return v, ok
}

// Levels returns a copy of every tracked level.
func (t *Tracker) Levels() map[skill.Skill]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[skill.Skill]int, len(t.levels))
	for k, v := range t.levels {
		out[k] = v
	}
	return out
}

// TotalLevel sums tracked levels. Untracked skills count as level 1 once any skill
// is known, matching how the client reports a fresh account.
func (t *Tracker) TotalLevel() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.levels) == 0 {
		return 0
	}
	total := 0
	for _, s := range skill.Trainable() {
		if lvl, ok := t.levels[s]; ok {
			total += lvl
		} else {
			total += skill.MinLevel
		}
	}
	return total
}

func (t *Tracker) TotalXP() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var total int64
	for _, v := range t.xp {
		total += int64(v)
	}
	return total
}

func (t *Tracker) CombatLevel() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return skill.CombatLevel(t.levels)
}

func (t *Tracker) SetQuestPoints(qp int) {
	t.mu.Lock()
	t.questPoints = qp
	t.mu.Unlock()
}

func (t *Tracker) QuestPoints() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.questPoints
}

// UpdateQuests merges a quest state snapshot and returns, sorted, the quests that
// were not finished before and are now.
func (t *Tracker) UpdateQuests(states map[string]bool) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var newly []string
	for name, done := range states {
		if done && !t.quests[name] {
			newly = append(newly, name)
		}
		t.quests[name] = done
	}
	sort.Strings(newly)
	return newly
}

func (t *Tracker) QuestCompleted(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.quests[name]
}

// HasQuestCape reports whether every known quest is finished. With no quest data
// it is false.
func (t *Tracker) HasQuestCape() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.quests) == 0 {
		return false
	}
	for _, done := range t.quests {
		if !done {
			return false
		}
	}
	return true
}

func (t *Tracker) CompletedQuestCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, done := range t.quests {
		if done {
			n++
		}
	}
	return n
}

// PendingQuests lists known quests that are not finished yet, sorted by name.
func (t *Tracker) PendingQuests() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []string
	for name, done := range t.quests {
		if !done {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// RecordTick counts one game tick and returns the new total.
func (t *Tracker) RecordTick() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gameTicks++
	return t.gameTicks
}

func (t *Tracker) GameTicks() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.gameTicks
}

func (t *Tracker) RecordActivity(name string, n int) {
	t.mu.Lock()
	t.activities[name] += n
	t.mu.Unlock()
}

func (t *Tracker) ActivityCount(name string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activities[name]
}

// UpdateSessionTime folds the time since the session started into the total and
// starts a new session window.
func (t *Tracker) UpdateSessionTime() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if d := now.Sub(t.sessionStart); d > 0 {
		t.playTime += d
	}
	t.sessionStart = now
}

func (t *Tracker) PlayTime() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.playTime
}

func (t *Tracker) FormattedPlayTime() string {
	return FormatDuration(t.PlayTime())
}

// FormatDuration renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// Export copies the persisted state.
func (t *Tracker) Export() State {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := State{
		Levels:      make(map[skill.Skill]int, len(t.levels)),
		XP:          make(map[skill.Skill]int, len(t.xp)),
		QuestPoints: t.questPoints,
		Quests:      make(map[string]bool, len(t.quests)),
		GameTicks:   t.gameTicks,
		PlayTime:    t.playTime,
		Activities:  make(map[string]int, len(t.activities)),
	}
	for k, v := range t.levels {
		s.Levels[k] = v
	}
	for k, v := range t.xp {
		s.XP[k] = v
	}
	for k, v := range t.quests {
		s.Quests[k] = v
	}
	for k, v := range t.activities {
		s.Activities[k] = v
	}
	return s
}

// Restore replaces the tracked state and starts a new session window.
func (t *Tracker) Restore(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.levels = make(map[skill.Skill]int, len(s.Levels))
	for k, v := range s.Levels {
		if k.IsValid() {
			t.levels[k] = v
		}
	}
	t.xp = make(map[skill.Skill]int, len(s.XP))
	for k, v := range s.XP {
		if k.IsValid() {
			t.xp[k] = v
		}
	}
	t.quests = make(map[string]bool, len(s.Quests))
	for k, v := range s.Quests {
		t.quests[k] = v
	}
	t.activities = make(map[string]int, len(s.Activities))
	for k, v := range s.Activities {
		t.activities[k] = v
	}
	t.questPoints = s.QuestPoints
	t.gameTicks = s.GameTicks
	t.playTime = s.PlayTime
	t.sessionStart = t.now()
}
