// Package flavor produces the themed chat lines. Messages are plain values with a
// tone hint; how they are colored or displayed is up to the receiver.
package flavor

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

type Kind string

const (
	KindWelcome       Kind = "welcome"
	KindLevelUp       Kind = "level_up"
	KindXPGain        Kind = "xp_gain"
	KindTaskCompleted Kind = "task_completed"
	KindTaskRewards   Kind = "task_rewards"
	KindNewTask       Kind = "new_task"
	KindNewQuestTask  Kind = "new_quest_task"
)

type Tone string

const (
	ToneCyan   Tone = "cyan"
	ToneGreen  Tone = "green"
	ToneYellow Tone = "yellow"
)

type Message struct {
	Kind Kind      `json:"kind"`
	Text string    `json:"text"`
	Tone Tone      `json:"tone"`
	At   time.Time `json:"at"`
}

func (m Message) String() string { return m.Text }

// Templates take the skill name as argument 1. Argument 2 is the level for
// level-ups and the comma-grouped amount for XP gains.
var levelUpTemplates = []string{
	"🗡️ Hunter %[1]s has reached level %[2]d! Power increases!",
	"⚔️ The Shadow Monarch grows stronger! Level %[2]d in %[1]s!",
	"🌟 You have leveled up! %[1]s is now level %[2]d!",
	"💀 Death cannot stop your growth! %[1]s level %[2]d achieved!",
	"🔥 The power within awakens! %[1]s level %[2]d unlocked!",
}

var xpGainTemplates = []string{
	"💫 +%[2]s XP gained in %[1]s! The grind continues...",
	"⚡ Experience flows like mana! +%[2]s %[1]s XP",
	"🎯 Another step towards S-Rank! +%[2]s %[1]s XP",
}

const welcomeText = "🗡️ Welcome back, Shadow Monarch! Your journey continues..."

// Picker chooses among the level-up and XP-gain templates.
type Picker struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewPicker uses rnd for template selection; nil seeds from the clock.
func NewPicker(rnd *rand.Rand, now func() time.Time) *Picker {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Picker{rnd: rnd, now: now}
}

func (p *Picker) pick(templates []string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return templates[p.rnd.Intn(len(templates))]
}

func (p *Picker) msg(kind Kind, tone Tone, text string) Message {
	return Message{Kind: kind, Text: text, Tone: tone, At: p.now().UTC()}
}

func (p *Picker) LevelUp(skillName string, level int) Message {
	return p.msg(KindLevelUp, ToneYellow, fmt.Sprintf(p.pick(levelUpTemplates), skillName, level))
}

func (p *Picker) XPGain(skillName string, gained int) Message {
	return p.msg(KindXPGain, ToneGreen, fmt.Sprintf(p.pick(xpGainTemplates), skillName, humanize.Comma(int64(gained))))
}

func (p *Picker) Welcome() Message {
	return p.msg(KindWelcome, ToneCyan, welcomeText)
}

func (p *Picker) TaskCompleted(name string) Message {
	return p.msg(KindTaskCompleted, ToneGreen, "🎯 Task completed: "+name)
}

func (p *Picker) TaskRewards(xp, points int) Message {
	return p.msg(KindTaskRewards, ToneYellow,
		fmt.Sprintf("💰 Rewards: %s XP, %d points", humanize.Comma(int64(xp)), points))
}

func (p *Picker) NewTask(name string) Message {
	return p.msg(KindNewTask, ToneCyan, "🌟 New task generated: "+name)
}

func (p *Picker) NewQuestTask(name string) Message {
	return p.msg(KindNewQuestTask, ToneCyan, "📜 New quest task: "+name)
}
