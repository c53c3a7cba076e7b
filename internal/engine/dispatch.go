package engine

import (
	"errors"
	"fmt"

	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/tracker"
)

type EventType string

const (
	EventLogin     EventType = "login"
	EventGameState EventType = "gamestate"
	EventStat      EventType = "stat"
	EventTick      EventType = "tick"
	EventVarbit    EventType = "varbit"
	EventActivity  EventType = "activity"
)

// Event is the wire form of a host callback, used by the HTTP bridge and by
// replayed event logs. Only the fields for Type are read.
type Event struct {
	Type EventType `json:"type"`

	Snapshot *tracker.Snapshot `json:"snapshot,omitempty"`
	State    string            `json:"state,omitempty"`

	Skill string `json:"skill,omitempty"`
	XP    int    `json:"xp,omitempty"`
	Level int    `json:"level,omitempty"`

	VarbitID int             `json:"varbit_id,omitempty"`
	Value    int             `json:"value,omitempty"`
	Quests   map[string]bool `json:"quests,omitempty"`

	Activity string `json:"activity,omitempty"`
	Count    int    `json:"count,omitempty"`

	// Ticks repeats a tick event; zero means one, at most MaxTicksPerEvent.
	Ticks int `json:"ticks,omitempty"`
}

// MaxTicksPerEvent caps a batched tick event at one hour of game time.
const MaxTicksPerEvent = 6000

var ErrBadEvent = errors.New("bad event")

// Apply routes e to the matching event method.
func (s *Service) Apply(e Event) error {
	switch e.Type {
	case EventLogin:
		var snap tracker.Snapshot
		if e.Snapshot != nil {
			snap = *e.Snapshot
		}
		s.OnLogin(snap)
	case EventGameState:
		state, err := ParseGameState(e.State)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadEvent, err)
		}
		s.OnGameStateChanged(state)
	case EventStat:
		sk, err := skill.Parse(e.Skill)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadEvent, err)
		}
		if e.Level < skill.MinLevel || e.XP < 0 {
			return fmt.Errorf("%w: stat %s level=%d xp=%d", ErrBadEvent, sk, e.Level, e.XP)
		}
		s.OnStatChanged(sk, e.XP, e.Level)
	case EventTick:
		if e.Ticks > MaxTicksPerEvent {
			return fmt.Errorf("%w: ticks=%d exceeds %d", ErrBadEvent, e.Ticks, MaxTicksPerEvent)
		}
		n := max(e.Ticks, 1)
		for range n {
			s.OnGameTick()
		}
	case EventVarbit:
		s.OnVarbitChanged(e.VarbitID, e.Value, e.Quests)
	case EventActivity:
		if e.Activity == "" {
			return fmt.Errorf("%w: activity name is required", ErrBadEvent)
		}
		s.OnActivity(e.Activity, e.Count)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadEvent, e.Type)
	}
	return nil
}
