package engine

import (
	"go.uber.org/zap"

	"github.com/resolve109/solo-leveling/internal/flavor"
	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/tracker"
)

// OnLogin records a fresh client snapshot and then handles the LOGGED_IN transition.
func (s *Service) OnLogin(snap tracker.Snapshot) {
	snap.LoggedIn = true
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	s.tracker.Initialize(snap)
	s.OnGameStateChanged(StateLoggedIn)
}

// OnGameStateChanged re-seeds XP tracking from the latest known stats on login
// and greets the player when the welcome message is enabled.
func (s *Service) OnGameStateChanged(state GameState) {
	var out []flavor.Message

	s.mu.Lock()
	s.state = state
	if state == StateLoggedIn {
		st := s.tracker.Export()
		s.seedTrackingLocked(tracker.Snapshot{LoggedIn: true, Levels: st.Levels, XP: st.XP})
		if s.settings.ShowLoginMessage {
			out = append(out, s.picker.Welcome())
		}
	}
	s.mu.Unlock()

	s.log.Debug("game state changed", zap.String("state", string(state)))
	s.emit(out)
}

// OnStatChanged compares the new XP and level with the previous values for the
// skill. Skills seen for the first time are only recorded.
func (s *Service) OnStatChanged(sk skill.Skill, xp, level int) {
	if !sk.IsValid() {
		return
	}

	var out []flavor.Message
	s.mu.Lock()
	prevXP, tracked := s.prevXP[sk]
	if tracked {
		prevLevel, ok := s.prevLevel[sk]
		if !ok {
			prevLevel = level
		}
		if xp > prevXP {
			gain := xp - prevXP
			s.lastGain[sk] = s.now()
			if s.settings.ShowXPGains && gain > s.settings.MinimumXPToShow {
				out = append(out, s.picker.XPGain(sk.String(), gain))
			}
		}
		if level > prevLevel && s.settings.ShowLevelUps {
			out = append(out, s.picker.LevelUp(sk.String(), level))
		}
	}
	s.prevXP[sk] = xp
	s.prevLevel[sk] = level
	s.mu.Unlock()

	s.tracker.SetSkill(sk, level, xp)
	s.emit(out)
}

// OnGameTick counts the tick, completes quest tasks whose quest is finished and
// hands out a random challenge every RandomChallengeInterval ticks.
func (s *Service) OnGameTick() {
	n := s.tracker.RecordTick()
	s.checkQuestTasks()
	if n%RandomChallengeInterval == 0 {
		s.generateRandomChallenge()
	}
}

// OnVarbitChanged applies a varbit update. quests, when non-nil, is the current
// quest state as reported by the client.
func (s *Service) OnVarbitChanged(id, value int, quests map[string]bool) {
	if id == tracker.QuestPointsVarbit {
		s.tracker.SetQuestPoints(value)
	}
	if quests != nil {
		for _, q := range s.tracker.UpdateQuests(quests) {
			s.log.Info("quest completed", zap.String("quest", q))
		}
	}
	s.checkQuestTasks()

	if s.tracker.HasQuestCape() && s.roll() < questCapeChallengeChance {
		s.generateQuestChallenge()
	}
}

// OnActivity counts an activity such as a boss kill or minigame round.
func (s *Service) OnActivity(name string, n int) {
	if n <= 0 {
		n = 1
	}
	s.tracker.RecordActivity(name, n)
}

func (s *Service) checkQuestTasks() {
	for _, t := range s.tasks.IncompleteBySource(task.SourceQuest) {
		if t.RelatedQuest == "" || !s.tracker.QuestCompleted(t.RelatedQuest) {
			continue
		}
		if _, err := s.completeTask(t.ID, true); err == nil {
			s.log.Debug("quest task completed", zap.String("task_id", t.ID), zap.String("quest", t.RelatedQuest))
		}
	}
}
