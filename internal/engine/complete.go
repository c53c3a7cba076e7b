package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/resolve109/solo-leveling/internal/flavor"
	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/task"
)

var ErrAlreadyCompleted = errors.New("task already completed")

// CompleteTask marks the task completed and announces it when completion
// messages are enabled and the player is logged in.
func (s *Service) CompleteTask(id string) (task.Task, error) {
	return s.completeTask(id, false)
}

func (s *Service) completeTask(id string, auto bool) (task.Task, error) {
	t, ok := s.tasks.Get(id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %s", task.ErrNotFound, id)
	}
	if !s.tasks.Complete(id) {
		return t, fmt.Errorf("%w: %s", ErrAlreadyCompleted, id)
	}
	t.Completed = true

	var out []flavor.Message
	s.mu.Lock()
	if s.settings.ShowTaskCompletionMessages && s.state == StateLoggedIn {
		out = append(out, s.picker.TaskCompleted(t.Name))
		if s.settings.ShowTaskRewards && t.HasReward() {
			out = append(out, s.picker.TaskRewards(t.ExperienceReward, t.PointsReward))
		}
	}
	onComplete := s.onComplete
	s.mu.Unlock()

	s.log.Info("task completed",
		zap.String("task_id", t.ID),
		zap.String("name", t.Name),
		zap.Bool("auto", auto))
	s.emit(out)

	if onComplete != nil {
		onComplete(Completion{
			TaskID:       t.ID,
			Name:         t.Name,
			XPReward:     t.ExperienceReward,
			PointsReward: t.PointsReward,
			Auto:         auto,
			At:           s.now().UTC(),
		})
	}
	return t, nil
}

// ResetTask marks a completed task incomplete again.
func (s *Service) ResetTask(id string) error {
	if _, ok := s.tasks.Get(id); !ok {
		return fmt.Errorf("%w: %s", task.ErrNotFound, id)
	}
	if !s.tasks.Reset(id) {
		return fmt.Errorf("task %s is not completed", id)
	}
	return nil
}

func (s *Service) SetTaskVisible(id string, visible bool) error {
	if !s.tasks.SetVisibility(id, visible) {
		return fmt.Errorf("%w: %s", task.ErrNotFound, id)
	}
	return nil
}

// GenerateRandom adds a random challenge regardless of the random task toggle.
func (s *Service) GenerateRandom() (task.Task, error) {
	t := s.gen.Random(s.gen.RandomDifficulty(), s.gen.RandomCategory())
	return s.addGenerated(t, s.picker.NewTask)
}

// GeneratePersonalized adds a skilling task scaled to the tracked level of sk.
func (s *Service) GeneratePersonalized(sk skill.Skill) (task.Task, error) {
	if !sk.IsValid() {
		return task.Task{}, fmt.Errorf("invalid skill: %q", sk)
	}
	level, ok := s.tracker.Level(sk)
	if !ok {
		level = skill.MinLevel
	}
	return s.GeneratePersonalizedAt(sk, level)
}

// GeneratePersonalizedAt is GeneratePersonalized for an explicit level.
func (s *Service) GeneratePersonalizedAt(sk skill.Skill, level int) (task.Task, error) {
	if !sk.IsValid() {
		return task.Task{}, fmt.Errorf("invalid skill: %q", sk)
	}
	level = min(max(level, skill.MinLevel), skill.MaxLevel)
	return s.addGenerated(s.gen.Personalized(sk, level), s.picker.NewTask)
}

func (s *Service) generateRandomChallenge() {
	if !s.Settings().ShowRandomTasks {
		return
	}
	if _, err := s.GenerateRandom(); err != nil {
		s.log.Warn("random challenge", zap.Error(err))
	}
}

func (s *Service) generateQuestChallenge() {
	t := s.gen.Quest(s.tracker.PendingQuests())
	if _, err := s.addGenerated(t, s.picker.NewQuestTask); err != nil {
		s.log.Warn("quest challenge", zap.Error(err))
	}
}

func (s *Service) addGenerated(t task.Task, announce func(string) flavor.Message) (task.Task, error) {
	added, err := s.tasks.Add(t)
	if err != nil {
		return task.Task{}, fmt.Errorf("add generated task: %w", err)
	}
	s.log.Debug("task generated",
		zap.String("task_id", added.ID),
		zap.String("difficulty", added.Difficulty.String()),
		zap.String("category", string(added.Category)))

	if s.Settings().ShowTaskCompletionMessages {
		s.emit([]flavor.Message{announce(added.Name)})
	}
	return added, nil
}
