package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/tracker"
)

// Store bundles the repositories and moves whole sessions in and out of the
// in-memory task manager and tracker.
type Store struct {
	db          *sql.DB
	tasks       *TaskRepo
	snapshots   *SnapshotRepo
	completions *CompletionRepo
	players     *PlayerRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		tasks:       NewTaskRepo(db),
		snapshots:   NewSnapshotRepo(db),
		completions: NewCompletionRepo(db),
		players:     NewPlayerRepo(db),
	}
}

func (s *Store) CompletionRepo() *CompletionRepo { return s.completions }

// LoadInto restores saved tasks and tracker state. It reports false when nothing
// has been saved yet, leaving mgr and tr untouched.
func (s *Store) LoadInto(ctx context.Context, mgr *task.Manager, tr *tracker.Tracker) (bool, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return false, err
	}
	player, err := s.players.Get(ctx, MainPlayerKey)
	if err != nil {
		return false, err
	}
	if len(tasks) == 0 && player == nil {
		return false, nil
	}

	if len(tasks) > 0 {
		if err := mgr.Restore(tasks); err != nil {
			return false, err
		}
	}

	snaps, err := s.snapshots.ListAll(ctx)
	if err != nil {
		return false, err
	}
	st := tracker.State{
		Levels: make(map[skill.Skill]int, len(snaps)),
		XP:     make(map[skill.Skill]int, len(snaps)),
	}
	for _, sn := range snaps {
		st.Levels[sn.Skill] = sn.Level
		st.XP[sn.Skill] = sn.XP
	}
	if player != nil {
		st.QuestPoints = player.QuestPoints
		st.GameTicks = player.GameTicks
		st.PlayTime = player.PlayTime
		st.Quests = player.Quests
		st.Activities = player.Activities
	}
	tr.Restore(st)
	return len(tasks) > 0, nil
}

// SaveFrom writes the full task list and tracker state in one transaction.
func (s *Store) SaveFrom(ctx context.Context, mgr *task.Manager, tr *tracker.Tracker) error {
	tasks := mgr.All()
	st := tr.Export()
	now := time.Now()

	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := NewTaskRepo(tx).ReplaceAll(ctx, tasks); err != nil {
			return err
		}
		if err := NewSnapshotRepo(tx).SaveAll(ctx, st.Levels, st.XP, now); err != nil {
			return err
		}
		return NewPlayerRepo(tx).Save(ctx, &Player{
			Key:         MainPlayerKey,
			QuestPoints: st.QuestPoints,
			GameTicks:   st.GameTicks,
			PlayTime:    st.PlayTime,
			Quests:      st.Quests,
			Activities:  st.Activities,
			UpdatedAt:   now,
		})
	})
}

// SaveTask writes one task, appending it when new. Use it when a change touched
// a single task and the tracker is unchanged.
func (s *Store) SaveTask(ctx context.Context, t task.Task) error {
	return s.tasks.Upsert(ctx, t)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// RecordCompletion stores a completion event.
func (s *Store) RecordCompletion(ctx context.Context, c Completion) error {
	_, err := s.completions.Insert(ctx, c)
	return err
}
