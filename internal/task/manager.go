package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("task not found")
	ErrDuplicateID = errors.New("duplicate task id")
	ErrInvalidTask = errors.New("invalid task")
)

// Manager keeps tasks in insertion order and maintains the completed and visible
// views. It is safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	all       []Task
	completed []Task
	visible   []Task

	once        sync.Once
	ready       chan struct{}
	initialized atomic.Bool

	now func() time.Time
	log *zap.Logger
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		ready: make(chan struct{}),
		now:   time.Now,
		log:   log,
	}
}

// Initialize loads the default league and quest tasks. Only the first call (or a
// preceding Restore) has any effect.
func (m *Manager) Initialize() {
	m.once.Do(func() {
		m.mu.Lock()
		for _, t := range DefaultTasks(m.now().UTC()) {
			if m.indexLocked(t.ID) >= 0 {
				continue
			}
			m.all = append(m.all, t)
		}
		m.rebuildLocked()
		n := len(m.all)
		m.mu.Unlock()

		m.markReady()
		m.log.Info("task manager initialized", zap.Int("tasks", n))
	})
}

// InitializeAsync runs Initialize on a background goroutine. Use Initialized or
// Wait to observe completion.
func (m *Manager) InitializeAsync() {
	go m.Initialize()
}

func (m *Manager) Initialized() bool {
	return m.initialized.Load()
}

// Wait blocks until the manager has been initialized or ctx is done.
func (m *Manager) Wait(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) markReady() {
	if m.initialized.CompareAndSwap(false, true) {
		close(m.ready)
	}
}

// Restore replaces the whole list, e.g. with state loaded from disk. A restored
// manager counts as initialized and will not load the defaults again.
func (m *Manager) Restore(tasks []Task) error {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if err := t.validate(); err != nil {
			return err
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true
	}

	m.mu.Lock()
	m.all = append(make([]Task, 0, len(tasks)), tasks...)
	m.rebuildLocked()
	m.mu.Unlock()

	m.once.Do(m.markReady)
	return nil
}

func (m *Manager) indexLocked(id string) int {
	for i := range m.all {
		if m.all[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) rebuildLocked() {
	m.completed = m.completed[:0]
	m.visible = m.visible[:0]
	for _, t := range m.all {
		if t.Completed {
			m.completed = append(m.completed, t)
		}
		if t.Visible {
			m.visible = append(m.visible, t)
		}
	}
}

// Complete marks an incomplete task as completed. It returns false when the id is
// unknown or the task is already completed.
func (m *Manager) Complete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 || m.all[i].Completed {
		return false
	}
	m.all[i].Completed = true
	m.rebuildLocked()
	return true
}

// Reset marks a completed task as incomplete again.
func (m *Manager) Reset(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 || !m.all[i].Completed {
		return false
	}
	m.all[i].Completed = false
	m.rebuildLocked()
	return true
}

func (m *Manager) SetVisibility(id string, visible bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return false
	}
	m.all[i].Visible = visible
	m.rebuildLocked()
	return true
}

// Add appends a task. CreatedAt is stamped when zero.
func (m *Manager) Add(t Task) (Task, error) {
	if err := t.validate(); err != nil {
		return Task{}, err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = m.now().UTC()
	}

	m.mu.Lock()
	if m.indexLocked(t.ID) >= 0 {
		m.mu.Unlock()
		return Task{}, fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}
	m.all = append(m.all, t)
	m.rebuildLocked()
	m.mu.Unlock()

	m.log.Debug("task added", zap.String("task_id", t.ID), zap.String("name", t.Name))
	return t, nil
}

// AddAll appends several tasks atomically: either all are added or none.
// A nil or empty slice is a no-op.
func (m *Manager) AddAll(tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	now := m.now().UTC()
	batch := make([]Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if err := t.validate(); err != nil {
			return err
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		batch = append(batch, t)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range batch {
		if m.indexLocked(t.ID) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
	}
	m.all = append(m.all, batch...)
	m.rebuildLocked()

	m.log.Debug("tasks added", zap.Int("count", len(batch)))
	return nil
}

func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	i := m.indexLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	removed := m.all[i]
	m.all = append(m.all[:i], m.all[i+1:]...)
	m.rebuildLocked()
	m.mu.Unlock()

	m.log.Debug("task removed", zap.String("task_id", removed.ID), zap.String("name", removed.Name))
	return true
}

// Get returns a copy of the task with the given id.
func (m *Manager) Get(id string) (Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexLocked(id)
	if i < 0 {
		return Task{}, false
	}
	return m.all[i], true
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.all)
}

// All returns every task in insertion order.
func (m *Manager) All() []Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTasks(m.all)
}

func (m *Manager) Completed() []Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTasks(m.completed)
}

func (m *Manager) Visible() []Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTasks(m.visible)
}

func (m *Manager) ByCategory(c Category) []Task {
	return m.where(func(t Task) bool { return t.Category == c })
}

func (m *Manager) ByDifficulty(d Difficulty) []Task {
	return m.where(func(t Task) bool { return t.Difficulty == d })
}

func (m *Manager) BySource(s Source) []Task {
	return m.where(func(t Task) bool { return t.Source == s })
}

// IncompleteBySource is what quest auto-completion scans on every tick.
func (m *Manager) IncompleteBySource(s Source) []Task {
	return m.where(func(t Task) bool { return t.Source == s && !t.Completed })
}

func (m *Manager) where(keep func(Task) bool) []Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Task{}
	for _, t := range m.all {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func cloneTasks(in []Task) []Task {
	out := make([]Task, len(in))
	copy(out, in)
	return out
}
