package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newInitializedManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(nil)
	m.Initialize()
	return m
}

func customTask(id string) Task {
	return Task{
		ID:         id,
		Name:       "Task " + id,
		Difficulty: DifficultyEasy,
		Category:   CategoryMiscellaneous,
		Source:     SourceCustom,
		Visible:    true,
	}
}

func TestInitializeLoadsDefaultsOnce(t *testing.T) {
	m := NewManager(nil)
	if m.Initialized() {
		t.Fatalf("Initialized()=true before Initialize")
	}
	m.Initialize()
	m.Initialize()

	if got := m.Len(); got != 7 {
		t.Fatalf("Len()=%d, want 7", got)
	}
	if !m.Initialized() {
		t.Fatalf("Initialized()=false after Initialize")
	}
	if got := len(m.Visible()); got != 7 {
		t.Fatalf("len(Visible())=%d, want 7", got)
	}
	if got := len(m.Completed()); got != 0 {
		t.Fatalf("len(Completed())=%d, want 0", got)
	}
	if got := len(m.BySource(SourceQuest)); got != 3 {
		t.Fatalf("len(BySource(QUEST))=%d, want 3", got)
	}
}

func TestInitializeAsyncAndWait(t *testing.T) {
	m := NewManager(nil)
	m.InitializeAsync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !m.Initialized() {
		t.Fatalf("Initialized()=false after Wait")
	}
	if got := m.Len(); got != 7 {
		t.Fatalf("Len()=%d, want 7", got)
	}
}

func TestWaitHonoursContext(t *testing.T) {
	m := NewManager(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait err=%v, want context.Canceled", err)
	}
}

func TestCompleteAndReset(t *testing.T) {
	m := newInitializedManager(t)

	if !m.Complete("quest_1") {
		t.Fatalf("Complete(quest_1)=false, want true")
	}
	if m.Complete("quest_1") {
		t.Fatalf("second Complete(quest_1)=true, want false")
	}
	if m.Complete("missing") {
		t.Fatalf("Complete(missing)=true, want false")
	}
	if got := len(m.Completed()); got != 1 {
		t.Fatalf("len(Completed())=%d, want 1", got)
	}
	if got := len(m.IncompleteBySource(SourceQuest)); got != 2 {
		t.Fatalf("len(IncompleteBySource(QUEST))=%d, want 2", got)
	}

	if m.Reset("quest_2") {
		t.Fatalf("Reset(quest_2)=true on incomplete task")
	}
	if !m.Reset("quest_1") {
		t.Fatalf("Reset(quest_1)=false, want true")
	}
	if got := len(m.Completed()); got != 0 {
		t.Fatalf("len(Completed())=%d after reset, want 0", got)
	}
}

func TestVisibilityKeepsViewsInSync(t *testing.T) {
	m := newInitializedManager(t)

	if !m.SetVisibility("rel_combat_1", false) {
		t.Fatalf("SetVisibility(rel_combat_1)=false")
	}
	if m.SetVisibility("missing", false) {
		t.Fatalf("SetVisibility(missing)=true")
	}
	for _, v := range m.Visible() {
		if v.ID == "rel_combat_1" {
			t.Fatalf("hidden task still in Visible()")
		}
	}
	if got := len(m.Visible()); got != 6 {
		t.Fatalf("len(Visible())=%d, want 6", got)
	}
	if got := m.Len(); got != 7 {
		t.Fatalf("Len()=%d, want 7", got)
	}
}

func TestAddRejectsDuplicatesAndInvalid(t *testing.T) {
	m := newInitializedManager(t)

	added, err := m.Add(customTask("c1"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not stamped")
	}
	if _, err := m.Add(customTask("c1")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate Add err=%v, want ErrDuplicateID", err)
	}

	bad := customTask("c2")
	bad.Difficulty = 0
	if _, err := m.Add(bad); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("invalid Add err=%v, want ErrInvalidTask", err)
	}
	if got := m.Len(); got != 8 {
		t.Fatalf("Len()=%d, want 8", got)
	}
}

func TestAddAllIsAtomic(t *testing.T) {
	m := newInitializedManager(t)

	if err := m.AddAll(nil); err != nil {
		t.Fatalf("AddAll(nil): %v", err)
	}
	err := m.AddAll([]Task{customTask("a"), customTask("quest_1")})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("AddAll err=%v, want ErrDuplicateID", err)
	}
	if _, ok := m.Get("a"); ok {
		t.Fatalf("partial AddAll left task a behind")
	}
	if err := m.AddAll([]Task{customTask("a"), customTask("b")}); err != nil {
		t.Fatalf("AddAll: %v", err)
	}
	if got := m.Len(); got != 9 {
		t.Fatalf("Len()=%d, want 9", got)
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	m := newInitializedManager(t)
	if !m.Remove("rel_combat_2") {
		t.Fatalf("Remove(rel_combat_2)=false")
	}
	if m.Remove("rel_combat_2") {
		t.Fatalf("second Remove=true")
	}
	all := m.All()
	want := []string{"rel_combat_1", "trl_skilling_1", "trl_skilling_2", "quest_1", "quest_2", "quest_3"}
	if len(all) != len(want) {
		t.Fatalf("len(All())=%d, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Fatalf("All()[%d]=%s, want %s", i, all[i].ID, id)
		}
	}
}

func TestViewsAreCopies(t *testing.T) {
	m := newInitializedManager(t)
	all := m.All()
	all[0].Completed = true
	all[0].Name = "changed"

	got, _ := m.Get(all[0].ID)
	if got.Completed || got.Name == "changed" {
		t.Fatalf("mutating All() result changed manager state")
	}
}

func TestRestoreSkipsDefaults(t *testing.T) {
	m := NewManager(nil)
	done := customTask("x")
	done.Completed = true
	if err := m.Restore([]Task{done, customTask("y")}); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	m.Initialize()

	if got := m.Len(); got != 2 {
		t.Fatalf("Len()=%d, want 2", got)
	}
	if got := len(m.Completed()); got != 1 {
		t.Fatalf("len(Completed())=%d, want 1", got)
	}
	if err := m.Restore([]Task{customTask("z"), customTask("z")}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Restore dup err=%v, want ErrDuplicateID", err)
	}
}

func TestFiltersByCategoryAndDifficulty(t *testing.T) {
	m := newInitializedManager(t)
	if got := len(m.ByCategory(CategoryCombat)); got != 2 {
		t.Fatalf("len(ByCategory(COMBAT))=%d, want 2", got)
	}
	if got := len(m.ByDifficulty(DifficultyMedium)); got != 2 {
		t.Fatalf("len(ByDifficulty(MEDIUM))=%d, want 2", got)
	}
	if got := m.ByCategory(CategoryExploration); got == nil || len(got) != 0 {
		t.Fatalf("ByCategory(EXPLORATION)=%v, want empty non-nil", got)
	}
}

func TestConcurrentMutations(t *testing.T) {
	m := newInitializedManager(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Complete("quest_1")
			_ = m.Visible()
			m.SetVisibility("quest_2", false)
		}()
	}
	wg.Wait()

	if got := len(m.Completed()); got != 1 {
		t.Fatalf("len(Completed())=%d, want 1", got)
	}
}
