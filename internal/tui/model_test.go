package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/resolve109/solo-leveling/internal/config"
	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/tracker"
)

func newTestBoard(t *testing.T) (boardModel, *engine.Service, *int) {
	t.Helper()
	settings := config.DefaultSettings()
	settings.ShowRandomTasks = false
	svc := engine.NewService(engine.Options{Settings: settings, Rand: rand.New(rand.NewSource(1))})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := svc.Start(ctx, tracker.Snapshot{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	saves := 0
	m := newBoardModel(context.Background(), svc, func(context.Context) error {
		saves++
		return nil
	})
	return run(m, m.Init()), svc, &saves
}

// run applies cmd's message to m, following up to a few chained commands.
func run(m boardModel, cmd tea.Cmd) boardModel {
	for i := 0; cmd != nil && i < 4; i++ {
		next, c := m.Update(cmd())
		m = next.(boardModel)
		cmd = c
	}
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m boardModel, s string) boardModel {
	next, cmd := m.Update(key(s))
	return run(next.(boardModel), cmd)
}

func TestBoardGroupsByCategory(t *testing.T) {
	m, svc, _ := newTestBoard(t)
	lines := m.lines()
	if len(lines) == 0 || !lines[0].header {
		t.Fatalf("first line should be a category header")
	}
	tasks := 0
	for _, l := range lines {
		if !l.header {
			tasks++
		}
	}
	if want := len(svc.TaskManager().Visible()); tasks != want {
		t.Fatalf("task lines=%d, want %d", tasks, want)
	}

	// Folding the first category hides its tasks.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(boardModel)
	if !m.collapsed[lines[0].category] {
		t.Fatalf("category %s should be collapsed", lines[0].category)
	}
	if got := len(m.lines()); got != len(lines)-lines[0].count {
		t.Fatalf("lines after fold=%d, want %d", got, len(lines)-lines[0].count)
	}
}

func TestBoardCompleteAndHide(t *testing.T) {
	m, svc, saves := newTestBoard(t)

	m = press(m, "j")
	line, ok := m.current()
	if !ok || line.header {
		t.Fatalf("expected a task line under the first header")
	}
	id := line.task.ID

	m = press(m, "c")
	got, _ := svc.TaskManager().Get(id)
	if !got.Completed {
		t.Fatalf("task %s should be completed", id)
	}
	if !strings.HasPrefix(m.lastLog, "Completed") {
		t.Fatalf("lastLog=%q, want Completed...", m.lastLog)
	}

	m = press(m, "u")
	got, _ = svc.TaskManager().Get(id)
	if got.Completed {
		t.Fatalf("task %s should be reset", id)
	}

	m = press(m, "h")
	got, _ = svc.TaskManager().Get(id)
	if got.Visible {
		t.Fatalf("task %s should be hidden", id)
	}
	if *saves != 3 {
		t.Fatalf("saves=%d, want 3", *saves)
	}

	m = press(m, "a")
	if !m.showHidden {
		t.Fatalf("showHidden should toggle on")
	}
	if _, ok := findLine(m.lines(), id); !ok {
		t.Fatalf("hidden task %s should be listed with showHidden", id)
	}
}

func TestBoardGenerate(t *testing.T) {
	m, svc, _ := newTestBoard(t)
	before := svc.TaskManager().Len()
	m = press(m, "g")
	if got := svc.TaskManager().Len(); got != before+1 {
		t.Fatalf("Len()=%d, want %d", got, before+1)
	}
	found := false
	for _, tk := range m.tasks {
		if task.IsGenerated(tk) {
			found = true
		}
	}
	if !found {
		t.Fatalf("generated task missing from board")
	}
}

func findLine(lines []boardLine, id string) (boardLine, bool) {
	for _, l := range lines {
		if !l.header && l.task.ID == id {
			return l, true
		}
	}
	return boardLine{}, false
}
