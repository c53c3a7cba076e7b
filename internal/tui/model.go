package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/flavor"
	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/ui"
)

type boardModel struct {
	ctx  context.Context
	svc  *engine.Service
	save func(context.Context) error

	width  int
	height int

	status engine.Status
	levels map[skill.Skill]int
	xp     map[skill.Skill]int
	tasks  []task.Task

	collapsed  map[task.Category]bool
	showHidden bool
	selected   int

	lastLog  string
	lastChat *flavor.Message
}

type loadedMsg struct {
	status engine.Status
	levels map[skill.Skill]int
	xp     map[skill.Skill]int
	tasks  []task.Task
}

type actionMsg struct {
	log string
	err error
}

type chatMsg flavor.Message

func newBoardModel(ctx context.Context, svc *engine.Service, save func(context.Context) error) boardModel {
	return boardModel{
		ctx:       ctx,
		svc:       svc,
		save:      save,
		collapsed: map[task.Category]bool{},
		lastLog:   "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st := m.svc.Tracker().Export()
		return loadedMsg{
			status: m.svc.Status(),
			levels: st.Levels,
			xp:     st.XP,
			tasks:  m.svc.TaskManager().All(),
		}
	}
}

// actionCmd runs fn, persists on success and reports the outcome.
func (m boardModel) actionCmd(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := fn()
		if err == nil && m.save != nil {
			if serr := m.save(m.ctx); serr != nil {
				return actionMsg{log: text, err: fmt.Errorf("save: %w", serr)}
			}
		}
		return actionMsg{log: text, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.status = msg.status
		m.levels = msg.levels
		m.xp = msg.xp
		m.tasks = msg.tasks
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.lastLog = "Failed: " + msg.err.Error()
		} else {
			m.lastLog = msg.log
		}
		return m, m.loadCmd()
	case chatMsg:
		fm := flavor.Message(msg)
		m.lastChat = &fm
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.lines())-1 {
			m.selected++
		}
		return m, nil
	case "a":
		m.showHidden = !m.showHidden
		m.selected = 0
		return m, nil
	case "g":
		svc := m.svc
		return m, m.actionCmd(func() (string, error) {
			t, err := svc.GenerateRandom()
			return "Generated " + t.Name, err
		})
	}

	line, ok := m.current()
	if !ok {
		return m, nil
	}
	svc := m.svc

	switch msg.String() {
	case "enter":
		if line.header {
			m.collapsed[line.category] = !m.collapsed[line.category]
		}
		return m, nil
	case "c", " ":
		if line.header {
			return m, nil
		}
		if line.task.Completed {
			m.lastLog = "Already done."
			return m, nil
		}
		id := line.task.ID
		return m, m.actionCmd(func() (string, error) {
			t, err := svc.CompleteTask(id)
			return fmt.Sprintf("Completed %s: +%d XP, +%d points", t.Name, t.ExperienceReward, t.PointsReward), err
		})
	case "u":
		if line.header || !line.task.Completed {
			return m, nil
		}
		id := line.task.ID
		return m, m.actionCmd(func() (string, error) {
			return "Reset " + id, svc.ResetTask(id)
		})
	case "h":
		if line.header {
			return m, nil
		}
		id, visible := line.task.ID, !line.task.Visible
		return m, m.actionCmd(func() (string, error) {
			verb := "Hid "
			if visible {
				verb = "Showing "
			}
			return verb + id, svc.SetTaskVisible(id, visible)
		})
	}
	return m, nil
}

type boardLine struct {
	header   bool
	category task.Category
	count    int
	task     task.Task
}

// lines groups tasks under foldable category headers in declaration order.
func (m boardModel) lines() []boardLine {
	groups := make(map[task.Category][]task.Task)
	for _, t := range m.tasks {
		if !t.Visible && !m.showHidden {
			continue
		}
		groups[t.Category] = append(groups[t.Category], t)
	}

	var out []boardLine
	for _, c := range task.Categories() {
		ts := groups[c]
		if len(ts) == 0 {
			continue
		}
		out = append(out, boardLine{header: true, category: c, count: len(ts)})
		if m.collapsed[c] {
			continue
		}
		for _, t := range ts {
			out = append(out, boardLine{category: c, task: t})
		}
	}
	return out
}

func (m boardModel) current() (boardLine, bool) {
	lines := m.lines()
	if len(lines) == 0 {
		return boardLine{}, false
	}
	i := min(max(m.selected, 0), len(lines)-1)
	return lines[i], true
}

func (m boardModel) View() string {
	sidebar := strings.Split(m.renderSidebar(), "\n")
	main := strings.Split(m.renderMain(), "\n")

	leftW := 30
	if m.width > 0 {
		leftW = max(min(leftW, m.width/2), 18)
	}

	var body strings.Builder
	for i := range max(len(sidebar), len(main)) {
		l, r := "", ""
		if i < len(sidebar) {
			l = sidebar[i]
		}
		if i < len(main) {
			r = main[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}
	return m.renderHeader() + "\n" + body.String() + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	st := m.status
	return ui.Panel.Render(ui.Title.Render(fmt.Sprintf("%s | Total %d | Combat %d | Power %d | Next: %s",
		st.HunterRank, st.TotalLevel, st.CombatLevel, st.PowerLevel, st.NextMilestone)))
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Skills"}
	if len(m.levels) == 0 {
		lines = append(lines, "(no stats yet)")
	}
	for _, sk := range skill.Trainable() {
		lvl, ok := m.levels[sk]
		if !ok {
			continue
		}
		lines = append(lines, renderSkill(sk, lvl, m.xp[sk]))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Tasks %d/%d done", m.status.Tasks.Completed, m.status.Tasks.Total),
		"Play time "+m.status.PlayTime,
		"",
		"Keys",
		"- ↑/↓ or j/k: move",
		"- enter: fold category",
		"- c/space: complete",
		"- u: reset",
		"- h: hide/show",
		"- a: toggle hidden",
		"- g: generate",
		"- r: refresh",
		"- q: quit",
	)
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	out := []string{"Quest Log"}
	lines := m.lines()
	if len(lines) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	sel := min(max(m.selected, 0), len(lines)-1)
	for i, l := range lines {
		cursor := "  "
		if i == sel {
			cursor = "> "
		}
		if l.header {
			fold := "▾ "
			if m.collapsed[l.category] {
				fold = "▸ "
			}
			out = append(out, fmt.Sprintf("%s%s%s (%d)", cursor, fold, ui.H2.Render(l.category.DisplayName()), l.count))
			continue
		}
		out = append(out, fmt.Sprintf("%s    %s %s [%s] %s", cursor, ui.TaskIcon(l.task), l.task.Name, ui.Difficulty(l.task.Difficulty), ui.TaskState(l.task)))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	out := "\n" + m.lastLog
	if m.lastChat != nil {
		out += "\n" + ui.Message(*m.lastChat)
	}
	return out
}

// renderSkill shows progress from the current level to the next.
func renderSkill(sk skill.Skill, level, xp int) string {
	bar := ui.ProgressBar(1, 1, 10)
	if level < skill.MaxLevel {
		cur := skill.XPForLevel(level)
		bar = ui.ProgressBar(xp-cur, skill.XPForLevel(level+1)-cur, 10)
	}
	return fmt.Sprintf("- %-12s %2d %s", sk, level, bar)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
