package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/resolve109/solo-leveling/internal/flavor"
	"github.com/resolve109/solo-leveling/internal/task"
)

// Shared styles for the CLI and the board.

const (
	IconSword   = "🗡️"
	IconTask    = "🎯"
	IconNew     = "🌟"
	IconQuest   = "📜"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconCoin    = "💰"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "💀"
	IconSearch  = "🔍"
	IconCompare = "⚖️"
)

var (
	cViolet  = lipgloss.Color("#8A2BE2") // overlay primary
	cGold    = lipgloss.Color("#FFD700") // overlay secondary
	cGreen   = lipgloss.Color("#00FF00")
	cCyan    = lipgloss.Color("#00FFFF")
	cOrange  = lipgloss.Color("#FFC800")
	cMagenta = lipgloss.Color("#FF00FF")
	cRed     = lipgloss.Color("#FF0000")
	cMuted   = lipgloss.Color("244")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cViolet)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cViolet)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGreen)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cOrange)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cRed)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cViolet).Padding(0, 1)
	Separator   = Muted.Render("━━━━━━━━━━━━━━━━")
)

var difficultyStyles = map[task.Difficulty]lipgloss.Style{
	task.DifficultyEasy:   lipgloss.NewStyle().Foreground(cGreen),
	task.DifficultyMedium: lipgloss.NewStyle().Foreground(cCyan),
	task.DifficultyHard:   lipgloss.NewStyle().Foreground(cOrange),
	task.DifficultyElite:  lipgloss.NewStyle().Foreground(cMagenta),
	task.DifficultyMaster: lipgloss.NewStyle().Foreground(cRed),
}

// DifficultyStyle falls back to gold for unknown difficulties, like the overlay.
func DifficultyStyle(d task.Difficulty) lipgloss.Style {
	if st, ok := difficultyStyles[d]; ok {
		return st
	}
	return lipgloss.NewStyle().Foreground(cGold)
}

func Difficulty(d task.Difficulty) string {
	return DifficultyStyle(d).Render(d.String())
}

var toneStyles = map[flavor.Tone]lipgloss.Style{
	flavor.ToneCyan:   lipgloss.NewStyle().Foreground(cCyan),
	flavor.ToneGreen:  lipgloss.NewStyle().Foreground(cGreen),
	flavor.ToneYellow: lipgloss.NewStyle().Foreground(cGold),
}

// Message renders a chat line in its tone color.
func Message(m flavor.Message) string {
	if st, ok := toneStyles[m.Tone]; ok {
		return st.Render(m.Text)
	}
	return m.Text
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// TaskState renders completion and visibility as a short word.
func TaskState(t task.Task) string {
	switch {
	case t.Completed:
		return Good.Render("done")
	case !t.Visible:
		return Muted.Render("hidden")
	default:
		return Warn.Render("open")
	}
}

func TaskIcon(t task.Task) string {
	switch {
	case t.Completed:
		return IconDone
	case t.Source == task.SourceQuest:
		return IconQuest
	case task.IsGenerated(t):
		return IconNew
	default:
		return IconTask
	}
}

// ProgressBar draws value/total as a fixed-width ASCII bar.
func ProgressBar(value, total, width int) string {
	total = max(total, 1)
	width = max(width, 3)
	value = min(max(value, 0), total)
	filled := min(value*width/total, width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
