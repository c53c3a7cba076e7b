// Package report renders a hunter report (status, task list and completion
// history) as JSON, CSV or PDF.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"

	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/rank"
	"github.com/resolve109/solo-leveling/internal/storage"
	"github.com/resolve109/solo-leveling/internal/task"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, csv or pdf)", s)
}

type Report struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Status      engine.Status        `json:"status"`
	Tasks       []task.Task          `json:"tasks"`
	Completions []storage.Completion `json:"completions"`
	Totals      storage.Totals       `json:"totals"`
}

// Build assembles a report. Totals are summed from completions.
func Build(st engine.Status, tasks []task.Task, completions []storage.Completion, now time.Time) Report {
	r := Report{
		GeneratedAt: now.UTC(),
		Status:      st,
		Tasks:       tasks,
		Completions: completions,
	}
	for _, c := range completions {
		r.Totals.Count++
		r.Totals.XP += int64(c.XPReward)
		r.Totals.Points += int64(c.PointsReward)
	}
	return r
}

func (r Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatCSV:
		return r.writeCSV(w)
	case FormatPDF:
		return r.writePDF(w)
	}
	return fmt.Errorf("unknown format %q", f)
}

var csvHeader = []string{
	"id", "name", "difficulty", "category", "source", "completed", "visible",
	"xp_reward", "points_reward", "related_quest", "completed_at",
}

// writeCSV emits one row per task. completed_at is the latest completion
// recorded for the task, if any.
func (r Report) writeCSV(w io.Writer) error {
	last := make(map[string]time.Time, len(r.Completions))
	for _, c := range r.Completions {
		if c.CompletedAt.After(last[c.TaskID]) {
			last[c.TaskID] = c.CompletedAt
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range r.Tasks {
		at := ""
		if ts, ok := last[t.ID]; ok {
			at = ts.UTC().Format(time.RFC3339)
		}
		row := []string{
			t.ID, t.Name, t.Difficulty.String(), string(t.Category), string(t.Source),
			strconv.FormatBool(t.Completed), strconv.FormatBool(t.Visible),
			strconv.Itoa(t.ExperienceReward), strconv.Itoa(t.PointsReward), t.RelatedQuest, at,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r Report) writePDF(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(latin1(s)) }

	pdf.SetTitle("Hunter Report", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, text("Hunter Report: "+r.Status.HunterRank))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	summary := []string{
		fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04 MST")),
		fmt.Sprintf("Total level: %d   Combat level: %d", r.Status.TotalLevel, r.Status.CombatLevel),
		fmt.Sprintf("Total XP: %s   Power level: %s", humanize.Comma(r.Status.TotalXP), humanize.Comma(int64(r.Status.PowerLevel))),
		fmt.Sprintf("Quest points: %d   Next milestone: %s", r.Status.QuestPoints, r.Status.NextMilestone),
		fmt.Sprintf("Play time: %s   Tasks: %d/%d completed", r.Status.PlayTime, r.Status.Tasks.Completed, r.Status.Tasks.Total),
		fmt.Sprintf("Rewards earned: %s XP, %s points over %d completions",
			humanize.Comma(r.Totals.XP), humanize.Comma(r.Totals.Points), r.Totals.Count),
	}
	for _, line := range summary {
		pdf.MultiCell(0, 6, text(line), "0", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Tasks")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 9)
	for _, t := range r.Tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %-6s %s (%s, %s XP)", mark, t.Difficulty, t.Name, t.Category.DisplayName(), humanize.Comma(int64(t.ExperienceReward)))
		pdf.MultiCell(0, 5, text(line), "0", "L", false)
	}

	if earned := rank.CountEarned(r.Status.Badges); earned > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Badges (%d/%d)", earned, len(r.Status.Badges)))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 9)
		for _, b := range r.Status.Badges {
			if b.Earned {
				pdf.MultiCell(0, 5, text(b.Name+": "+b.Description), "0", "L", false)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// latin1 drops runes the core PDF fonts cannot show, such as emoji, and the
// space that followed them.
func latin1(s string) string {
	var b strings.Builder
	skipSpace := false
	for _, r := range s {
		if r > 0xFF {
			skipSpace = true
			continue
		}
		if skipSpace && r == ' ' {
			skipSpace = false
			continue
		}
		skipSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
