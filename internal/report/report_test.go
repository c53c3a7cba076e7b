package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/storage"
	"github.com/resolve109/solo-leveling/internal/task"
)

var now = time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)

func sampleReport() Report {
	tasks := task.DefaultTasks(now)
	tasks[0].Completed = true
	completions := []storage.Completion{
		{TaskID: tasks[0].ID, Name: tasks[0].Name, CompletedAt: now.Add(-time.Hour), XPReward: 500, PointsReward: 10},
		{TaskID: tasks[0].ID, Name: tasks[0].Name, CompletedAt: now.Add(-time.Minute), XPReward: 500, PointsReward: 10},
	}
	st := engine.Status{HunterRank: "🗡️ Shadow Monarch", TotalLevel: 1500, TotalXP: 12_345_678}
	return Build(st, tasks, completions, now)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestBuildTotals(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, storage.Totals{Count: 2, XP: 1000, Points: 20}, r.Totals)
	assert.Equal(t, now, r.GeneratedAt)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Write(&buf, FormatJSON))

	var back Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Len(t, back.Tasks, 7)
	assert.Equal(t, 1500, back.Status.TotalLevel)
}

func TestWriteCSV(t *testing.T) {
	r := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(r.Tasks)+1)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "true", rows[1][5])
	assert.Equal(t, now.Add(-time.Minute).Format(time.RFC3339), rows[1][10])
	assert.Equal(t, "", rows[2][10])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Write(&buf, FormatPDF))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestLatin1DropsEmoji(t *testing.T) {
	if got := latin1("🗡️ Shadow Monarch"); got != "Shadow Monarch" {
		t.Fatalf("latin1=%q, want %q", got, "Shadow Monarch")
	}
	if got := latin1("Café"); got != "Café" {
		t.Fatalf("latin1=%q, want Café", got)
	}
}
