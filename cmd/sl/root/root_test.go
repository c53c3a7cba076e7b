package root

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolve109/solo-leveling/internal/task"
)

// runCLI returns what the command wrote to stdout.
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLISplit(t, dbPath, args...)
	return out, err
}

func runCLISplit(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--db", dbPath, "--env", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestFreshDatabaseIsSeeded(t *testing.T) {
	db := filepath.Join(t.TempDir(), "sl.db")

	out, errOut, err := runCLISplit(t, db, "tasks", "--all", "--json")
	require.NoError(t, err)

	// The seeding announcement goes to stderr; stdout is only the JSON list.
	assert.Contains(t, errOut, "New task generated")
	var tasks []task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks), out)
	assert.Len(t, tasks, 10)

	// A second run restores instead of seeding again.
	out, err = runCLI(t, db, "tasks", "--all", "--json")
	require.NoError(t, err)
	tasks = nil
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	assert.Len(t, tasks, 10)
}

func TestAddCompleteExport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "sl.db")

	_, err := runCLI(t, db, "add", "Kill Vorkath", "--id", "vork", "-d", "elite", "-c", "combat", "--xp", "10000", "--points", "100")
	require.NoError(t, err)

	out, err := runCLI(t, db, "complete", "vork")
	require.NoError(t, err)
	assert.Contains(t, out, "Kill Vorkath")

	_, err = runCLI(t, db, "complete", "vork")
	assert.Error(t, err)

	_, err = runCLI(t, db, "hide", "quest_1")
	require.NoError(t, err)
	_, err = runCLI(t, db, "remove", "quest_3")
	require.NoError(t, err)

	csvPath := filepath.Join(dir, "report.csv")
	_, err = runCLI(t, db, "export", "-f", "csv", "-o", csvPath)
	require.NoError(t, err)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	var vork, quest []string
	for _, r := range rows[1:] {
		switch r[0] {
		case "vork":
			vork = r
		case "quest_1":
			quest = r
		case "quest_3":
			t.Fatalf("quest_3 exported after remove")
		}
	}
	// 10 seeded, one added, one removed.
	assert.Len(t, rows[1:], 10)
	assert.Equal(t, "vork", rows[len(rows)-1][0], "added task is last")
	require.NotNil(t, vork)
	assert.Equal(t, "true", vork[5])
	assert.NotEmpty(t, vork[10], "completion time")
	require.NotNil(t, quest)
	assert.Equal(t, "false", quest[6])
}

func TestReplay(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "sl.db")
	events := filepath.Join(dir, "events.jsonl")
	require.NoError(t, os.WriteFile(events, []byte(strings.Join([]string{
		`# a short session`,
		`{"type":"login","snapshot":{"levels":{"Mining":50},"xp":{"Mining":101333}}}`,
		`{"type":"stat","skill":"Mining","xp":111945,"level":51}`,
		`{"type":"bogus"}`,
		`{"type":"varbit","varbit_id":101,"value":7,"quests":{"Cook's Assistant":true}}`,
	}, "\n")), 0o644))

	out, err := runCLI(t, db, "replay", events)
	require.NoError(t, err)
	assert.Contains(t, out, "3 events applied, 1 skipped")

	_, err = runCLI(t, db, "replay", "--strict", events)
	assert.Error(t, err)

	out, err = runCLI(t, db, "tasks", "--all", "--json", "--source", "quest")
	require.NoError(t, err)
	var tasks []task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	for _, tk := range tasks {
		if tk.ID == "quest_1" && !tk.Completed {
			t.Fatalf("quest_1 should be auto-completed by the replay")
		}
	}
}

func TestFreshDatabaseExportIsJSON(t *testing.T) {
	out, err := runCLI(t, filepath.Join(t.TempDir(), "sl.db"), "export", "-f", "json")
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Contains(t, report, "tasks")
}

func TestServeRejectsNonPositiveSaveInterval(t *testing.T) {
	db := filepath.Join(t.TempDir(), "sl.db")
	for _, every := range []string{"0", "-5s"} {
		_, err := runCLI(t, db, "serve", "--addr", "127.0.0.1:0", "--save-every", every)
		require.Error(t, err, every)
		assert.Contains(t, err.Error(), "--save-every")
	}
}

func TestSettingsShowsClampedValues(t *testing.T) {
	t.Setenv("SL_MAX_TASKS_SHOWN", "50")
	out, err := runCLI(t, filepath.Join(t.TempDir(), "sl.db"), "settings")
	require.NoError(t, err)
	assert.Contains(t, out, `"max_tasks_shown": 10`)
}
