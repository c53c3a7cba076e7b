package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.ShowLoginMessage)
	assert.Equal(t, 100, s.MinimumXPToShow)
	assert.Equal(t, 30, s.RecentXPSeconds)
	assert.Equal(t, 5, s.MaxTasksShown)
	assert.False(t, s.FilterTasksBySource)
	assert.Equal(t, "Shadow Monarch", s.HunterTitle)
	assert.True(t, s.UseCustomRank)
	assert.False(t, s.EnableSoundEffects)
	assert.Equal(t, TopLeft, s.OverlayPosition)
	require.NoError(t, s.Validate())
}

func TestFromEnvOverridesAndClamps(t *testing.T) {
	cfg, err := FromEnv(mapLookup(map[string]string{
		"SL_SHOW_XP_GAINS":          "false",
		"SL_MINIMUM_XP_TO_SHOW":     "50000",
		"SL_MAX_TASKS_SHOWN":        "0",
		"SL_FILTER_TASKS_BY_SOURCE": "true",
		"SL_HUNTER_TITLE":           "Beru",
		"SL_OVERLAY_POSITION":       "bottom right",
		"SL_HTTP_ADDR":              "127.0.0.1:9999",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.Settings.ShowXPGains)
	assert.Equal(t, MaxXPToShow, cfg.Settings.MinimumXPToShow)
	assert.Equal(t, 1, cfg.Settings.MaxTasksShown)
	assert.True(t, cfg.Settings.FilterTasksBySource)
	assert.Equal(t, "Beru", cfg.Settings.HunterTitle)
	assert.Equal(t, BottomRight, cfg.Settings.OverlayPosition)
	assert.Equal(t, "127.0.0.1:9999", cfg.Runtime.HTTPAddr)
	assert.Len(t, cfg.Clamped, 2)
}

func TestFromEnvRejectsMalformed(t *testing.T) {
	_, err := FromEnv(mapLookup(map[string]string{"SL_SHOW_TASKS": "maybe"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SL_SHOW_TASKS")

	_, err = FromEnv(mapLookup(map[string]string{"SL_OVERLAY_POSITION": "CENTER"}))
	require.Error(t, err)
}

func TestValidateReportsRangeErrors(t *testing.T) {
	s := DefaultSettings()
	s.RecentXPSeconds = 1
	err := s.Validate()
	require.Error(t, err)

	var re RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "recent_xp_seconds", re.Field)
	assert.Equal(t, MinRecentXPSeconds, re.Min)
}

func TestTaskFilterMapping(t *testing.T) {
	s := DefaultSettings()
	s.ShowQuestTasks = false
	s.MaxTasksShown = 7
	f := s.TaskFilter()
	assert.False(t, f.ShowQuest)
	assert.True(t, f.ShowLeague)
	assert.Equal(t, 7, f.MaxShown)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SL_HUNTER_TITLE=Igris\n"), 0o600))
	t.Setenv("SL_HUNTER_TITLE", "")
	os.Unsetenv("SL_HUNTER_TITLE")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Igris", cfg.Settings.HunterTitle)

	_, err = Load(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
}
