// Package config holds the user-facing settings and the runtime options of the
// companion. Values come from defaults, then a .env file, then SL_* environment
// variables; the CLI applies its flags last.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/resolve109/solo-leveling/internal/task"
)

type OverlayPosition string

const (
	TopLeft     OverlayPosition = "TOP_LEFT"
	TopRight    OverlayPosition = "TOP_RIGHT"
	BottomLeft  OverlayPosition = "BOTTOM_LEFT"
	BottomRight OverlayPosition = "BOTTOM_RIGHT"
)

func (p OverlayPosition) IsValid() bool {
	switch p {
	case TopLeft, TopRight, BottomLeft, BottomRight:
		return true
	}
	return false
}

const (
	MinXPToShow = 1
	MaxXPToShow = 10000

	MinRecentXPSeconds = 5
	MaxRecentXPSeconds = 300
)

// Settings are the toggles the companion reacts to.
type Settings struct {
	// Messages
	ShowLoginMessage           bool `json:"show_login_message"`
	ShowLevelUps               bool `json:"show_level_ups"`
	ShowXPGains                bool `json:"show_xp_gains"`
	MinimumXPToShow            int  `json:"minimum_xp_to_show"`
	ShowTaskCompletionMessages bool `json:"show_task_completion_messages"`
	ShowTaskRewards            bool `json:"show_task_rewards"`

	// Overlay
	ShowOverlay         bool            `json:"show_overlay"`
	OverlayPosition     OverlayPosition `json:"overlay_position"`
	ShowTotalLevel      bool            `json:"show_total_level"`
	ShowTotalExperience bool            `json:"show_total_experience"`
	ShowRecentXPGains   bool            `json:"show_recent_xp_gains"`
	RecentXPSeconds     int             `json:"recent_xp_seconds"`

	// Tasks
	ShowTasks           bool `json:"show_tasks"`
	MaxTasksShown       int  `json:"max_tasks_shown"`
	FilterTasksBySource bool `json:"filter_tasks_by_source"`
	ShowLeagueTasks     bool `json:"show_league_tasks"`
	ShowQuestTasks      bool `json:"show_quest_tasks"`
	ShowCustomTasks     bool `json:"show_custom_tasks"`
	ShowRandomTasks     bool `json:"show_random_tasks"`

	// Advanced
	HunterTitle        string `json:"hunter_title"`
	UseCustomRank      bool   `json:"use_custom_rank"`
	EnableSoundEffects bool   `json:"enable_sound_effects"`
}

// DefaultSettings matches what a fresh install shows.
func DefaultSettings() Settings {
	return Settings{
		ShowLoginMessage:           true,
		ShowLevelUps:               true,
		ShowXPGains:                true,
		MinimumXPToShow:            100,
		ShowTaskCompletionMessages: true,
		ShowTaskRewards:            true,

		ShowOverlay:         true,
		OverlayPosition:     TopLeft,
		ShowTotalLevel:      true,
		ShowTotalExperience: true,
		ShowRecentXPGains:   true,
		RecentXPSeconds:     30,

		ShowTasks:       true,
		MaxTasksShown:   task.DefaultTasksShown,
		ShowLeagueTasks: true,
		ShowQuestTasks:  true,
		ShowCustomTasks: true,
		ShowRandomTasks: true,

		HunterTitle:   "Shadow Monarch",
		UseCustomRank: true,
	}
}

func (s Settings) RecentXPWindow() time.Duration {
	return time.Duration(s.RecentXPSeconds) * time.Second
}

// TaskFilter converts the task toggles into display filter settings.
func (s Settings) TaskFilter() task.Settings {
	return task.Settings{
		FilterBySource: s.FilterTasksBySource,
		ShowLeague:     s.ShowLeagueTasks,
		ShowQuest:      s.ShowQuestTasks,
		ShowCustom:     s.ShowCustomTasks,
		ShowRandom:     s.ShowRandomTasks,
		MaxShown:       s.MaxTasksShown,
	}
}

// RangeError reports a numeric setting outside its allowed range.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e RangeError) Error() string {
	return fmt.Sprintf("%s=%d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Validate returns every range violation joined into one error.
func (s Settings) Validate() error {
	var errs []error
	for _, r := range s.ranges() {
		if *r.v < r.min || *r.v > r.max {
			errs = append(errs, RangeError{Field: r.field, Value: *r.v, Min: r.min, Max: r.max})
		}
	}
	if !s.OverlayPosition.IsValid() {
		errs = append(errs, fmt.Errorf("overlay_position: invalid value %q", s.OverlayPosition))
	}
	return errors.Join(errs...)
}

// Clamp forces numeric settings into range and resets an unknown overlay position.
// It returns the violations it corrected.
func (s *Settings) Clamp() []RangeError {
	var fixed []RangeError
	for _, r := range s.ranges() {
		if *r.v < r.min || *r.v > r.max {
			fixed = append(fixed, RangeError{Field: r.field, Value: *r.v, Min: r.min, Max: r.max})
			*r.v = min(max(*r.v, r.min), r.max)
		}
	}
	if !s.OverlayPosition.IsValid() {
		s.OverlayPosition = TopLeft
	}
	return fixed
}

type intRange struct {
	field    string
	v        *int
	min, max int
}

func (s *Settings) ranges() []intRange {
	return []intRange{
		{"minimum_xp_to_show", &s.MinimumXPToShow, MinXPToShow, MaxXPToShow},
		{"recent_xp_seconds", &s.RecentXPSeconds, MinRecentXPSeconds, MaxRecentXPSeconds},
		{"max_tasks_shown", &s.MaxTasksShown, task.MinTasksShown, task.MaxTasksShown},
	}
}

// Runtime are process options that are not part of the in-game settings.
type Runtime struct {
	DBPath      string
	HTTPAddr    string
	BridgeToken string
	LogLevel    string
	LogJSON     bool
	HiscoreURL  string
	WikiURL     string
}

const (
	DefaultHTTPAddr   = "127.0.0.1:8078"
	DefaultHiscoreURL = "https://secure.runescape.com/m=hiscore_oldschool"
	DefaultWikiURL    = "https://oldschool.runescape.wiki"
	dbFileName        = ".sololeveling.db"
)

type Config struct {
	Settings Settings
	Runtime  Runtime

	// Clamped lists the range violations corrected while loading.
	Clamped []RangeError
}

func Default() Config {
	return Config{
		Settings: DefaultSettings(),
		Runtime: Runtime{
			DBPath:     defaultDBPath(),
			HTTPAddr:   DefaultHTTPAddr,
			LogLevel:   "info",
			HiscoreURL: DefaultHiscoreURL,
			WikiURL:    DefaultWikiURL,
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dbFileName
	}
	return filepath.Join(home, dbFileName)
}

// Load reads envFile (ignored when missing, empty means ".env") into the process
// environment and builds the config from SL_* variables on top of the defaults.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	for _, b := range bindings {
		raw, ok := lookup(b.env)
		if !ok {
			continue
		}
		if err := b.apply(&cfg, strings.TrimSpace(raw)); err != nil {
			return Config{}, fmt.Errorf("%s: %w", b.env, err)
		}
	}
	cfg.Clamped = cfg.Settings.Clamp()
	return cfg, nil
}

type binding struct {
	env   string
	apply func(*Config, string) error
}

func boolVar(env string, field func(*Config) *bool) binding {
	return binding{env: env, apply: func(c *Config, raw string) error {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}}
}

func intVar(env string, field func(*Config) *int) binding {
	return binding{env: env, apply: func(c *Config, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}}
}

func stringVar(env string, field func(*Config) *string) binding {
	return binding{env: env, apply: func(c *Config, raw string) error {
		*field(c) = raw
		return nil
	}}
}

var bindings = []binding{
	boolVar("SL_SHOW_LOGIN_MESSAGE", func(c *Config) *bool { return &c.Settings.ShowLoginMessage }),
	boolVar("SL_SHOW_LEVEL_UPS", func(c *Config) *bool { return &c.Settings.ShowLevelUps }),
	boolVar("SL_SHOW_XP_GAINS", func(c *Config) *bool { return &c.Settings.ShowXPGains }),
	intVar("SL_MINIMUM_XP_TO_SHOW", func(c *Config) *int { return &c.Settings.MinimumXPToShow }),
	boolVar("SL_SHOW_TASK_COMPLETION_MESSAGES", func(c *Config) *bool { return &c.Settings.ShowTaskCompletionMessages }),
	boolVar("SL_SHOW_TASK_REWARDS", func(c *Config) *bool { return &c.Settings.ShowTaskRewards }),

	boolVar("SL_SHOW_OVERLAY", func(c *Config) *bool { return &c.Settings.ShowOverlay }),
	{env: "SL_OVERLAY_POSITION", apply: func(c *Config, raw string) error {
		p := OverlayPosition(strings.ToUpper(strings.ReplaceAll(raw, " ", "_")))
		if !p.IsValid() {
			return fmt.Errorf("invalid overlay position %q", raw)
		}
		c.Settings.OverlayPosition = p
		return nil
	}},
	boolVar("SL_SHOW_TOTAL_LEVEL", func(c *Config) *bool { return &c.Settings.ShowTotalLevel }),
	boolVar("SL_SHOW_TOTAL_EXPERIENCE", func(c *Config) *bool { return &c.Settings.ShowTotalExperience }),
	boolVar("SL_SHOW_RECENT_XP_GAINS", func(c *Config) *bool { return &c.Settings.ShowRecentXPGains }),
	intVar("SL_RECENT_XP_DURATION", func(c *Config) *int { return &c.Settings.RecentXPSeconds }),

	boolVar("SL_SHOW_TASKS", func(c *Config) *bool { return &c.Settings.ShowTasks }),
	intVar("SL_MAX_TASKS_SHOWN", func(c *Config) *int { return &c.Settings.MaxTasksShown }),
	boolVar("SL_FILTER_TASKS_BY_SOURCE", func(c *Config) *bool { return &c.Settings.FilterTasksBySource }),
	boolVar("SL_SHOW_LEAGUE_TASKS", func(c *Config) *bool { return &c.Settings.ShowLeagueTasks }),
	boolVar("SL_SHOW_QUEST_TASKS", func(c *Config) *bool { return &c.Settings.ShowQuestTasks }),
	boolVar("SL_SHOW_CUSTOM_TASKS", func(c *Config) *bool { return &c.Settings.ShowCustomTasks }),
	boolVar("SL_SHOW_RANDOM_TASKS", func(c *Config) *bool { return &c.Settings.ShowRandomTasks }),

	stringVar("SL_HUNTER_TITLE", func(c *Config) *string { return &c.Settings.HunterTitle }),
	boolVar("SL_USE_CUSTOM_RANK", func(c *Config) *bool { return &c.Settings.UseCustomRank }),
	boolVar("SL_ENABLE_SOUND_EFFECTS", func(c *Config) *bool { return &c.Settings.EnableSoundEffects }),

	stringVar("SL_DB_PATH", func(c *Config) *string { return &c.Runtime.DBPath }),
	stringVar("SL_HTTP_ADDR", func(c *Config) *string { return &c.Runtime.HTTPAddr }),
	stringVar("SL_BRIDGE_TOKEN", func(c *Config) *string { return &c.Runtime.BridgeToken }),
	stringVar("SL_LOG_LEVEL", func(c *Config) *string { return &c.Runtime.LogLevel }),
	boolVar("SL_LOG_JSON", func(c *Config) *bool { return &c.Runtime.LogJSON }),
	stringVar("SL_HISCORE_URL", func(c *Config) *string { return &c.Runtime.HiscoreURL }),
	stringVar("SL_WIKI_URL", func(c *Config) *string { return &c.Runtime.WikiURL }),
}
