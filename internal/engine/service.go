// Package engine is the reactive core: the host feeds it game events and it keeps
// the tracker and task list current while emitting themed chat messages.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/resolve109/solo-leveling/internal/config"
	"github.com/resolve109/solo-leveling/internal/flavor"
	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/tracker"
)

type GameState string

const (
	StateUnknown        GameState = "UNKNOWN"
	StateLoginScreen    GameState = "LOGIN_SCREEN"
	StateLoggingIn      GameState = "LOGGING_IN"
	StateLoading        GameState = "LOADING"
	StateLoggedIn       GameState = "LOGGED_IN"
	StateConnectionLost GameState = "CONNECTION_LOST"
	StateHopping        GameState = "HOPPING"
)

func ParseGameState(s string) (GameState, error) {
	switch g := GameState(s); g {
	case StateLoginScreen, StateLoggingIn, StateLoading, StateLoggedIn, StateConnectionLost, StateHopping:
		return g, nil
	}
	return StateUnknown, fmt.Errorf("invalid game state: %q", s)
}

// RandomChallengeInterval is how many game ticks pass between random challenges.
const RandomChallengeInterval = 600

// questCapeChallengeChance is the chance a varbit change hands a quest-cape holder
// a new quest challenge.
const questCapeChallengeChance = 0.5

// Completion is emitted whenever a task is completed.
type Completion struct {
	TaskID       string    `json:"task_id"`
	Name         string    `json:"name"`
	XPReward     int       `json:"xp_reward"`
	PointsReward int       `json:"points_reward"`
	Auto         bool      `json:"auto"`
	At           time.Time `json:"at"`
}

type Options struct {
	Settings config.Settings
	Sink     Sink
	Logger   *zap.Logger
	Rand     *rand.Rand
	Now      func() time.Time

	// Tasks and Tracker are created when nil.
	Tasks   *task.Manager
	Tracker *tracker.Tracker

	// OnComplete is called outside the service lock for every completion.
	OnComplete func(Completion)
}

type Service struct {
	mu       sync.Mutex
	settings config.Settings
	state    GameState
	snapshot tracker.Snapshot

	prevXP    map[skill.Skill]int
	prevLevel map[skill.Skill]int
	lastGain  map[skill.Skill]time.Time

	tasks   *task.Manager
	tracker *tracker.Tracker
	gen     *task.Generator
	picker  *flavor.Picker

	rndMu sync.Mutex
	rnd   *rand.Rand

	sink       Sink
	onComplete func(Completion)
	now        func() time.Time
	log        *zap.Logger
}

func NewService(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Now().UnixNano()))
	}
	if opts.Sink == nil {
		opts.Sink = Discard
	}
	if opts.Tasks == nil {
		opts.Tasks = task.NewManager(opts.Logger.Named("tasks"))
	}
	if opts.Tracker == nil {
		opts.Tracker = tracker.NewWithClock(opts.Now)
	}

	// The generator and picker get their own sources so event order does not
	// shift the quest-cape roll.
	genRand := rand.New(rand.NewSource(opts.Rand.Int63()))
	pickRand := rand.New(rand.NewSource(opts.Rand.Int63()))
	gen := task.NewGenerator(genRand)

	return &Service{
		settings:   opts.Settings,
		state:      StateUnknown,
		prevXP:     make(map[skill.Skill]int),
		prevLevel:  make(map[skill.Skill]int),
		lastGain:   make(map[skill.Skill]time.Time),
		tasks:      opts.Tasks,
		tracker:    opts.Tracker,
		gen:        gen,
		picker:     flavor.NewPicker(pickRand, opts.Now),
		rnd:        opts.Rand,
		sink:       opts.Sink,
		onComplete: opts.OnComplete,
		now:        opts.Now,
		log:        opts.Logger,
	}
}

func (s *Service) TaskManager() *task.Manager { return s.tasks }
func (s *Service) Tracker() *tracker.Tracker   { return s.tracker }
func (s *Service) Generator() *task.Generator  { return s.gen }

func (s *Service) Settings() config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Service) GameState() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetSink replaces the message sink, e.g. once the websocket hub is up.
func (s *Service) SetSink(sink Sink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

func (s *Service) SetOnComplete(f func(Completion)) {
	s.mu.Lock()
	s.onComplete = f
	s.mu.Unlock()
}

// UpdateSettings clamps and applies new settings.
func (s *Service) UpdateSettings(next config.Settings) []config.RangeError {
	fixed := next.Clamp()
	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()
	for _, f := range fixed {
		s.log.Warn("setting clamped", zap.String("field", f.Field), zap.Int("value", f.Value))
	}
	return fixed
}

// Start brings the service up from the client snapshot: XP tracking is seeded when
// logged in, the task list is initialized (a restored list is kept), the starter
// tasks are added when missing and one random challenge is generated.
func (s *Service) Start(ctx context.Context, snap tracker.Snapshot) error {
	s.mu.Lock()
	s.snapshot = snap
	if snap.LoggedIn {
		s.state = StateLoggedIn
		s.seedTrackingLocked(snap)
	}
	s.mu.Unlock()
	s.tracker.Initialize(snap)

	if !s.tasks.Initialized() {
		s.tasks.InitializeAsync()
	}
	if err := s.tasks.Wait(ctx); err != nil {
		return fmt.Errorf("wait for tasks: %w", err)
	}

	for _, t := range task.StarterTasks(s.now().UTC()) {
		if _, ok := s.tasks.Get(t.ID); ok {
			continue
		}
		if _, err := s.tasks.Add(t); err != nil {
			return fmt.Errorf("add starter task %s: %w", t.ID, err)
		}
	}

	s.generateRandomChallenge()
	s.log.Info("solo leveling started",
		zap.Int("tasks", s.tasks.Len()),
		zap.Int("visible", len(s.tasks.Visible())),
		zap.Bool("logged_in", snap.LoggedIn))
	return nil
}

// Stop clears XP tracking and folds the session into the total play time.
func (s *Service) Stop() {
	s.mu.Lock()
	clear(s.prevXP)
	clear(s.prevLevel)
	clear(s.lastGain)
	s.mu.Unlock()

	s.tracker.UpdateSessionTime()
	s.log.Info("solo leveling stopped", zap.String("play_time", s.tracker.FormattedPlayTime()))
}

func (s *Service) seedTrackingLocked(snap tracker.Snapshot) {
	for k, v := range snap.XP {
		if k.IsValid() {
			s.prevXP[k] = v
		}
	}
	for k, v := range snap.Levels {
		if k.IsValid() {
			s.prevLevel[k] = v
		}
	}
}

func (s *Service) emit(msgs []flavor.Message) {
	if len(msgs) == 0 {
		return
	}
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	for _, m := range msgs {
		sink.Send(m)
	}
}

func (s *Service) roll() float64 {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.rnd.Float64()
}
