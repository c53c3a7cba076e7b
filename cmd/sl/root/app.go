package root

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/resolve109/solo-leveling/internal/config"
	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/flavor"
	"github.com/resolve109/solo-leveling/internal/hiscore"
	"github.com/resolve109/solo-leveling/internal/logging"
	"github.com/resolve109/solo-leveling/internal/storage"
	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/tracker"
	"github.com/resolve109/solo-leveling/internal/ui"
)

// app is what every command works against: config, logger, storage and the
// engine restored from the last saved session.
type app struct {
	cfg   config.Config
	log   *zap.Logger
	db    *sql.DB
	store *storage.Store
	svc   *engine.Service

	// started is set when openApp already ran Start on a fresh database.
	started bool
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return config.Config{}, err
	}
	if flags.dbPath != "" {
		cfg.Runtime.DBPath = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.Runtime.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Runtime.LogJSON = flags.logJSON
	}
	return cfg, nil
}

// openApp loads config, opens the database and restores the engine. A fresh
// database is seeded with the default, starter and one random task and saved
// right away.
func openApp(ctx context.Context, cmd *cobra.Command) (*app, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Runtime.LogLevel, cfg.Runtime.LogJSON)
	if err != nil {
		return nil, nil, err
	}
	for _, c := range cfg.Clamped {
		log.Warn("setting clamped", zap.String("field", c.Field), zap.Int("value", c.Value))
	}

	db, err := storage.Open(ctx, cfg.Runtime.DBPath)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	a := &app{cfg: cfg, log: log, db: db, store: storage.NewStore(db)}

	a.svc = engine.NewService(engine.Options{
		Settings:   cfg.Settings,
		Logger:     log.Named("engine"),
		Sink:       printSink(cmd.ErrOrStderr()),
		OnComplete: a.recordCompletion,
	})

	cleanup := func() {
		_ = db.Close()
		_ = log.Sync()
	}

	found, err := a.store.LoadInto(ctx, a.svc.TaskManager(), a.svc.Tracker())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if !found {
		log.Debug("seeding a fresh database", zap.String("path", cfg.Runtime.DBPath))
		if err := a.svc.Start(ctx, tracker.Snapshot{}); err != nil {
			cleanup()
			return nil, nil, err
		}
		a.started = true
		if err := a.save(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return a, cleanup, nil
}

func (a *app) save(ctx context.Context) error {
	if err := a.store.SaveFrom(ctx, a.svc.TaskManager(), a.svc.Tracker()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// saveTask writes a single changed task; the tracker is left as stored.
func (a *app) saveTask(ctx context.Context, t task.Task) error {
	if err := a.store.SaveTask(ctx, t); err != nil {
		return fmt.Errorf("save task %s: %w", t.ID, err)
	}
	return nil
}

func (a *app) recordCompletion(c engine.Completion) {
	err := a.store.RecordCompletion(context.Background(), storage.Completion{
		TaskID:       c.TaskID,
		Name:         c.Name,
		CompletedAt:  c.At,
		XPReward:     c.XPReward,
		PointsReward: c.PointsReward,
		Auto:         c.Auto,
	})
	if err != nil {
		a.log.Warn("record completion", zap.String("task_id", c.TaskID), zap.Error(err))
	}
}

func (a *app) hiscores() *hiscore.Client {
	return hiscore.NewClient(hiscore.Config{
		BaseURL: a.cfg.Runtime.HiscoreURL,
		WikiURL: a.cfg.Runtime.WikiURL,
		Logger:  a.log.Named("hiscore"),
	})
}

// printSink writes chat messages to w. Commands pass stderr so stdout stays
// parseable for --json and export.
func printSink(w io.Writer) engine.Sink {
	return engine.SinkFunc(func(m flavor.Message) {
		fmt.Fprintln(w, ui.Message(m))
	})
}
