package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/flavor"
	"github.com/resolve109/solo-leveling/internal/httpapi"
	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/tracker"
)

func newServeCmd() *cobra.Command {
	var (
		addr      string
		token     string
		saveEvery time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP bridge for a game-client plugin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if saveEvery <= 0 {
				return fmt.Errorf("--save-every must be positive, got %s", saveEvery)
			}
			// The bridge logs JSON unless told otherwise.
			if !cmd.Flags().Changed("log-json") {
				_ = cmd.Flags().Set("log-json", "true")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = a.cfg.Runtime.HTTPAddr
			}
			if token == "" {
				token = a.cfg.Runtime.BridgeToken
			}

			// Saves come from handlers and the ticker; one at a time.
			var saveMu sync.Mutex
			save := func(ctx context.Context) error {
				saveMu.Lock()
				defer saveMu.Unlock()
				return a.save(ctx)
			}
			saveTask := func(ctx context.Context, t task.Task) error {
				saveMu.Lock()
				defer saveMu.Unlock()
				return a.saveTask(ctx, t)
			}

			hub := httpapi.NewHub(a.log)
			chatLog := a.log.Named("chat")
			a.svc.SetSink(engine.MultiSink{hub, engine.SinkFunc(func(m flavor.Message) {
				chatLog.Info(m.Text, zap.String("kind", string(m.Kind)))
			})})

			if !a.started {
				if err := a.svc.Start(ctx, tracker.Snapshot{}); err != nil {
					return err
				}
			}

			srv := httpapi.New(httpapi.Options{
				Addr:     addr,
				Token:    token,
				Service:  a.svc,
				Lookups:  a.hiscores(),
				Hub:      hub,
				Logger:   a.log,
				Persist:  save,
				SaveTask: saveTask,
			})
			if _, err := srv.Start(); err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			g.Go(func() error {
				t := time.NewTicker(saveEvery)
				defer t.Stop()
				for {
					select {
					case <-gctx.Done():
						return nil
					case <-t.C:
						a.svc.Tracker().UpdateSessionTime()
						if err := save(gctx); err != nil {
							a.log.Warn("periodic save", zap.Error(err))
						}
					}
				}
			})

			err = g.Wait()
			a.svc.Stop()
			if serr := save(context.Background()); serr != nil {
				err = errors.Join(err, serr)
			}
			a.log.Info("bridge stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default SL_HTTP_ADDR or 127.0.0.1:8078)")
	cmd.Flags().StringVar(&token, "token", "", "Require this X-Bridge-Token (default SL_BRIDGE_TOKEN)")
	cmd.Flags().DurationVar(&saveEvery, "save-every", 30*time.Second, "Periodic save interval")
	return cmd
}
