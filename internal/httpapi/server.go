// Package httpapi is the loopback bridge a game-client plugin talks to: it takes
// game events in, serves task and status queries, and streams chat messages out
// over a websocket.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/hiscore"
	"github.com/resolve109/solo-leveling/internal/task"
)

// Lookups is the subset of the hiscore client the bridge proxies.
type Lookups interface {
	Lookup(ctx context.Context, player string) (*hiscore.Stats, error)
	SearchWiki(ctx context.Context, term string) (hiscore.WikiSearchResult, error)
	EntityInfo(ctx context.Context, name string) (hiscore.EntityInfo, error)
}

type Options struct {
	Addr    string
	Token   string
	Service *engine.Service
	Lookups Lookups
	Hub     *Hub
	Logger  *zap.Logger

	// Persist is called after every request that changed state. Errors are
	// logged and do not fail the request.
	Persist func(ctx context.Context) error

	// SaveTask, when set, replaces Persist for task routes, which only change
	// the one task.
	SaveTask func(ctx context.Context, t task.Task) error
}

type Server struct {
	addr     string
	token    string
	svc      *engine.Service
	lookups  Lookups
	hub      *Hub
	log      *zap.Logger
	persist  func(ctx context.Context) error
	saveTask func(ctx context.Context, t task.Task) error

	httpServer   *http.Server
	readTimeout  time.Duration
	writeTimeout time.Duration
	started      time.Time
}

func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:8078"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Hub == nil {
		opts.Hub = NewHub(opts.Logger)
	}
	return &Server{
		addr:         opts.Addr,
		token:        opts.Token,
		svc:          opts.Service,
		lookups:      opts.Lookups,
		hub:          opts.Hub,
		log:          opts.Logger.Named("http"),
		persist:      opts.Persist,
		saveTask:     opts.SaveTask,
		readTimeout:  10 * time.Second,
		writeTimeout: 15 * time.Second,
		started:      time.Now(),
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Routes builds the router. The websocket route sits outside the timeout
// middleware since the connection is long lived.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequest)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)

		r.Get("/ws/chat", s.hub.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Route("/events", func(r chi.Router) {
				r.Post("/", s.handleEvent)
				r.Post("/login", s.handleTypedEvent(engine.EventLogin))
				r.Post("/gamestate", s.handleTypedEvent(engine.EventGameState))
				r.Post("/stat", s.handleTypedEvent(engine.EventStat))
				r.Post("/tick", s.handleTypedEvent(engine.EventTick))
				r.Post("/varbit", s.handleTypedEvent(engine.EventVarbit))
				r.Post("/activity", s.handleTypedEvent(engine.EventActivity))
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.handleTasks)
				r.Get("/all", s.handleAllTasks)
				r.Post("/generate", s.handleGenerate)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleTask)
					r.Post("/complete", s.handleComplete)
					r.Post("/reset", s.handleReset)
					r.Post("/hide", s.handleVisibility(false))
					r.Post("/show", s.handleVisibility(true))
				})
			})

			r.Get("/status", s.handleStatus)
			r.Get("/hiscores/{player}", s.handleHiscores)
			r.Get("/wiki", s.handleWiki)
		})
	})
	return r
}

// Start binds the socket and serves in the background.
func (s *Server) Start() (net.Addr, error) {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: s.readTimeout,
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, err
	}
	s.log.Info("bridge listening", zap.String("addr", ln.Addr().String()))
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("serve", zap.Error(err))
		}
	}()
	return ln.Addr(), nil
}

// Shutdown closes websocket clients and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("X-Bridge-Token") != s.token && r.URL.Query().Get("token") != s.token {
			writeJSON(w, http.StatusUnauthorized, errObj("UNAUTHORIZED", "missing or invalid X-Bridge-Token"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestID stamps requests that arrive without an id with a UUID so the host
// and the bridge log the same value.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(middleware.RequestIDHeader, id)
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *Server) changed(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if err := s.persist(ctx); err != nil {
		s.log.Warn("persist state", zap.Error(err))
	}
}

func (s *Server) taskChanged(ctx context.Context, t task.Task) {
	if s.saveTask == nil {
		s.changed(ctx)
		return
	}
	if err := s.saveTask(ctx, t); err != nil {
		s.log.Warn("persist task", zap.String("task_id", t.ID), zap.Error(err))
	}
}
