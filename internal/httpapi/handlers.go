package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/hiscore"
	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/task"
)

const maxEventBody = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"game_state": s.svc.GameState(),
		"clients":    s.hub.Clients(),
		"uptime":     time.Since(s.started).Round(time.Second).String(),
	})
}

// POST /events with a typed envelope.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var e engine.Event
	if !decodeBody(w, r, &e) {
		return
	}
	s.applyEvent(w, r, e)
}

// POST /events/{type}; the path fixes the type so the body may omit it.
func (s *Server) handleTypedEvent(typ engine.EventType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e engine.Event
		if r.ContentLength != 0 && !decodeBody(w, r, &e) {
			return
		}
		e.Type = typ
		s.applyEvent(w, r, e)
	}
}

func (s *Server) applyEvent(w http.ResponseWriter, r *http.Request, e engine.Event) {
	if err := s.svc.Apply(e); err != nil {
		if errors.Is(err, engine.ErrBadEvent) {
			writeJSON(w, http.StatusUnprocessableEntity, errObj("VALIDATION_ERROR", err.Error()))
			return
		}
		s.log.Error("apply event", zap.String("type", string(e.Type)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errObj("SERVER_ERROR", "failed to apply event"))
		return
	}
	// Ticks arrive every 0.6s; persisting each one would hammer the disk.
	if e.Type != engine.EventTick {
		s.changed(r.Context())
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"accepted": true, "type": e.Type})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errObj("VALIDATION_ERROR", "invalid JSON: "+err.Error()))
		return false
	}
	return true
}

// GET /tasks: what the overlay shows.
func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.svc.Tasks()
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks, "count": len(tasks)})
}

// GET /tasks/all?category=&difficulty=&source=&completed=
func (s *Server) handleAllTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tasks := s.svc.TaskManager().All()

	keep := func(task.Task) bool { return true }
	if v := q.Get("category"); v != "" {
		c, err := task.ParseCategory(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errObj("VALIDATION_ERROR", err.Error()))
			return
		}
		prev := keep
		keep = func(t task.Task) bool { return prev(t) && t.Category == c }
	}
	if v := q.Get("difficulty"); v != "" {
		d, err := task.ParseDifficulty(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errObj("VALIDATION_ERROR", err.Error()))
			return
		}
		prev := keep
		keep = func(t task.Task) bool { return prev(t) && t.Difficulty == d }
	}
	if v := q.Get("source"); v != "" {
		src, err := task.ParseSource(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errObj("VALIDATION_ERROR", err.Error()))
			return
		}
		prev := keep
		keep = func(t task.Task) bool { return prev(t) && t.Source == src }
	}
	if v := q.Get("completed"); v != "" {
		want := qBool(r, "completed")
		prev := keep
		keep = func(t task.Task) bool { return prev(t) && t.Completed == want }
	}

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": out, "count": len(out)})
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	t, ok := s.svc.TaskManager().Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errObj("NOT_FOUND", "task not found"))
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.CompleteTask(chi.URLParam(r, "id"))
	if err != nil {
		s.writeTaskError(w, err)
		return
	}
	s.taskChanged(r.Context(), t)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.svc.ResetTask(id); err != nil {
		s.writeTaskError(w, err)
		return
	}
	t, _ := s.svc.TaskManager().Get(id)
	s.taskChanged(r.Context(), t)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleVisibility(visible bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := s.svc.SetTaskVisible(id, visible); err != nil {
			s.writeTaskError(w, err)
			return
		}
		t, _ := s.svc.TaskManager().Get(id)
		s.taskChanged(r.Context(), t)
		writeJSON(w, http.StatusOK, t)
	}
}

// POST /tasks/generate[?skill=Mining]
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var (
		t   task.Task
		err error
	)
	if name := r.URL.Query().Get("skill"); name != "" {
		sk, perr := skill.Parse(name)
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, errObj("VALIDATION_ERROR", perr.Error()))
			return
		}
		t, err = s.svc.GeneratePersonalized(sk)
	} else {
		t, err = s.svc.GenerateRandom()
	}
	if err != nil {
		s.writeTaskError(w, err)
		return
	}
	s.taskChanged(r.Context(), t)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, task.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errObj("NOT_FOUND", err.Error()))
	case errors.Is(err, engine.ErrAlreadyCompleted), errors.Is(err, task.ErrDuplicateID):
		writeJSON(w, http.StatusConflict, errObj("CONFLICT", err.Error()))
	default:
		writeJSON(w, http.StatusBadRequest, errObj("BAD_REQUEST", err.Error()))
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Status())
}

func (s *Server) handleHiscores(w http.ResponseWriter, r *http.Request) {
	if s.lookups == nil {
		writeJSON(w, http.StatusServiceUnavailable, errObj("UNAVAILABLE", "hiscore lookups are disabled"))
		return
	}
	player := strings.TrimSpace(chi.URLParam(r, "player"))
	if player == "" {
		writeJSON(w, http.StatusBadRequest, errObj("VALIDATION_ERROR", "player is required"))
		return
	}
	stats, err := s.lookups.Lookup(r.Context(), player)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /wiki?q=term[&info=1]
func (s *Server) handleWiki(w http.ResponseWriter, r *http.Request) {
	if s.lookups == nil {
		writeJSON(w, http.StatusServiceUnavailable, errObj("UNAVAILABLE", "wiki lookups are disabled"))
		return
	}
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		writeJSON(w, http.StatusBadRequest, errObj("VALIDATION_ERROR", "q is required"))
		return
	}
	if qBool(r, "info") {
		info, err := s.lookups.EntityInfo(r.Context(), term)
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, info)
		return
	}
	res, err := s.lookups.SearchWiki(r.Context(), term)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, hiscore.ErrPlayerNotFound) {
		writeJSON(w, http.StatusNotFound, errObj("NOT_FOUND", err.Error()))
		return
	}
	var herr *hiscore.HTTPError
	if errors.As(err, &herr) {
		writeJSON(w, http.StatusBadGateway, errObj("UPSTREAM_ERROR", herr.Error()))
		return
	}
	s.log.Warn("upstream lookup", zap.Error(err))
	writeJSON(w, http.StatusBadGateway, errObj("UPSTREAM_ERROR", "lookup failed"))
}
