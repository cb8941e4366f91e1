// Package httpapi exposes dialog sessions over HTTP: REST endpoints for the
// Navigator's transitions plus a websocket stream of its events. It is a
// host integration surface; rendering stays with the client.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fenwick-games/parley"
	"github.com/fenwick-games/parley/internal/logging"
	"github.com/fenwick-games/parley/pkg/ports"
	"github.com/fenwick-games/parley/pkg/session"
)

// Server routes session operations to a session.Manager. One provider per
// speaker name; clients open sessions against a speaker.
type Server struct {
	providers map[string]ports.ContentProvider
	sessions  *session.Manager
	logger    *slog.Logger
	router    chi.Router
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionManager injects a preconfigured manager (custom Navigator
// options, metrics hooks).
func WithSessionManager(m *session.Manager) Option {
	return func(s *Server) {
		s.sessions = m
	}
}

// NewServer creates the handler. providers maps speaker names to their
// content.
func NewServer(providers map[string]ports.ContentProvider, opts ...Option) *Server {
	s := &Server{
		providers: providers,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessions == nil {
		s.sessions = session.NewManager(session.WithLogger(s.logger))
	}

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Post("/speakers/{speaker}/sessions", s.handleCreate)
		r.Get("/sessions/{id}", s.handleGet)
		r.Post("/sessions/{id}/choice", s.handleChoice)
		r.Post("/sessions/{id}/next", s.handleNext)
		r.Post("/sessions/{id}/advance", s.handleAdvance)
		r.Post("/sessions/{id}/switch", s.handleSwitch)
		r.Delete("/sessions/{id}", s.handleEnd)
		r.Get("/sessions/{id}/ws", s.handleWS)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	speaker := chi.URLParam(r, "speaker")
	provider, ok := s.providers[speaker]
	if !ok {
		http.Error(w, "unknown speaker", http.StatusNotFound)
		return
	}

	var body struct {
		Tree string `json:"tree"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	sess, err := s.sessions.Create(r.Context(), provider, body.Tree)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	var view SessionView
	sess.Do(func(nav *parley.Navigator) {
		view = viewOfSession(sess.ID, nav)
	})
	s.writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	var view SessionView
	sess.Do(func(nav *parley.Navigator) {
		view = viewOfSession(sess.ID, nav)
	})
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleChoice(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var body struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var view SessionView
	sess.Do(func(nav *parley.Navigator) {
		nav.SelectChoice(r.Context(), body.Index)
		view = viewOfSession(sess.ID, nav)
	})
	s.reapIfIdle(r, sess.ID, view)
	s.writeJSON(w, http.StatusOK, view)
}

// handleNext chains the current node's automatic successor. The client is
// the presentation layer here, so next-chaining (including auto-advance
// timers) is driven from this endpoint; a node without a successor ends the
// dialog.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var view SessionView
	sess.Do(func(nav *parley.Navigator) {
		if cur := nav.CurrentNode(); cur != nil && len(cur.Choices()) == 0 {
			if next := cur.Next(); next != nil {
				nav.NavigateToNode(r.Context(), next)
			} else {
				nav.AdvanceDialog(r.Context())
			}
		}
		view = viewOfSession(sess.ID, nav)
	})
	s.reapIfIdle(r, sess.ID, view)
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var view SessionView
	sess.Do(func(nav *parley.Navigator) {
		nav.AdvanceDialog(r.Context())
		view = viewOfSession(sess.ID, nav)
	})
	s.reapIfIdle(r, sess.ID, view)
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var body struct {
		Tree string `json:"tree"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Tree == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var switched bool
	var view SessionView
	sess.Do(func(nav *parley.Navigator) {
		switched = nav.SwitchToTree(r.Context(), body.Tree)
		view = viewOfSession(sess.ID, nav)
	})
	if !switched {
		http.Error(w, "tree not found or invalid", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.End(r.Context(), id); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reapIfIdle forgets sessions whose dialog ended inside the operation (for
// example a null-target choice).
func (s *Server) reapIfIdle(r *http.Request, id string, view SessionView) {
	if !view.Active {
		if err := s.sessions.End(r.Context(), id); err != nil && err != session.ErrSessionNotFound {
			s.logger.Warn("failed to reap idle session", "session_id", id, "err", err)
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "err", err)
	}
}

func viewOfSession(id string, nav *parley.Navigator) SessionView {
	return SessionView{
		SessionID: id,
		Active:    nav.IsActive(),
		Node:      viewOfNode(nav.CurrentNode()),
	}
}
