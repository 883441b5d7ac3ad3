package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kellen/chronos/internal/chat"
)

// sessionRegistry holds the open chat sessions by id.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*chat.Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*chat.Session)}
}

func (r *sessionRegistry) add(s *chat.Session) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return id
}

func (r *sessionRegistry) get(id string) (*chat.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *sessionRegistry) remove(id string) (*chat.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	return s, ok
}

func (r *sessionRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.Close()
		delete(r.sessions, id)
	}
}

type sessionView struct {
	ID       string         `json:"id"`
	Messages []chat.Message `json:"messages"`
	Pending  bool           `json:"pending"`
	Degraded bool           `json:"degraded"`
}

func viewSession(id string, s *chat.Session) sessionView {
	return sessionView{ID: id, Messages: s.History(), Pending: s.Pending(), Degraded: s.Degraded()}
}

// createSession opens a dialogue and, when an era is selected, runs its
// introduction prompt before responding.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess := chat.New(s.opts.Opener, chat.WithLogger(s.logger))
	sess.Initialize(r.Context())

	ex, err := sess.BeginAutoPrompt(s.opts.Machine.Era(), s.opts.Machine.Language())
	if err != nil {
		s.logger.Warn("era auto-prompt", "error", err)
	}
	if ex != nil {
		sess.Complete(ex.Run(r.Context()))
	}

	id := s.sessions.add(sess)
	JSON(w, http.StatusCreated, viewSession(id, sess))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.get(id)
	if !ok {
		Error(w, http.StatusNotFound, "session not found")
		return
	}
	JSON(w, http.StatusOK, viewSession(id, sess))
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.get(id)
	if !ok {
		Error(w, http.StatusNotFound, "session not found")
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := decode(w, r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ex, err := sess.Begin(body.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, chat.ErrBusy):
		Error(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, chat.ErrNoDialogue):
		Error(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	sess.Complete(ex.Run(r.Context()))
	JSON(w, http.StatusOK, viewSession(id, sess))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.remove(chi.URLParam(r, "id"))
	if !ok {
		Error(w, http.StatusNotFound, "session not found")
		return
	}
	sess.Close()
	w.WriteHeader(http.StatusNoContent)
}
