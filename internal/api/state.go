package api

import (
	"errors"
	"net/http"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/i18n"
)

type stateView struct {
	Screen   appstate.Screen `json:"screen"`
	Language i18n.Language   `json:"language"`
	Era      *eraView        `json:"era"`
}

func (s *Server) snapshot() stateView {
	snap := s.opts.Machine.Snapshot()
	v := stateView{Screen: snap.Screen, Language: snap.Language}
	if snap.Era != nil {
		e := localizeEra(*snap.Era, snap.Language)
		v.Era = &e
	}
	return v
}

func (s *Server) getState(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, s.snapshot())
}

// respondState reports the new state. Persistence failures leave the
// in-memory state applied, so they are logged rather than returned.
func (s *Server) respondState(w http.ResponseWriter, op string, err error) {
	if err != nil {
		s.logger.Error("persist app state", "op", op, "error", err)
	}
	JSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) startChat(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, "start-chat", s.opts.Machine.StartChat(r.Context()))
}

func (s *Server) goHome(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, "home", s.opts.Machine.GoHome(r.Context()))
}

func (s *Server) selectEra(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EraID string `json:"eraId"`
	}
	if err := decode(w, r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	err := s.opts.Machine.SelectEra(r.Context(), body.EraID)
	if errors.Is(err, appstate.ErrUnknownEra) {
		Error(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondState(w, "select-era", err)
}

func (s *Server) setLanguage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Language i18n.Language `json:"language"`
	}
	if err := decode(w, r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	err := s.opts.Machine.SetLanguage(r.Context(), body.Language)
	if isUnsupportedLanguage(err) {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondState(w, "language", err)
}
