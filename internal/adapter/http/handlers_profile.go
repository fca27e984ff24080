package adapthttp

import (
	"context"
	"net/http"

	"weightlog/internal/app"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": s.profiles.Profile(), "setup": s.profiles.IsSetup()})
}

func (s *Server) handleProfileHeight(w http.ResponseWriter, r *http.Request) {
	s.putNumber(w, r, s.profiles.SetHeight)
}

func (s *Server) handleProfileGoal(w http.ResponseWriter, r *http.Request) {
	s.putNumber(w, r, s.profiles.SetGoal)
}

func (s *Server) putNumber(w http.ResponseWriter, r *http.Request, set func(context.Context, float64) error) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Value float64 `json:"value"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := set(r.Context(), body.Value); err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": s.profiles.Profile()})
}

func (s *Server) handleProfileName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.profiles.SetName(r.Context(), body.Name); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": s.profiles.Profile()})
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"setup": s.profiles.IsSetup()})

	case http.MethodPost:
		var req app.SetupRequest
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.profiles.CompleteSetup(r.Context(), req); err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"setup": true, "profile": s.profiles.Profile()})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
