package adapthttp

import (
	"errors"
	"net/http"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

type entryBody struct {
	Date      string  `json:"date"`
	Weight    float64 `json:"weight"`
	Overwrite bool    `json:"overwrite,omitempty"`
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items := s.entries.History()
		if limit := intQuery(r, "limit", 0); limit > 0 && limit < len(items) {
			items = items[:limit]
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body entryBody
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		var (
			entry domain.WeightEntry
			err   error
		)
		if body.Overwrite {
			entry, err = s.entries.Overwrite(r.Context(), body.Date, body.Weight)
		} else {
			entry, err = s.entries.Add(r.Context(), body.Date, body.Weight)
		}
		var conflict *app.DateConflictError
		switch {
		case errors.As(err, &conflict):
			writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error(), "existing": conflict.Existing})
			return
		case err != nil:
			writeError(w, errorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		entry, ok := s.entries.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, errEntryNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case http.MethodPut:
		var body entryBody
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, ok, err := s.entries.Update(r.Context(), id, body.Date, body.Weight)
		if err != nil {
			writeError(w, errorStatus(err), err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, errEntryNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case http.MethodDelete:
		deleted, err := s.entries.Delete(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if !deleted {
			writeError(w, http.StatusNotFound, errEntryNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

var errEntryNotFound = errors.New("entry not found")

// errorStatus maps validation failures to 400 and everything else to 500.
func errorStatus(err error) int {
	if app.IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
