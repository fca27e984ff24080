package adapthttp

import (
	"bytes"
	"errors"
	"net/http"

	"weightlog/internal/adapter/chartpng"
	"weightlog/internal/domain"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	mode, err := domain.ParseChangeMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.dashboard.Dashboard(mode))
}

func (s *Server) handleChartWeight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.dashboard.Chart())
}

const maxChartSide = 4000

func (s *Server) handleChartWeightPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	width := min(intQuery(r, "width", s.chartWidth), maxChartSide)
	height := min(intQuery(r, "height", s.chartHeight), maxChartSide)

	var buf bytes.Buffer
	if err := chartpng.Render(&buf, s.dashboard.Chart(), width, height); err != nil {
		if errors.Is(err, chartpng.ErrNotEnoughPoints) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
