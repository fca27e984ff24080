package adapthttp

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weightlog/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	entries     *app.EntryStore
	profiles    *app.ProfileService
	dashboard   *app.DashboardService
	webDir      string
	chartWidth  int
	chartHeight int
}

// New creates a Server wired to the given application services.
func New(es *app.EntryStore, ps *app.ProfileService, ds *app.DashboardService, webDir string) *Server {
	return &Server{
		entries:     es,
		profiles:    ps,
		dashboard:   ds,
		webDir:      webDir,
		chartWidth:  800,
		chartHeight: 400,
	}
}

// WithChartSize sets the pixel size of rendered chart images.
func (s *Server) WithChartSize(width, height int) *Server {
	s.chartWidth = width
	s.chartHeight = height
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/entries", s.handleEntries)
	api.HandleFunc("/entries/{id}", s.handleEntry)

	api.HandleFunc("/profile", s.handleProfile)
	api.HandleFunc("/profile/height", s.handleProfileHeight)
	api.HandleFunc("/profile/goal", s.handleProfileGoal)
	api.HandleFunc("/profile/name", s.handleProfileName)
	api.HandleFunc("/setup", s.handleSetup)

	api.HandleFunc("/dashboard", s.handleDashboard)
	api.HandleFunc("/charts/weight", s.handleChartWeight)
	api.HandleFunc("/charts/weight.png", s.handleChartWeightPNG)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", spaFromDisk(s.webDir, s.profiles.IsSetup))

	return withNoCache(s.loggingMiddleware(root))
}
