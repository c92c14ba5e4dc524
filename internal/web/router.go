package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/puppybowl/internal/metrics"
	"github.com/mcoot/puppybowl/internal/services/roster"
	"github.com/mcoot/puppybowl/internal/services/viewer"
	"github.com/mcoot/puppybowl/internal/web/handler"
	"github.com/mcoot/puppybowl/internal/web/middleware"
	"github.com/mcoot/puppybowl/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger           *slog.Logger
	RosterController *roster.Controller
	ViewerService    *viewer.Service
	Hub              *sse.Hub
	Metrics          *metrics.Recorder
	StaticDir        string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	// Player ids are path-escaped in card actions; handlers unescape them
	r.UseEncodedPath()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))

	// Create SSE hub if not provided
	hub := cfg.Hub
	if hub == nil {
		hub = sse.NewHub(cfg.Logger)
		go hub.Run()
	}

	rosterHandler := handler.NewRosterHandler(cfg.RosterController, hub, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	// Roster routes carry a viewer identity and flash messages
	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Viewer(cfg.ViewerService, cfg.Logger))
	pages.Use(middleware.Flash())

	pages.HandleFunc("/", rosterHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/roster", rosterHandler.Roster).Methods(http.MethodGet)
	pages.HandleFunc("/events", rosterHandler.Events).Methods(http.MethodGet)
	pages.HandleFunc("/players", rosterHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/players/{id}/details", rosterHandler.ToggleDetails).Methods(http.MethodPost)
	pages.HandleFunc("/players/{id}/remove", rosterHandler.Remove).Methods(http.MethodPost)

	return r
}
