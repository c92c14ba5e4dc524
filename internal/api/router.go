package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/puppybowl/internal/api/apierr"
	"github.com/mcoot/puppybowl/internal/api/handler"
	"github.com/mcoot/puppybowl/internal/api/middleware"
	"github.com/mcoot/puppybowl/internal/api/response"
	"github.com/mcoot/puppybowl/internal/metrics"
	"github.com/mcoot/puppybowl/internal/services/roster"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	RosterController *roster.Controller
	Metrics          *metrics.Recorder
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	// Player ids are path-escaped; handlers unescape them
	r.UseEncodedPath()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.RosterController)
	cardsHandler := handler.NewCardsHandler(cfg.RosterController)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(logger))
	api.Use(middleware.Logging(logger, cfg.Metrics))

	api.HandleFunc("/cards", cardsHandler.List).Methods(http.MethodGet)

	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Remove).Methods(http.MethodDelete)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Unmatched requests get the same JSON error body as handler failures
	for _, router := range []*mux.Router{r, api} {
		router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
		router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)
	}

	return r
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError(r.Method))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
