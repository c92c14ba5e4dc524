package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/puppybowl/internal/metrics"
	"github.com/mcoot/puppybowl/internal/middleware"
)

// Logging creates logging middleware for the API
func Logging(logger *slog.Logger, rec *metrics.Recorder) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")), rec)
}
