package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/puppybowl/internal/middleware"
	"github.com/mcoot/puppybowl/internal/web/templates/layout"
	"github.com/mcoot/puppybowl/internal/web/templates/pages"
)

// Recovery creates panic recovery middleware for the web interface.
// A panic renders the error page inside the normal layout.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)

	page := pages.Error(pages.ErrorData{
		PageData: layout.PageData{
			Title: "Error",
			Flash: &layout.FlashMessage{Type: "error", Message: "Something went wrong while building the roster page."},
		},
		Heading: "Internal Server Error",
	})
	_ = page.Render(r.Context(), w)
}
