package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/puppybowl/internal/model"
	"github.com/mcoot/puppybowl/internal/services/viewer"
)

type contextKey string

const (
	viewerContextKey contextKey = "viewer"

	viewerCookieMaxAge = 60 * 60 * 24 * 30
)

// GetViewer retrieves the viewer identity from the request context
// Returns empty if the viewer middleware did not run
func GetViewer(ctx context.Context) model.ViewerID {
	id, _ := ctx.Value(viewerContextKey).(model.ViewerID)
	return id
}

// WithViewer returns a copy of ctx carrying id
func WithViewer(ctx context.Context, id model.ViewerID) context.Context {
	return context.WithValue(ctx, viewerContextKey, id)
}

// Viewer returns middleware that identifies the browser by its viewer cookie,
// issuing a fresh cookie when it is missing or malformed
func Viewer(viewers *viewer.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolveViewer(r, viewers)
			if err != nil {
				token, tokenErr := viewers.NewToken()
				if tokenErr != nil {
					logger.Error("failed to issue viewer token", slog.String("error", tokenErr.Error()))
					next.ServeHTTP(w, r)
					return
				}
				id, err = viewers.Resolve(token)
				if err != nil {
					logger.Error("issued viewer token did not resolve", slog.String("error", err.Error()))
					next.ServeHTTP(w, r)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     viewer.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   viewerCookieMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), id)))
		})
	}
}

func resolveViewer(r *http.Request, viewers *viewer.Service) (model.ViewerID, error) {
	cookie, err := r.Cookie(viewer.CookieName)
	if err != nil {
		return "", err
	}
	id, err := viewers.Resolve(cookie.Value)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("empty viewer id")
	}
	return id, nil
}
