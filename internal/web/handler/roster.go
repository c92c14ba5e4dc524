package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/puppybowl/internal/model"
	"github.com/mcoot/puppybowl/internal/rosterapi"
	"github.com/mcoot/puppybowl/internal/services/roster"
	"github.com/mcoot/puppybowl/internal/web/middleware"
	"github.com/mcoot/puppybowl/internal/web/sse"
	"github.com/mcoot/puppybowl/internal/web/templates/components"
	"github.com/mcoot/puppybowl/internal/web/templates/layout"
	"github.com/mcoot/puppybowl/internal/web/templates/pages"
)

// Flash texts shown after a failed roster action
const (
	msgFetchFailed  = "Trouble fetching players. Please try again."
	msgCreateFailed = "Something went wrong with adding that player."
	msgToggleFailed = "Trouble fetching that player's details."
	msgRemoveFailed = "Trouble removing that player from the roster."
	msgBadForm      = "Invalid form data"
)

// RosterHandler serves the roster page and its actions
type RosterHandler struct {
	controller *roster.Controller
	hub        *sse.Hub
	logger     *slog.Logger
}

// NewRosterHandler creates a new RosterHandler
func NewRosterHandler(controller *roster.Controller, hub *sse.Hub, logger *slog.Logger) *RosterHandler {
	return &RosterHandler{
		controller: controller,
		hub:        hub,
		logger:     logger,
	}
}

// Home fetches the roster, renders every card and mounts the create form
func (h *RosterHandler) Home(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r.Context())
	flash := middleware.GetFlash(r.Context())

	cards, err := h.controller.Roster(r.Context(), viewer)
	if err != nil && flash == nil {
		flash = &layout.FlashMessage{Type: "error", Message: msgFetchFailed}
	}

	data := pages.RosterData{
		PageData: layout.PageData{
			Title: "Roster",
			Flash: flash,
		},
		Cards: cards,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Roster(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Roster renders only the roster container, for SSE-triggered refreshes
func (h *RosterHandler) Roster(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r.Context())

	// A failed fetch still renders an empty container
	cards, _ := h.controller.Roster(r.Context(), viewer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.RosterList(cards).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Create reads every form field as a string, creates the player and returns to the roster
func (h *RosterHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", msgBadForm)
		redirect(w, r, "/")
		return
	}

	player := model.NewPlayerFromValues(r.PostForm.Get)

	created, err := h.controller.Create(r.Context(), middleware.GetViewer(r.Context()), player)
	if err != nil {
		middleware.SetFlash(w, "error", msgCreateFailed)
		redirect(w, r, "/")
		return
	}

	name := created.Name.String()
	if name == "" {
		name = player.Name
	}
	middleware.SetFlash(w, "success", "Added "+name+" to the roster")
	redirect(w, r, "/")
}

// ToggleDetails flips a card between showing and hiding its detail fields.
// HTMX requests get the re-rendered card back.
func (h *RosterHandler) ToggleDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	card, err := h.controller.ToggleDetails(r.Context(), middleware.GetViewer(r.Context()), id)
	if err != nil {
		middleware.SetFlash(w, "error", toggleFailure(err))
		redirect(w, r, "/")
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.PlayerCard(*card).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Remove deletes a player and returns to the roster
func (h *RosterHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.controller.Remove(r.Context(), middleware.GetViewer(r.Context()), id); err != nil {
		middleware.SetFlash(w, "error", msgRemoveFailed)
		redirect(w, r, "/")
		return
	}

	middleware.SetFlash(w, "info", "Player removed from the roster")
	redirect(w, r, "/")
}

// Events streams roster-changed notifications
func (h *RosterHandler) Events(w http.ResponseWriter, r *http.Request) {
	sse.ServeSSE(w, r, h.hub, middleware.GetViewer(r.Context()))
}

func toggleFailure(err error) string {
	if errors.Is(err, rosterapi.ErrNotFound) {
		return "That player is no longer on the roster."
	}
	return msgToggleFailed
}

// playerID reads the {id} route variable. The router keeps paths encoded,
// so the id is unescaped here.
func playerID(r *http.Request) (model.PlayerID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := url.PathUnescape(raw)
	if err != nil || id == "" {
		return "", false
	}
	return model.PlayerID(id), true
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirect sends HTMX requests an HX-Redirect and everything else a 303
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
