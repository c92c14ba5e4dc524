package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/puppybowl/internal/api/request"
	"github.com/mcoot/puppybowl/internal/api/response"
	"github.com/mcoot/puppybowl/internal/model"
	"github.com/mcoot/puppybowl/internal/services/roster"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	controller *roster.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller *roster.Controller) *PlayerHandler {
	return &PlayerHandler{
		controller: controller,
	}
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.controller.Player(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.controller.Create(r.Context(), "", req.ToModel())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Remove handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.controller.Remove(r.Context(), "", id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// playerID extracts the unescaped {id} path variable
func playerID(r *http.Request) (model.PlayerID, error) {
	raw := mux.Vars(r)["id"]
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", NewInvalidRequestError("invalid player id")
	}
	if id == "" {
		return "", model.ErrMissingID
	}
	return model.PlayerID(id), nil
}
