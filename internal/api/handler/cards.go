package handler

import (
	"net/http"

	"github.com/mcoot/puppybowl/internal/api/response"
	"github.com/mcoot/puppybowl/internal/services/roster"
)

// CardsHandler serves card view-models as JSON
type CardsHandler struct {
	controller *roster.Controller
}

// NewCardsHandler creates a new cards handler
func NewCardsHandler(controller *roster.Controller) *CardsHandler {
	return &CardsHandler{
		controller: controller,
	}
}

// List handles GET /api/v1/cards.
// Cards are built for an anonymous viewer, so every hidden field stays hidden.
func (h *CardsHandler) List(w http.ResponseWriter, r *http.Request) {
	c, err := h.controller.Roster(r.Context(), "")
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CardsFromModel(c))
}
