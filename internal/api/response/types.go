package response

import (
	"github.com/mcoot/puppybowl/internal/cards"
	"github.com/mcoot/puppybowl/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Breed     string `json:"breed"`
	Status    string `json:"status"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
	TeamID    string `json:"teamId"`
	CohortID  string `json:"cohortId"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name.String(),
		Breed:     p.Breed.String(),
		Status:    p.Status.String(),
		ImageURL:  p.ImageURL.String(),
		CreatedAt: p.CreatedAt.String(),
		TeamID:    p.TeamID.String(),
		CohortID:  p.CohortID.String(),
	}
}

// CardsResponse lists card view-models in roster order
type CardsResponse struct {
	Cards []cards.Card `json:"cards"`
	Count int          `json:"count"`
}

// CardsFromModel wraps cards for the response
func CardsFromModel(c []cards.Card) CardsResponse {
	if c == nil {
		c = []cards.Card{}
	}
	return CardsResponse{
		Cards: c,
		Count: len(c),
	}
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status string `json:"status"`
}
