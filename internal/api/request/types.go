package request

import "github.com/mcoot/puppybowl/internal/model"

// CreatePlayerRequest is the request body for adding a player.
// Values are forwarded to the roster API unchanged.
type CreatePlayerRequest struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Breed     string `json:"breed"`
	Status    string `json:"status"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
	TeamID    string `json:"teamId"`
	CohortID  string `json:"cohortId"`
}

// ToModel converts the request into the create body
func (r CreatePlayerRequest) ToModel() model.NewPlayer {
	return model.NewPlayer(r)
}
