// Package cards maps player records to card view-models.
//
// A card is everything needed to draw one player: its fields in display
// order, which of them stay hidden until the details toggle reveals them,
// and the two actions (details, remove) addressed by the player's id.
// Nothing here depends on HTML, so the same cards back the web pages and
// the JSON API.
package cards

import (
	"net/url"

	"github.com/mcoot/puppybowl/internal/model"
)

// Field kinds
const (
	KindText  = "text"
	KindImage = "image"
)

// Action names
const (
	ActionDetails = "details"
	ActionRemove  = "remove"
)

// Field is one display attribute of a card
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
	// Detail marks a field that is hidden until the details toggle reveals it
	Detail bool `json:"detail"`
	// Hidden is true while a detail field is suppressed on this card
	Hidden bool `json:"hidden"`
}

// Action is a control on a card
type Action struct {
	Name     string         `json:"name"`
	Label    string         `json:"label"`
	Method   string         `json:"method"`
	Path     string         `json:"path"`
	PlayerID model.PlayerID `json:"player_id"`
}

// Card is the view-model for one player
type Card struct {
	ID       model.PlayerID `json:"id"`
	Name     string         `json:"name"`
	Fields   []Field        `json:"fields"`
	Revealed bool           `json:"revealed"`
	Actions  []Action       `json:"actions"`
}

type fieldSpec struct {
	name   string
	label  string
	kind   string
	hidden bool
	value  func(p model.Player) string
}

// fieldSpecs is the card layout, in display order
var fieldSpecs = []fieldSpec{
	{name: "id", label: "ID", kind: KindText, value: func(p model.Player) string { return string(p.ID) }},
	{name: "name", label: "Name", kind: KindText, value: func(p model.Player) string { return p.Name.String() }},
	{name: "breed", label: "Breed", kind: KindText, value: func(p model.Player) string { return p.Breed.String() }},
	{name: "status", label: "Status", kind: KindText, hidden: true, value: func(p model.Player) string { return p.Status.String() }},
	{name: "imageUrl", label: "Image", kind: KindImage, value: func(p model.Player) string { return p.ImageURL.String() }},
	{name: "createdAt", label: "Created", kind: KindText, hidden: true, value: func(p model.Player) string { return p.CreatedAt.String() }},
	{name: "teamId", label: "Team", kind: KindText, value: func(p model.Player) string { return p.TeamID.String() }},
	{name: "cohortId", label: "Cohort", kind: KindText, hidden: true, value: func(p model.Player) string { return p.CohortID.String() }},
}

// HiddenFieldNames lists the fields hidden until the details toggle reveals them
func HiddenFieldNames() []string {
	var names []string
	for _, spec := range fieldSpecs {
		if spec.hidden {
			names = append(names, spec.name)
		}
	}
	return names
}

// Build maps players to cards, keeping input order.
// revealed marks the players whose hidden fields are shown; it may be nil.
func Build(players []model.Player, revealed map[model.PlayerID]bool) []Card {
	out := make([]Card, 0, len(players))
	for _, p := range players {
		out = append(out, New(p, revealed[p.ID]))
	}
	return out
}

// New builds the card for a single player
func New(p model.Player, revealed bool) Card {
	fields := make([]Field, 0, len(fieldSpecs))
	for _, spec := range fieldSpecs {
		fields = append(fields, Field{
			Name:   spec.name,
			Label:  spec.label,
			Value:  spec.value(p),
			Kind:   spec.kind,
			Detail: spec.hidden,
			Hidden: spec.hidden && !revealed,
		})
	}

	detailsLabel := "See Details"
	if revealed {
		detailsLabel = "Hide Details"
	}

	return Card{
		ID:       p.ID,
		Name:     p.Name.String(),
		Fields:   fields,
		Revealed: revealed,
		Actions: []Action{
			{Name: ActionDetails, Label: detailsLabel, Method: "POST", Path: DetailsPath(p.ID), PlayerID: p.ID},
			{Name: ActionRemove, Label: "Remove from roster", Method: "POST", Path: RemovePath(p.ID), PlayerID: p.ID},
		},
	}
}

// DisplayFields returns the fields that are always shown
func (c Card) DisplayFields() []Field {
	return c.filter(func(f Field) bool { return !f.Detail })
}

// HiddenFields returns the detail fields, whether or not this card reveals them
func (c Card) HiddenFields() []Field {
	return c.filter(func(f Field) bool { return f.Detail })
}

// VisibleFields returns the fields currently shown on this card
func (c Card) VisibleFields() []Field {
	return c.filter(func(f Field) bool { return !f.Hidden })
}

func (c Card) filter(keep func(Field) bool) []Field {
	var out []Field
	for _, f := range c.Fields {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// Action returns the named action, or false if the card has none
func (c Card) Action(name string) (Action, bool) {
	for _, a := range c.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// DetailsPath is the form target of the details toggle
func DetailsPath(id model.PlayerID) string {
	return "/players/" + url.PathEscape(string(id)) + "/details"
}

// RemovePath is the form target of the remove control
func RemovePath(id model.PlayerID) string {
	return "/players/" + url.PathEscape(string(id)) + "/remove"
}
