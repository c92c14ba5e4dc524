package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PlayerID identifies a player on the remote roster API.
// The API may send it as a JSON string or number; it is always held as text.
type PlayerID string

// UnmarshalJSON accepts a JSON string or number
func (id *PlayerID) UnmarshalJSON(data []byte) error {
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("player id: %w", err)
	}
	*id = PlayerID(t)
	return nil
}

// Text is a display attribute decoded leniently from the API.
// Strings, numbers and booleans keep their textual form; null, objects and arrays
// become empty so one odd field never sinks a whole roster.
type Text string

// UnmarshalJSON decodes any JSON scalar into its text form
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*t = Text(strconv.FormatBool(b))
	case '{', '[':
		*t = ""
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	}
	return nil
}

// String returns the text value
func (t Text) String() string {
	return string(t)
}

// Player is a transient copy of a player record owned by the remote API
type Player struct {
	ID        PlayerID `json:"id"`
	Name      Text     `json:"name"`
	Breed     Text     `json:"breed"`
	Status    Text     `json:"status"`
	ImageURL  Text     `json:"imageUrl"`
	CreatedAt Text     `json:"createdAt"`
	TeamID    Text     `json:"teamId"`
	CohortID  Text     `json:"cohortId"`
}

// NewPlayer is the body of a create request.
// Every field is sent exactly as entered, with no type coercion.
type NewPlayer struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Breed     string `json:"breed"`
	Status    string `json:"status"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
	TeamID    string `json:"teamId"`
	CohortID  string `json:"cohortId"`
}

// NewPlayerFields lists the writable fields in form order, keyed by their JSON name
var NewPlayerFields = []string{"id", "name", "breed", "status", "imageUrl", "createdAt", "teamId", "cohortId"}

// NewPlayerFromValues builds a NewPlayer from a lookup of JSON field name to value
func NewPlayerFromValues(get func(field string) string) NewPlayer {
	return NewPlayer{
		ID:        get("id"),
		Name:      get("name"),
		Breed:     get("breed"),
		Status:    get("status"),
		ImageURL:  get("imageUrl"),
		CreatedAt: get("createdAt"),
		TeamID:    get("teamId"),
		CohortID:  get("cohortId"),
	}
}

// ViewerID identifies one browser's view state.
// It is derived from the viewer cookie and never equals the cookie value.
type ViewerID string
