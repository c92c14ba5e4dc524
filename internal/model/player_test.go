package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerDecodesNumericFieldsAsText(t *testing.T) {
	raw := `{"id": 42, "name": "Fido", "breed": "Lab", "status": "bench",
		"imageUrl": "http://x/y.png", "createdAt": "2023-01-01T00:00:00.000Z",
		"teamId": null, "cohortId": 2302}`

	var p Player
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, PlayerID("42"), p.ID)
	assert.Equal(t, Text("Fido"), p.Name)
	assert.Equal(t, Text(""), p.TeamID)
	assert.Equal(t, Text("2302"), p.CohortID)
}

func TestPlayerMissingFieldsAreEmpty(t *testing.T) {
	var p Player
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc"}`), &p))

	assert.Equal(t, PlayerID("abc"), p.ID)
	assert.Empty(t, p.Name)
	assert.Empty(t, p.ImageURL)
}

func TestCompositeFieldsDecodeAsEmpty(t *testing.T) {
	var players []Player
	raw := `[{"id":1,"name":"Fido","teamId":{"x":1}},{"id":2,"name":["Rex"],"breed":"Pug"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &players))

	require.Len(t, players, 2)
	assert.Equal(t, Text("Fido"), players[0].Name)
	assert.Empty(t, players[0].TeamID)
	assert.Empty(t, players[1].Name)
	assert.Equal(t, Text("Pug"), players[1].Breed)
}

func TestTextRejectsMalformedScalars(t *testing.T) {
	var text Text
	assert.Error(t, text.UnmarshalJSON([]byte(`tru`)))
}

func TestTextKeepsBooleans(t *testing.T) {
	var text Text
	require.NoError(t, json.Unmarshal([]byte(`true`), &text))
	assert.Equal(t, "true", text.String())
}

func TestNewPlayerKeepsStrings(t *testing.T) {
	values := map[string]string{
		"id": "9", "name": "Fido", "breed": "Lab", "status": "bench",
		"imageUrl": "http://x/y.png", "createdAt": "2023-01-01", "teamId": "1", "cohortId": "2302",
	}
	np := NewPlayerFromValues(func(field string) string { return values[field] })

	data, err := json.Marshal(np)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for field, want := range values {
		assert.Equal(t, want, decoded[field], "field %s", field)
	}
}

func TestNewPlayerOmitsEmptyID(t *testing.T) {
	data, err := json.Marshal(NewPlayer{Name: "Rex"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"id"`)
}
