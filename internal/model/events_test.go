package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterEventJSON(t *testing.T) {
	data, err := json.Marshal(PlayerRemoved("42"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"player_removed","player_id":"42"}`, string(data))
}

func TestPlayerAdded(t *testing.T) {
	event := PlayerAdded("7")
	assert.Equal(t, EventPlayerAdded, event.Type)
	assert.Equal(t, PlayerID("7"), event.PlayerID)
}
