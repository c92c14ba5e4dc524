package rosterapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPayloadAutoDetectsShape(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bare array", body: ` [{"id":1}]`, want: `[{"id":1}]`},
		{name: "nested", body: `{"data":{"players":[{"id":2}]}}`, want: `[{"id":2}]`},
		{name: "nested without players", body: `{"data":{"teams":[]}}`, want: ``},
		{name: "bare number", body: `42`, want: `42`},
		{name: "bare string", body: `"players"`, want: `"players"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := EnvelopeAuto.listPayload([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(raw))
		})
	}
}

func TestRecordPayload(t *testing.T) {
	tests := []struct {
		name     string
		envelope Envelope
		body     string
		keys     []string
		want     string
	}{
		{name: "auto bare", envelope: EnvelopeAuto, body: `{"id":1,"name":"Fido"}`, keys: []string{"player"}, want: `{"id":1,"name":"Fido"}`},
		{name: "auto nested player", envelope: EnvelopeAuto, body: `{"data":{"player":{"id":1}}}`, keys: []string{"player"}, want: `{"id":1}`},
		{name: "nested newPlayer first", envelope: EnvelopeNested, body: `{"data":{"newPlayer":{"id":2},"player":{"id":3}}}`, keys: []string{"newPlayer", "player"}, want: `{"id":2}`},
		{name: "nested record directly under data", envelope: EnvelopeNested, body: `{"data":{"id":4}}`, keys: []string{"player"}, want: `{"id":4}`},
		{name: "nested null data", envelope: EnvelopeNested, body: `{"data":null}`, keys: []string{"player"}, want: ``},
		{name: "bare forced", envelope: EnvelopeBare, body: `{"data":{"player":{"id":1}}}`, keys: []string{"player"}, want: `{"data":{"player":{"id":1}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.envelope.recordPayload([]byte(tt.body), tt.keys...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(raw))
		})
	}
}

func TestCheckSuccess(t *testing.T) {
	assert.NoError(t, checkSuccess([]byte(`{"success":true,"data":null}`)))
	assert.NoError(t, checkSuccess([]byte(`{}`)))
	assert.NoError(t, checkSuccess([]byte(`[]`)))

	err := checkSuccess([]byte(`{"success":false,"error":"gone"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errUpstream)
	assert.Contains(t, err.Error(), "gone")
}
