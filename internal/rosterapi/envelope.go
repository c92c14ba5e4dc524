package rosterapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope selects how player data is wrapped in API responses.
// The public API has been seen both returning bare arrays and wrapping
// players in {"data": {"players": [...]}}, so the shape is configurable.
type Envelope string

const (
	// EnvelopeAuto detects the wrapper per response
	EnvelopeAuto Envelope = "auto"
	// EnvelopeNested expects {"success", "error", "data": {"players"|"player"|"newPlayer"}}
	EnvelopeNested Envelope = "nested"
	// EnvelopeBare expects a bare array for lists and a bare object for records
	EnvelopeBare Envelope = "bare"
)

// ParseEnvelope converts a config string into an Envelope.
// The empty string selects EnvelopeAuto.
func ParseEnvelope(s string) (Envelope, error) {
	switch Envelope(s) {
	case "", EnvelopeAuto:
		return EnvelopeAuto, nil
	case EnvelopeNested, EnvelopeBare:
		return Envelope(s), nil
	default:
		return "", fmt.Errorf("invalid envelope %q: must be auto, nested or bare", s)
	}
}

var errUpstream = errors.New("upstream reported failure")

type nestedPayload struct {
	Success *bool           `json:"success"`
	Error   json.RawMessage `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type nestedData struct {
	Players   json.RawMessage `json:"players"`
	Player    json.RawMessage `json:"player"`
	NewPlayer json.RawMessage `json:"newPlayer"`
}

// listPayload returns the raw player collection from a list response body.
// A nil result with a nil error means the payload carried no collection.
func (e Envelope) listPayload(body []byte) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)

	switch e {
	case EnvelopeBare:
		return body, nil
	case EnvelopeAuto:
		if isArray(body) {
			return body, nil
		}
	}

	// A bare scalar is a wrong shape, not a broken body
	if !isObject(body) && json.Valid(body) {
		return body, nil
	}

	data, err := nestedDataOf(body)
	if err != nil || data == nil {
		return nil, err
	}
	return data.Players, nil
}

// recordPayload returns the raw player object from a single-record response body.
// keys lists the members of data to try, in order.
func (e Envelope) recordPayload(body []byte, keys ...string) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)

	nested := e == EnvelopeNested
	if e == EnvelopeAuto {
		nested = hasMember(body, "data")
	}
	if !nested {
		return body, nil
	}

	payload, err := decodeNested(body)
	if err != nil {
		return nil, err
	}
	if isNull(payload.Data) {
		return nil, nil
	}

	var data nestedData
	if !isObject(payload.Data) {
		return nil, nil
	}
	if err := json.Unmarshal(payload.Data, &data); err != nil {
		return nil, err
	}

	for _, key := range keys {
		var raw json.RawMessage
		switch key {
		case "player":
			raw = data.Player
		case "newPlayer":
			raw = data.NewPlayer
		}
		if !isNull(raw) {
			return raw, nil
		}
	}

	// Some deployments put the record directly under data
	if hasMember(payload.Data, "id") {
		return payload.Data, nil
	}
	return nil, nil
}

// checkSuccess reports an upstream error when a nested body says success=false.
// Bodies that are not nested envelopes pass.
func checkSuccess(body []byte) error {
	body = bytes.TrimSpace(body)
	if !isObject(body) {
		return nil
	}
	_, err := decodeNested(body)
	return err
}

func nestedDataOf(body []byte) (*nestedData, error) {
	payload, err := decodeNested(body)
	if err != nil {
		return nil, err
	}
	if !isObject(payload.Data) {
		return nil, nil
	}

	var data nestedData
	if err := json.Unmarshal(payload.Data, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func decodeNested(body []byte) (*nestedPayload, error) {
	var payload nestedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Success != nil && !*payload.Success {
		return nil, upstreamMessage(payload.Error)
	}
	return &payload, nil
}

// upstreamMessage extracts a human readable message from the envelope's error member,
// which may be a string or an object with a message.
func upstreamMessage(raw json.RawMessage) error {
	if isNull(raw) {
		return errUpstream
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return fmt.Errorf("%w: %s", errUpstream, s)
	}

	var obj struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return fmt.Errorf("%w: %s", errUpstream, obj.Message)
	}
	return fmt.Errorf("%w: %s", errUpstream, string(raw))
}

func hasMember(body []byte, name string) bool {
	if !isObject(body) {
		return false
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return false
	}
	_, ok := members[name]
	return ok
}

func isArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
