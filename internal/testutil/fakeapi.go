package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeRosterBasePath is the players collection path served by FakeRosterAPI
const FakeRosterBasePath = "/api/test-cohort/players"

// RecordedRequest is one request received by FakeRosterAPI
type RecordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// JSONBody decodes the recorded body into a map
func (r RecordedRequest) JSONBody() map[string]any {
	var m map[string]any
	_ = json.Unmarshal(r.Body, &m)
	return m
}

// FakeRosterAPI is an in-process stand-in for the remote roster API.
// It serves the nested envelope by default and records every request.
type FakeRosterAPI struct {
	server *httptest.Server

	mu           sync.Mutex
	players      []map[string]any
	requests     []RecordedRequest
	nextID       int
	bare         bool
	failStatus   int
	listOverride string
}

// NewFakeRosterAPI starts a fake API that is closed when the test ends
func NewFakeRosterAPI(t testing.TB) *FakeRosterAPI {
	t.Helper()
	f := &FakeRosterAPI{nextID: 1000}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the players collection endpoint
func (f *FakeRosterAPI) URL() string {
	return f.server.URL + FakeRosterBasePath
}

// UseBareEnvelope switches responses to bare arrays and objects
func (f *FakeRosterAPI) UseBareEnvelope() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bare = true
}

// Seed appends players to the roster
func (f *FakeRosterAPI) Seed(players ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players = append(f.players, players...)
}

// FailWith makes every request answer with status (0 restores normal behaviour)
func (f *FakeRosterAPI) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
}

// OverrideList makes list requests return body verbatim
func (f *FakeRosterAPI) OverrideList(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listOverride = body
}

// Requests returns a copy of every recorded request
func (f *FakeRosterAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// RequestsFor returns recorded requests with the given method
func (f *FakeRosterAPI) RequestsFor(method string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range f.Requests() {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

// ResetRequests clears the request log
func (f *FakeRosterAPI) ResetRequests() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

// PlayerIDs returns the ids currently on the roster, in order
func (f *FakeRosterAPI) PlayerIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.players))
	for _, p := range f.players {
		ids = append(ids, fmt.Sprint(p["id"]))
	}
	return ids
}

// PlayerFixture returns a complete player record
func PlayerFixture(id any, name string) map[string]any {
	return map[string]any{
		"id":        id,
		"name":      name,
		"breed":     "Beagle",
		"status":    "bench",
		"imageUrl":  "http://example.com/" + strings.ToLower(name) + ".png",
		"createdAt": "2023-03-01T00:00:00.000Z",
		"teamId":    7,
		"cohortId":  2302,
	}
}

func (f *FakeRosterAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, RecordedRequest{Method: r.Method, Path: r.URL.Path, Body: body})

	if f.failStatus != 0 {
		writeJSON(w, f.failStatus, map[string]any{
			"success": false,
			"error":   map[string]any{"name": "ServerError", "message": "fake failure"},
			"data":    nil,
		})
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, FakeRosterBasePath)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(rest, "/")

	switch {
	case id == "" && r.Method == http.MethodGet:
		f.list(w)
	case id == "" && r.Method == http.MethodPost:
		f.create(w, body)
	case id != "" && r.Method == http.MethodGet:
		f.get(w, id)
	case id != "" && r.Method == http.MethodDelete:
		f.remove(w, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *FakeRosterAPI) list(w http.ResponseWriter) {
	if f.listOverride != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.listOverride))
		return
	}
	players := append([]map[string]any{}, f.players...)
	if f.bare {
		writeJSON(w, http.StatusOK, players)
		return
	}
	f.ok(w, map[string]any{"players": players, "teams": []any{}})
}

func (f *FakeRosterAPI) get(w http.ResponseWriter, id string) {
	idx := f.indexOf(id)
	if idx < 0 {
		f.notFound(w, id)
		return
	}
	if f.bare {
		writeJSON(w, http.StatusOK, f.players[idx])
		return
	}
	f.ok(w, map[string]any{"player": f.players[idx]})
}

func (f *FakeRosterAPI) create(w http.ResponseWriter, body []byte) {
	var player map[string]any
	if err := json.Unmarshal(body, &player); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid body", "data": nil})
		return
	}
	if id, ok := player["id"]; !ok || id == "" {
		f.nextID++
		player["id"] = f.nextID
	}
	f.players = append(f.players, player)

	if f.bare {
		writeJSON(w, http.StatusOK, player)
		return
	}
	f.ok(w, map[string]any{"newPlayer": player})
}

func (f *FakeRosterAPI) remove(w http.ResponseWriter, id string) {
	idx := f.indexOf(id)
	if idx < 0 {
		f.notFound(w, id)
		return
	}
	f.players = append(f.players[:idx], f.players[idx+1:]...)
	if f.bare {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "error": nil, "data": nil})
}

func (f *FakeRosterAPI) indexOf(id string) int {
	for i, p := range f.players {
		if fmt.Sprint(p["id"]) == id {
			return i
		}
	}
	return -1
}

func (f *FakeRosterAPI) ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "error": nil, "data": data})
}

func (f *FakeRosterAPI) notFound(w http.ResponseWriter, id string) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false,
		"error":   map[string]any{"name": "NotFoundError", "message": "Player with id " + id + " not found"},
		"data":    nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
