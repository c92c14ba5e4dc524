package rosterapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/puppybowl/internal/metrics"
	"github.com/mcoot/puppybowl/internal/model"
)

// Config controls how the client reaches the roster API
type Config struct {
	// BaseURL is the players collection endpoint, e.g. https://host/api/<cohort>/players
	BaseURL string
	// Envelope selects the response wrapper; zero value means auto
	Envelope Envelope
	// HTTPClient overrides the default client (Timeout is then ignored)
	HTTPClient *http.Client
	// Timeout bounds each request; zero means 30s
	Timeout time.Duration
	// Logger receives shape warnings (optional)
	Logger *slog.Logger
	// Metrics records every request (optional)
	Metrics *metrics.Recorder
}

// DefaultConfig returns the configuration for the default cohort
func DefaultConfig() Config {
	return Config{
		BaseURL:  URLForCohort(DefaultCohort),
		Envelope: EnvelopeAuto,
		Timeout:  defaultHTTPTimeout,
	}
}

// Client talks to the roster API. Every call makes exactly one HTTP request.
type Client struct {
	baseURL    string
	envelope   Envelope
	httpClient httpDoer
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewClient creates a client from cfg
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	envelope := cfg.Envelope
	if envelope == "" {
		envelope = EnvelopeAuto
	}

	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		envelope:   envelope,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     logger.With(slog.String("component", "rosterapi")),
		metrics:    cfg.Metrics,
	}
}

// BaseURL returns the normalized collection endpoint
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListPlayers fetches the whole roster.
// A payload whose player collection is not an array yields an empty roster and a warning.
func (c *Client) ListPlayers(ctx context.Context) ([]model.Player, error) {
	start := time.Now()
	players, err := c.listPlayers(ctx)
	c.metrics.RecordUpstreamCall(OpList, time.Since(start), err)
	return players, err
}

func (c *Client) listPlayers(ctx context.Context) ([]model.Player, error) {
	body, err := c.do(ctx, OpList, "", http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	raw, err := c.envelope.listPayload(body)
	if err != nil {
		return nil, c.decodeError(OpList, "", err)
	}

	if !isArray(raw) {
		c.logger.WarnContext(ctx, "roster payload players is not a list",
			slog.String("envelope", string(c.envelope)),
			slog.String("payload", snippet(raw)))
		return []model.Player{}, nil
	}

	players := []model.Player{}
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, &Error{Op: OpList, Kind: KindDecode, Err: err}
	}
	return players, nil
}

// GetPlayer fetches a single player
func (c *Client) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	start := time.Now()
	player, err := c.getPlayer(ctx, id)
	c.metrics.RecordUpstreamCall(OpGet, time.Since(start), err)
	return player, err
}

func (c *Client) getPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	target, err := c.resourceURL(OpGet, id)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, OpGet, id, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeRecord(OpGet, id, body, "player")
}

// CreatePlayer submits a new player and returns the record the server created
func (c *Client) CreatePlayer(ctx context.Context, player model.NewPlayer) (*model.Player, error) {
	start := time.Now()
	created, err := c.createPlayer(ctx, player)
	c.metrics.RecordUpstreamCall(OpCreate, time.Since(start), err)
	return created, err
}

func (c *Client) createPlayer(ctx context.Context, player model.NewPlayer) (*model.Player, error) {
	body, err := c.do(ctx, OpCreate, "", http.MethodPost, c.baseURL, player)
	if err != nil {
		return nil, err
	}
	return c.decodeRecord(OpCreate, "", body, "newPlayer", "player")
}

// RemovePlayer deletes a player and returns the server's response body
func (c *Client) RemovePlayer(ctx context.Context, id model.PlayerID) (json.RawMessage, error) {
	start := time.Now()
	resp, err := c.removePlayer(ctx, id)
	c.metrics.RecordUpstreamCall(OpRemove, time.Since(start), err)
	return resp, err
}

func (c *Client) removePlayer(ctx context.Context, id model.PlayerID) (json.RawMessage, error) {
	target, err := c.resourceURL(OpRemove, id)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, OpRemove, id, http.MethodDelete, target, nil)
	if err != nil {
		return nil, err
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, &Error{Op: OpRemove, ID: id, Kind: KindDecode, Err: errors.New("response is not valid JSON")}
	}
	if err := checkSuccess(body); err != nil {
		return nil, c.decodeError(OpRemove, id, err)
	}
	return json.RawMessage(body), nil
}

func (c *Client) resourceURL(op string, id model.PlayerID) (string, error) {
	if strings.TrimSpace(string(id)) == "" {
		return "", &Error{Op: op, Kind: KindShape, Err: model.ErrMissingID}
	}
	return c.baseURL + "/" + url.PathEscape(string(id)), nil
}

func (c *Client) decodeRecord(op string, id model.PlayerID, body []byte, keys ...string) (*model.Player, error) {
	raw, err := c.envelope.recordPayload(body, keys...)
	if err != nil {
		return nil, c.decodeError(op, id, err)
	}
	if !isObject(raw) {
		return nil, &Error{Op: op, ID: id, Kind: KindShape, Err: fmt.Errorf("expected a player object, got %s", snippet(raw))}
	}

	var player model.Player
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, &Error{Op: op, ID: id, Kind: KindDecode, Err: err}
	}
	return &player, nil
}

func (c *Client) decodeError(op string, id model.PlayerID, err error) error {
	kind := KindDecode
	if errors.Is(err, errUpstream) {
		kind = KindUpstream
	}
	return &Error{Op: op, ID: id, Kind: kind, Err: err}
}

// do performs one HTTP request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, op string, id model.PlayerID, method, target string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Op: op, ID: id, Kind: KindDecode, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, &Error{Op: op, ID: id, Kind: KindTransport, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, ID: id, Kind: KindTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, ID: id, Kind: KindTransport, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Op:         op,
			ID:         id,
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        errors.New(snippet(respBody)),
		}
	}

	return respBody, nil
}

func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "<empty>"
	}
	if len(s) > errorBodyLimit {
		s = s[:errorBodyLimit] + "..."
	}
	return s
}
