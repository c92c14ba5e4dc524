package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mcoot/puppybowl/internal/cards"
	"github.com/mcoot/puppybowl/internal/model"
	"github.com/mcoot/puppybowl/internal/storage"
)

// PlayerClient is the remote roster API as the controller uses it
type PlayerClient interface {
	ListPlayers(ctx context.Context) ([]model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	CreatePlayer(ctx context.Context, player model.NewPlayer) (*model.Player, error)
	RemovePlayer(ctx context.Context, id model.PlayerID) (json.RawMessage, error)
}

// Notifier is told when the roster has changed on the remote API
type Notifier interface {
	RosterChanged(event model.RosterEvent)
}

type nopNotifier struct{}

func (nopNotifier) RosterChanged(model.RosterEvent) {}

// Controller ties the remote roster to per-viewer view state.
// Player records pass through it and are never kept.
type Controller struct {
	client   PlayerClient
	storage  storage.Storage
	notifier Notifier
	logger   *slog.Logger
}

// NewController creates a new roster Controller. A nil notifier is allowed.
func NewController(
	client PlayerClient,
	storage storage.Storage,
	notifier Notifier,
	logger *slog.Logger,
) *Controller {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Controller{
		client:   client,
		storage:  storage,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "roster")),
	}
}

// Roster fetches every player and builds the viewer's cards.
// On failure it returns an empty roster together with the error.
func (c *Controller) Roster(ctx context.Context, viewer model.ViewerID) ([]cards.Card, error) {
	players, err := c.client.ListPlayers(ctx)
	if err != nil {
		c.logger.Error("trouble fetching players",
			slog.String("error", err.Error()),
		)
		return []cards.Card{}, err
	}

	return cards.Build(players, c.revealed(ctx, viewer)), nil
}

// ToggleDetails fetches one player and flips whether the viewer sees its hidden fields.
// View state is left alone when the fetch fails.
func (c *Controller) ToggleDetails(ctx context.Context, viewer model.ViewerID, id model.PlayerID) (*cards.Card, error) {
	if id == "" {
		return nil, model.ErrMissingID
	}

	player, err := c.client.GetPlayer(ctx, id)
	if err != nil {
		c.logger.Error(fmt.Sprintf("trouble fetching player #%s", id),
			slog.String("player_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if player.ID == "" {
		player.ID = id
	}

	revealed, err := c.storage.ToggleRevealed(ctx, viewer, id)
	if err != nil {
		c.logger.Error("failed to toggle player details",
			slog.String("player_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	card := cards.New(*player, revealed)
	return &card, nil
}

// Create submits a new player and announces the change on success.
// viewer is the submitting browser, if any; its own pages are not notified.
func (c *Controller) Create(ctx context.Context, viewer model.ViewerID, player model.NewPlayer) (*model.Player, error) {
	created, err := c.client.CreatePlayer(ctx, player)
	if err != nil {
		c.logger.Error("something went wrong with adding that player",
			slog.String("name", player.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("player added",
		slog.String("player_id", string(created.ID)),
	)
	c.notifier.RosterChanged(model.PlayerAdded(created.ID).From(viewer))

	return created, nil
}

// Remove deletes a player, forgets every viewer's revealed flag for it and announces the
// change to every viewer but the one that removed it
func (c *Controller) Remove(ctx context.Context, viewer model.ViewerID, id model.PlayerID) error {
	if id == "" {
		return model.ErrMissingID
	}

	if _, err := c.client.RemovePlayer(ctx, id); err != nil {
		c.logger.Error(fmt.Sprintf("trouble removing player #%s from the roster", id),
			slog.String("player_id", string(id)),
			slog.String("error", err.Error()),
		)
		return err
	}

	if err := c.storage.ClearRevealed(ctx, id); err != nil {
		c.logger.Warn("failed to clear revealed flags",
			slog.String("player_id", string(id)),
			slog.String("error", err.Error()),
		)
	}

	c.logger.Info("player removed",
		slog.String("player_id", string(id)),
	)
	c.notifier.RosterChanged(model.PlayerRemoved(id).From(viewer))

	return nil
}

// Player fetches a single player
func (c *Controller) Player(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if id == "" {
		return nil, model.ErrMissingID
	}
	return c.client.GetPlayer(ctx, id)
}

// revealed loads the viewer's view state, falling back to all hidden
func (c *Controller) revealed(ctx context.Context, viewer model.ViewerID) map[model.PlayerID]bool {
	if viewer == "" {
		return map[model.PlayerID]bool{}
	}

	revealed, err := c.storage.GetRevealed(ctx, viewer)
	if err != nil {
		c.logger.Warn("failed to load view state",
			slog.String("error", err.Error()),
		)
		return map[model.PlayerID]bool{}
	}
	return revealed
}
