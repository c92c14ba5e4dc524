package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/puppybowl/internal/model"
)

// EventRosterChanged tells open pages to re-fetch the roster fragment.
// The roster container listens with hx-trigger="sse:roster-changed".
const EventRosterChanged = "roster-changed"

// Broadcaster turns roster changes into hub events
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// RosterChanged announces that a player was added or removed.
// The event is sent as JSON data; pages only need the event name.
// Pages of the viewer that made the change are skipped, since that browser
// already reloads the roster after its own redirect.
func (b *Broadcaster) RosterChanged(event model.RosterEvent) {
	if b == nil || b.hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("failed to encode roster event", slog.String("error", err.Error()))
		return
	}

	b.logger.Debug("broadcasting roster change",
		slog.String("type", string(event.Type)),
		slog.String("player_id", string(event.PlayerID)),
		slog.Int("clients", b.hub.ClientCount()))
	b.hub.BroadcastEventExcept(EventRosterChanged, string(data), event.Origin)
}
