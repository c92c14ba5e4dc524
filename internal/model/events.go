package model

// EventType identifies the type of roster event
type EventType string

const (
	EventPlayerAdded   EventType = "player_added"
	EventPlayerRemoved EventType = "player_removed"
)

// RosterEvent describes one change to the roster
type RosterEvent struct {
	Type     EventType `json:"type"`
	PlayerID PlayerID  `json:"player_id"`

	// Origin is the viewer whose action caused the change; it is never sent to pages
	Origin ViewerID `json:"-"`
}

// PlayerAdded creates the event for a newly created player
func PlayerAdded(id PlayerID) RosterEvent {
	return RosterEvent{Type: EventPlayerAdded, PlayerID: id}
}

// PlayerRemoved creates the event for a deleted player
func PlayerRemoved(id PlayerID) RosterEvent {
	return RosterEvent{Type: EventPlayerRemoved, PlayerID: id}
}

// From returns a copy of the event attributed to viewer
func (e RosterEvent) From(viewer ViewerID) RosterEvent {
	e.Origin = viewer
	return e
}
