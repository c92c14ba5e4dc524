package storage

import (
	"context"

	"github.com/mcoot/puppybowl/internal/model"
)

// Storage holds per-viewer view state.
// It never stores player records, only which cards a viewer has expanded.
type Storage interface {
	// ToggleRevealed flips whether the player's hidden fields are shown to the viewer
	// and returns the new state. Concurrent toggles are applied one at a time.
	ToggleRevealed(ctx context.Context, viewer model.ViewerID, id model.PlayerID) (bool, error)

	// GetRevealed returns the set of players the viewer has expanded
	GetRevealed(ctx context.Context, viewer model.ViewerID) (map[model.PlayerID]bool, error)

	// ClearRevealed forgets one player for every viewer, so an id reused by the API
	// never starts out revealed
	ClearRevealed(ctx context.Context, id model.PlayerID) error

	// Close releases any underlying connections
	Close() error
}
