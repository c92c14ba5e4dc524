package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/puppybowl/internal/dependencies/clock"
	"github.com/mcoot/puppybowl/internal/model"
	"github.com/mcoot/puppybowl/internal/storage"
)

// DefaultViewerTTL is how long an idle viewer's state is kept
const DefaultViewerTTL = 24 * time.Hour

// sweepInterval bounds how often toggles scan for expired viewers
const sweepInterval = time.Minute

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.Mutex

	clock     clock.Clock
	ttl       time.Duration
	viewers   map[model.ViewerID]*viewerState
	lastSweep time.Time
}

type viewerState struct {
	revealed  map[model.PlayerID]bool
	touchedAt time.Time
}

// New creates a new in-memory storage instance using the system clock
func New() *Storage {
	return NewWithClock(clock.New(), DefaultViewerTTL)
}

// NewWithClock creates an in-memory storage that expires viewers idle for longer than ttl.
// A ttl of zero keeps state forever.
func NewWithClock(clk clock.Clock, ttl time.Duration) *Storage {
	return &Storage{
		clock:   clk,
		ttl:     ttl,
		viewers: make(map[model.ViewerID]*viewerState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ToggleRevealed(ctx context.Context, viewer model.ViewerID, id model.PlayerID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Viewers that never come back are only dropped here
	s.sweep()

	state := s.live(viewer)
	if state == nil {
		state = &viewerState{revealed: make(map[model.PlayerID]bool)}
		s.viewers[viewer] = state
	}
	state.touchedAt = s.clock.Now()

	if state.revealed[id] {
		delete(state.revealed, id)
		return false, nil
	}
	state.revealed[id] = true
	return true, nil
}

func (s *Storage) GetRevealed(ctx context.Context, viewer model.ViewerID) (map[model.PlayerID]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[model.PlayerID]bool)
	state := s.live(viewer)
	if state == nil {
		return out, nil
	}
	for id := range state.revealed {
		out[id] = true
	}
	return out, nil
}

func (s *Storage) ClearRevealed(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for viewer := range s.viewers {
		if state := s.live(viewer); state != nil {
			delete(state.revealed, id)
		}
	}
	return nil
}

// ViewerCount returns the number of viewers with unexpired state
func (s *Storage) ViewerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for viewer := range s.viewers {
		if s.live(viewer) != nil {
			count++
		}
	}
	return count
}

func (s *Storage) Close() error {
	return nil
}

// sweep drops every expired viewer, at most once per sweepInterval. Callers hold s.mu.
func (s *Storage) sweep() {
	if s.ttl <= 0 {
		return
	}
	now := s.clock.Now()
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for viewer := range s.viewers {
		s.live(viewer)
	}
}

// live returns the viewer's state, dropping it if expired. Callers hold s.mu.
func (s *Storage) live(viewer model.ViewerID) *viewerState {
	state, ok := s.viewers[viewer]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.clock.Now().Sub(state.touchedAt) > s.ttl {
		delete(s.viewers, viewer)
		return nil
	}
	return state
}
