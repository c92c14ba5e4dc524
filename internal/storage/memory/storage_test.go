package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/puppybowl/internal/dependencies/mocks"
	"github.com/mcoot/puppybowl/internal/model"
)

type StorageSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = NewWithClock(s.clock, time.Hour)
	s.ctx = context.Background()
}

func (s *StorageSuite) TestToggleAlternates() {
	revealed, err := s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")
	s.Require().NoError(err)
	s.True(revealed)

	revealed, err = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")
	s.Require().NoError(err)
	s.False(revealed)

	revealed, err = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")
	s.Require().NoError(err)
	s.True(revealed)
}

func (s *StorageSuite) TestGetRevealedEmptyForUnknownViewer() {
	revealed, err := s.storage.GetRevealed(s.ctx, "nobody")
	s.Require().NoError(err)
	s.NotNil(revealed)
	s.Empty(revealed)
}

func (s *StorageSuite) TestViewersAreIsolated() {
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")

	other, err := s.storage.GetRevealed(s.ctx, "viewer-2")
	s.Require().NoError(err)
	s.Empty(other)

	mine, err := s.storage.GetRevealed(s.ctx, "viewer-1")
	s.Require().NoError(err)
	s.True(mine["9"])
}

func (s *StorageSuite) TestGetRevealedReturnsCopy() {
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")

	revealed, _ := s.storage.GetRevealed(s.ctx, "viewer-1")
	revealed["10"] = true

	again, _ := s.storage.GetRevealed(s.ctx, "viewer-1")
	s.False(again["10"])
}

func (s *StorageSuite) TestClearRevealed() {
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "10")

	s.Require().NoError(s.storage.ClearRevealed(s.ctx, "9"))

	revealed, _ := s.storage.GetRevealed(s.ctx, "viewer-1")
	s.Equal(1, len(revealed))
	s.True(revealed["10"])
}

func (s *StorageSuite) TestClearRevealedAppliesToEveryViewer() {
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-2", "9")

	s.Require().NoError(s.storage.ClearRevealed(s.ctx, "9"))

	for _, viewer := range []model.ViewerID{"viewer-1", "viewer-2"} {
		revealed, _ := s.storage.GetRevealed(s.ctx, viewer)
		s.False(revealed["9"], string(viewer))
	}
}

func (s *StorageSuite) TestClearRevealedUnknownPlayer() {
	s.NoError(s.storage.ClearRevealed(s.ctx, "9"))
}

func (s *StorageSuite) TestIdleViewerExpires() {
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")
	s.Equal(1, s.storage.ViewerCount())

	s.clock.Advance(2 * time.Hour)

	revealed, err := s.storage.GetRevealed(s.ctx, "viewer-1")
	s.Require().NoError(err)
	s.Empty(revealed)
	s.Equal(0, s.storage.ViewerCount())
}

func (s *StorageSuite) TestAbandonedViewersAreSwept() {
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-2", "9")

	s.clock.Advance(2 * time.Hour)
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-3", "9")

	s.storage.mu.Lock()
	defer s.storage.mu.Unlock()
	s.Len(s.storage.viewers, 1)
	s.Contains(s.storage.viewers, model.ViewerID("viewer-3"))
}

func (s *StorageSuite) TestToggleRefreshesExpiry() {
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")
	s.clock.Advance(50 * time.Minute)
	_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "10")
	s.clock.Advance(50 * time.Minute)

	revealed, _ := s.storage.GetRevealed(s.ctx, "viewer-1")
	s.True(revealed["9"])
	s.True(revealed["10"])
}

func (s *StorageSuite) TestConcurrentTogglesAreSerialised() {
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.storage.ToggleRevealed(s.ctx, "viewer-1", "9")
		}()
	}
	wg.Wait()

	// An even number of flips leaves the card hidden
	revealed, _ := s.storage.GetRevealed(s.ctx, "viewer-1")
	s.False(revealed["9"])
}
