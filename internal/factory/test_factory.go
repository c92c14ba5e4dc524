package factory

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcoot/puppybowl/internal/dependencies/mocks"
	"github.com/mcoot/puppybowl/internal/metrics"
	"github.com/mcoot/puppybowl/internal/rosterapi"
	"github.com/mcoot/puppybowl/internal/storage/memory"
	"github.com/mcoot/puppybowl/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App talking to the roster API at apiURL, with mocked
// clock and randomness, in-memory view state and an isolated metrics registry
func NewTestApp(apiURL string) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	store := memory.NewWithClock(mockClock, memory.DefaultViewerTTL)
	rec := metrics.NewRecorderWithRegistry(prometheus.NewRegistry())

	cfg := Config{
		RosterAPI: rosterapi.Config{BaseURL: apiURL},
	}

	app, err := newWithDependencies(store, mockClock, mockRandom, rec, cfg, testutil.NopLogger())
	if err != nil {
		// Only a bad viewer secret can fail here, and none is set
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
