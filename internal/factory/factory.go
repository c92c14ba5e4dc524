package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/puppybowl/internal/dependencies/clock"
	"github.com/mcoot/puppybowl/internal/dependencies/random"
	"github.com/mcoot/puppybowl/internal/metrics"
	"github.com/mcoot/puppybowl/internal/rosterapi"
	"github.com/mcoot/puppybowl/internal/services/roster"
	"github.com/mcoot/puppybowl/internal/services/viewer"
	"github.com/mcoot/puppybowl/internal/storage"
	"github.com/mcoot/puppybowl/internal/storage/memory"
	redisstorage "github.com/mcoot/puppybowl/internal/storage/redis"
	"github.com/mcoot/puppybowl/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// View-state storage
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	Random  random.Random
	Metrics *metrics.Recorder

	// Roster
	RosterClient     *rosterapi.Client
	RosterController *roster.Controller
	ViewerService    *viewer.Service

	// Change broadcast
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// RosterAPI configures the remote roster client.
	// A zero BaseURL means the default cohort's endpoint.
	RosterAPI rosterapi.Config
	// Viewer configures viewer identity hashing (optional)
	Viewer viewer.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Metrics receives upstream and HTTP metrics (optional)
	// If nil, a recorder on a fresh registry is created
	Metrics *metrics.Recorder
	// StorageType selects the view-state backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ViewerTTL bounds how long idle view state is kept in memory storage
	// If zero, defaults to memory.DefaultViewerTTL
	ViewerTTL time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	store, err := newStorage(cfg, clk)
	if err != nil {
		return nil, err
	}

	rec := cfg.Metrics
	if rec == nil {
		rec = metrics.NewRecorder()
	}

	app, err := newWithDependencies(store, clk, random.New(), rec, cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func newStorage(cfg Config, clk clock.Clock) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		ttl := cfg.ViewerTTL
		if ttl == 0 {
			ttl = memory.DefaultViewerTTL
		}
		return memory.NewWithClock(clk, ttl), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return redisStore, nil
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	rec *metrics.Recorder,
	cfg Config,
	logger *slog.Logger,
) (*App, error) {
	apiCfg := cfg.RosterAPI
	if apiCfg.BaseURL == "" {
		apiCfg.BaseURL = rosterapi.DefaultConfig().BaseURL
	}
	if apiCfg.Logger == nil {
		apiCfg.Logger = logger
	}
	if apiCfg.Metrics == nil {
		apiCfg.Metrics = rec
	}
	client := rosterapi.NewClient(apiCfg)

	viewerService, err := viewer.New(rnd, cfg.Viewer)
	if err != nil {
		return nil, err
	}

	hub := sse.NewHub(logger)
	go hub.Run()
	broadcaster := sse.NewBroadcaster(hub, logger)

	controller := roster.NewController(client, store, broadcaster, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		Metrics:          rec,
		RosterClient:     client,
		RosterController: controller,
		ViewerService:    viewerService,
		Hub:              hub,
		Broadcaster:      broadcaster,
	}, nil
}

// Close stops the SSE hub and releases storage
func (a *App) Close() error {
	a.Hub.Close()
	return a.Storage.Close()
}
