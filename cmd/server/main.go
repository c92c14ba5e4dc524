package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/mcoot/puppybowl/internal/api"
	"github.com/mcoot/puppybowl/internal/factory"
	"github.com/mcoot/puppybowl/internal/rosterapi"
	redisstorage "github.com/mcoot/puppybowl/internal/storage/redis"
	"github.com/mcoot/puppybowl/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg, err := configFromEnv(logger)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	logger.Info("roster API configured",
		slog.String("url", app.RosterClient.BaseURL()),
		slog.String("storage", storageName(cfg.StorageType)),
	)

	// Find static files directory
	staticDir := findStaticDir()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		RosterController: app.RosterController,
		Metrics:          app.Metrics,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:           logger,
		RosterController: app.RosterController,
		ViewerService:    app.ViewerService,
		Hub:              app.Hub,
		Metrics:          app.Metrics,
		StaticDir:        staticDir,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Listen(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// Close SSE streams first so Shutdown does not wait on them
		app.Hub.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// configFromEnv reads the factory configuration from environment variables
func configFromEnv(logger *slog.Logger) (factory.Config, error) {
	rosterCfg := rosterapi.DefaultConfig()
	rosterCfg.Logger = logger

	if url := os.Getenv("ROSTER_API_URL"); url != "" {
		rosterCfg.BaseURL = url
	} else if cohort := os.Getenv("ROSTER_COHORT"); cohort != "" {
		rosterCfg.BaseURL = rosterapi.URLForCohort(cohort)
	}

	envelope, err := rosterapi.ParseEnvelope(os.Getenv("ROSTER_ENVELOPE"))
	if err != nil {
		return factory.Config{}, err
	}
	rosterCfg.Envelope = envelope

	if raw := os.Getenv("ROSTER_API_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return factory.Config{}, fmt.Errorf("invalid ROSTER_API_TIMEOUT %q", raw)
		}
		rosterCfg.Timeout = timeout
	}

	cfg := factory.Config{
		RosterAPI:   rosterCfg,
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}
	if secret := os.Getenv("VIEWER_SECRET"); secret != "" {
		cfg.Viewer.Secret = []byte(secret)
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return factory.Config{}, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	return cfg, nil
}

func storageName(storageType string) string {
	if storageType == "" {
		return factory.StorageTypeMemory
	}
	return storageType
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	// Try common locations
	candidates := []string{
		"internal/web/static",
		"./internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// Default to relative path
	return "internal/web/static"
}
