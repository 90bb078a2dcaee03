// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"

	"github.com/AccelByte/game-churn-features/internal/bootstrap"
	"github.com/AccelByte/game-churn-features/internal/config"
	"github.com/AccelByte/game-churn-features/internal/server"
	"github.com/AccelByte/game-churn-features/pkg/features/featurestore"
	"github.com/AccelByte/game-churn-features/pkg/rawstore"
	"github.com/AccelByte/game-churn-features/pkg/snapshotcache"
	"github.com/AccelByte/game-churn-features/pkg/standardize"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	registry          *standardize.Registry
	rawStore          *rawstore.Store
	featureStore      *featurestore.Store
	redisClient       *redis.Client
	metricsServer     *server.MetricsServer
	lookupServer      *server.LookupServer
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Telemetry (OpenTelemetry tracing)
// 2. Redis (snapshot cache for the lookup service)
// 3. Feature table (SQLite)
// 4. Platform standardizers (YAML configuration)
// 5. Servers (metrics, lookup)
//
// If you add new external dependencies, initialize them here
// before the servers that depend on them.
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(cfg.ServiceName, cfg.Environment)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	// ============================================================
	// Step 2: Initialize Redis
	// ============================================================
	// The snapshot cache is an optimization in front of the feature
	// table. An unreachable Redis disables caching but never fails
	// a build run.
	// ============================================================
	if cfg.CacheSnapshots {
		client, err := snapshotcache.InitRedisClient(
			ctx,
			cfg.RedisHost+":"+cfg.RedisPort,
			cfg.RedisPassword,
			uint64(cfg.RedisMaxRetries),
		)
		if err != nil {
			logrus.Warnf("snapshot cache disabled: %v", err)
		} else {
			app.redisClient = client
		}
	}

	// ============================================================
	// Step 3: Open the feature table
	// ============================================================
	featureStore, err := featurestore.Open(cfg.FeaturesDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open feature table at %s: %w", cfg.FeaturesDBPath, err)
	}
	app.featureStore = featureStore
	logrus.Infof("opened feature table at %s", cfg.FeaturesDBPath)

	// ============================================================
	// Step 4: Bootstrap platform standardizers
	// ============================================================
	registry, err := bootstrap.InitStandardizers(cfg.PlatformsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init standardizers: %w", err)
	}
	app.registry = registry
	app.rawStore = rawstore.New(cfg.RawDataDir)

	// ============================================================
	// Step 5: Setup servers
	// ============================================================
	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	if cfg.ServeLookup {
		app.lookupServer = server.NewLookupServer(cfg.LookupPort, app.featureStore, app.redisClient)
		if err := app.lookupServer.Setup(); err != nil {
			return nil, fmt.Errorf("failed to setup lookup server: %w", err)
		}
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// Shutdown gracefully shuts down all application components.
//
// ============================================================
// DEVELOPER: Shutdown order is critical
// ============================================================
// Components are shut down in reverse dependency order:
// 1. Stop accepting new requests (lookup + metrics servers)
// 2. Close external connections (Redis, feature table)
// 3. Flush telemetry data (OpenTelemetry)
//
// IMPORTANT: Shutdown errors are logged but don't stop the
// shutdown sequence. Each component gets a chance to clean up.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	// ============================================================
	// Step 1: Shutdown servers (stop accepting new requests)
	// ============================================================
	if a.lookupServer != nil {
		if err := a.lookupServer.Shutdown(ctx); err != nil {
			logrus.Errorf("lookup server shutdown error: %v", err)
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			logrus.Errorf("metrics server shutdown error: %v", err)
		}
	}

	// ============================================================
	// Step 2: Close external connections
	// ============================================================
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
	}
	if a.featureStore != nil {
		if err := a.featureStore.Close(); err != nil {
			logrus.Errorf("feature table close error: %v", err)
		}
	}

	// ============================================================
	// Step 3: Flush telemetry data
	// ============================================================
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
