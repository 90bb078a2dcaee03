// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AccelByte/game-churn-features/pkg/activity"
	"github.com/AccelByte/game-churn-features/pkg/common"
	"github.com/AccelByte/game-churn-features/pkg/features"
	"github.com/AccelByte/game-churn-features/pkg/snapshotcache"
	"github.com/AccelByte/game-churn-features/pkg/synthetic"

	"github.com/sirupsen/logrus"
)

// Run executes a build and then either exits or keeps serving lookups,
// depending on configuration. In serve mode it blocks until a shutdown
// signal is received.
func (a *App) Run(ctx context.Context) error {
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	if err := a.RunBuild(ctx); err != nil {
		if !errors.Is(err, activity.ErrNoActivityData) {
			return err
		}
		// A missing raw store is only fatal in batch mode. The lookup
		// service can still serve snapshots from a previous run.
		if a.lookupServer == nil {
			return err
		}
		logrus.Warnf("build skipped: %v", err)
	}

	if a.lookupServer == nil {
		return a.Shutdown(ctx)
	}

	if err := a.lookupServer.Start(ctx); err != nil {
		return err
	}

	logrus.Info("application started successfully")

	// Wait for shutdown signal
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

// RunBuild executes one full feature build: standardize raw exports into
// unified activities, compute per-player snapshots, persist them to the
// feature table, and refresh the snapshot cache.
func (a *App) RunBuild(ctx context.Context) error {
	scope := common.NewScope(ctx, "App.RunBuild")
	defer scope.Finish()

	reference, err := a.cfg.Reference()
	if err != nil {
		return fmt.Errorf("invalid reference time: %w", err)
	}
	scope.SetAttributes("reference_time", reference.Format("2006-01-02T15:04:05Z07:00"))

	if a.cfg.SyntheticMode {
		return a.runSyntheticBuild(scope)
	}

	// Phase 1: standardize
	loadScope := scope.NewChildScope("LoadActivities")
	loader := activity.NewLoader(a.registry, a.rawStore)
	collection, err := loader.LoadAll()
	if err != nil {
		loadScope.TraceError(err)
		loadScope.Finish()
		return err
	}
	loadScope.Log.Infof("standardized %d activities for %d players",
		collection.Len(), len(collection.Keys()))
	loadScope.Finish()

	// Phase 2: compute features
	buildScope := scope.NewChildScope("BuildSnapshots")
	social := features.NewPeerGraphSource(a.rawStore, a.registry.SocialPlatforms())
	builder := features.NewBuilder(collection, social, features.BuilderConfig{
		Reference:          reference,
		ChurnThresholdDays: a.cfg.ChurnThresholdDays,
		Workers:            a.cfg.FeatureWorkers,
	})
	snapshots, err := builder.Build(buildScope.Ctx)
	if err != nil {
		buildScope.TraceError(err)
		buildScope.Finish()
		return fmt.Errorf("feature build failed: %w", err)
	}
	buildScope.Log.Infof("built %d feature snapshots", len(snapshots))
	buildScope.Finish()

	// Phase 3: persist
	persistScope := scope.NewChildScope("PersistSnapshots")
	if err := a.featureStore.ReplaceAll(persistScope.Ctx, snapshots); err != nil {
		persistScope.TraceError(err)
		persistScope.Finish()
		return fmt.Errorf("failed to persist snapshots: %w", err)
	}
	persistScope.Log.Infof("persisted %d snapshots to the feature table", len(snapshots))
	persistScope.Finish()

	// Phase 4: refresh the snapshot cache
	if a.redisClient != nil {
		cacheScope := scope.NewChildScope("CacheSnapshots")
		snapshotcache.PutAll(cacheScope.Ctx, a.redisClient, snapshots)
		cacheScope.Finish()
	}

	return nil
}

// runSyntheticBuild persists a seeded synthetic snapshot set in place of a
// real build. Used for model development when no collector output exists.
func (a *App) runSyntheticBuild(scope *common.Scope) error {
	genScope := scope.NewChildScope("GenerateSynthetic")
	defer genScope.Finish()

	snapshots := synthetic.Generate(synthetic.Config{
		Players:   a.cfg.SyntheticPlayers,
		ChurnRate: a.cfg.SyntheticChurnRate,
		Seed:      a.cfg.SyntheticSeed,
	})
	genScope.Log.Infof("generated %d synthetic snapshots (seed=%d)", len(snapshots), a.cfg.SyntheticSeed)

	if err := a.featureStore.ReplaceAll(genScope.Ctx, snapshots); err != nil {
		genScope.TraceError(err)
		return fmt.Errorf("failed to persist synthetic snapshots: %w", err)
	}

	if a.redisClient != nil {
		snapshotcache.PutAll(genScope.Ctx, a.redisClient, snapshots)
	}

	return nil
}
