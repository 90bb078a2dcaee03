// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AccelByte/game-churn-features/pkg/activity"
	"github.com/AccelByte/game-churn-features/pkg/metrics"
	"github.com/AccelByte/game-churn-features/pkg/schema"
	"github.com/sirupsen/logrus"
)

// DefaultWorkers is the builder's default concurrency.
const DefaultWorkers = 4

// BuilderConfig configures one build run.
type BuilderConfig struct {
	// Reference is the instant all windows are measured against. The zero
	// value means "now"; tests pass a fixed instant for reproducible runs.
	Reference time.Time

	// ChurnThresholdDays is the inactivity threshold for the churn label.
	ChurnThresholdDays int

	// Workers bounds the number of concurrent per-player computations.
	Workers int
}

// Builder orchestrates the per-player calculators over every distinct
// (player, platform) pair of the merged collection and assembles the feature
// table. Per-player computation has no cross-player dependency, so keys are
// processed concurrently; the collection and the social source are the only
// shared state and both are read-only.
type Builder struct {
	collection *activity.Collection
	social     SocialSource
	cfg        BuilderConfig
}

// NewBuilder creates a builder over a merged collection.
func NewBuilder(collection *activity.Collection, social SocialSource, cfg BuilderConfig) *Builder {
	if cfg.Reference.IsZero() {
		cfg.Reference = time.Now().UTC()
	}
	if cfg.ChurnThresholdDays == 0 {
		cfg.ChurnThresholdDays = DefaultChurnThresholdDays
	}
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if social == nil {
		social = NoSocialSource{}
	}

	return &Builder{
		collection: collection,
		social:     social,
		cfg:        cfg,
	}
}

// Build computes one snapshot per (player, platform) pair. Output is sorted
// by platform then player ID so repeated runs against unchanged inputs emit
// identical rows. Build fails only when there are no keys to process or the
// context is canceled; every per-player calculator is total.
func (b *Builder) Build(ctx context.Context) ([]schema.FeatureSnapshot, error) {
	if b.collection == nil {
		return nil, fmt.Errorf("no activity collection to build from")
	}

	keys := b.collection.Keys()
	if len(keys) == 0 {
		return nil, fmt.Errorf("activity collection has no player/platform pairs")
	}

	started := time.Now()
	logrus.Infof("building features for %d player/platform pairs with %d workers (reference=%s)",
		len(keys), b.cfg.Workers, b.cfg.Reference.Format(time.RFC3339))

	jobs := make(chan schema.PlayerKey)
	results := make(chan schema.FeatureSnapshot, len(keys))

	var wg sync.WaitGroup
	for i := 0; i < b.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				results <- b.BuildSnapshot(key)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, key := range keys {
			select {
			case jobs <- key:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("feature build aborted: %w", err)
	}

	snapshots := make([]schema.FeatureSnapshot, 0, len(keys))
	for snap := range results {
		snapshots = append(snapshots, snap)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Key().Less(snapshots[j].Key())
	})

	metrics.SnapshotsBuilt.Add(float64(len(snapshots)))
	metrics.BuildDuration.Observe(time.Since(started).Seconds())
	logrus.Infof("built %d feature snapshots in %v", len(snapshots), time.Since(started))

	return snapshots, nil
}

// BuildSnapshot computes the complete snapshot for one key. It is total: a
// key with no activities yields the documented empty/churned snapshot.
func (b *Builder) BuildSnapshot(key schema.PlayerKey) schema.FeatureSnapshot {
	activities := b.collection.ForKey(key)

	stats := ComputeWindowStats(activities, b.cfg.Reference)
	trends := ComputeTrends(stats)
	perf := ComputePerformance(activities, b.cfg.Reference)
	social := b.social.Social(key)
	score := EngagementScore(stats, trends, perf, social)
	days, churned := ChurnLabel(activities, b.cfg.Reference, b.cfg.ChurnThresholdDays)

	return schema.FeatureSnapshot{
		PlayerID: key.PlayerID,
		Platform: key.Platform,

		Games7d:  stats.Games7d,
		Games14d: stats.Games14d,
		Games30d: stats.Games30d,

		Playtime7dHours:  stats.Playtime7dHours,
		Playtime14dHours: stats.Playtime14dHours,
		Playtime30dHours: stats.Playtime30dHours,

		AvgDailySessions7d:  stats.AvgDailySessions7d,
		AvgDailySessions14d: stats.AvgDailySessions14d,
		AvgDailySessions30d: stats.AvgDailySessions30d,
		MaxGapDays30d:       stats.MaxGapDays30d,

		GamesTrend7dVs14d:    trends.GamesTrend7dVs14d,
		PlaytimeTrend7dVs14d: trends.PlaytimeTrend7dVs14d,

		WinRate7d:       perf.WinRate7d,
		WinRate30d:      perf.WinRate30d,
		RatingCurrent:   perf.RatingCurrent,
		RatingChange30d: perf.RatingChange30d,

		UniquePeers30d: social.UniquePeers30d,
		PeerGames30d:   social.PeerGames30d,

		EngagementScore: score,

		DaysSinceLastGame: days,
		Churned:           churned,
	}
}
