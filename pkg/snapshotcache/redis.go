// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package snapshotcache caches feature snapshots in Redis for the per-player
// lookup service. The SQLite feature table remains the source of truth; the
// cache only absorbs repeated lookups between build runs.
package snapshotcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AccelByte/game-churn-features/pkg/schema"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is how long a cached snapshot stays valid. Snapshots only
	// change on build runs, which also repopulate the cache.
	DefaultTTL = 6 * time.Hour

	// KeyPrefix is the prefix for all snapshot cache keys.
	KeyPrefix = "churn_features:snapshot:"
)

// InitRedisClient initializes a Redis client and verifies connectivity with
// exponential backoff.
func InitRedisClient(ctx context.Context, addr, password string, maxRetries uint64) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		backoff.WithMaxRetries(b, maxRetries),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logrus.Infof("connected to Redis at %s", addr)
	return client, nil
}

// makeKey creates the cache key for a player snapshot.
func makeKey(platform schema.Platform, playerID string) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefix, platform, playerID)
}

// GetSnapshot retrieves a cached snapshot. A cache miss returns (nil, nil).
func GetSnapshot(ctx context.Context, client *redis.Client, platform schema.Platform, playerID string) (*schema.FeatureSnapshot, error) {
	key := makeKey(platform, playerID)

	data, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached snapshot: %w", err)
	}

	var snap schema.FeatureSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached snapshot: %w", err)
	}

	return &snap, nil
}

// PutSnapshot caches one snapshot with the default TTL.
func PutSnapshot(ctx context.Context, client *redis.Client, snap *schema.FeatureSnapshot) error {
	key := makeKey(snap.Platform, snap.PlayerID)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := client.Set(ctx, key, data, DefaultTTL).Err(); err != nil {
		return fmt.Errorf("failed to set cached snapshot: %w", err)
	}

	return nil
}

// PutAll caches a whole build run's snapshots. Individual failures are
// logged and skipped; a stale or missing cache entry only costs a database
// read on the next lookup.
func PutAll(ctx context.Context, client *redis.Client, snapshots []schema.FeatureSnapshot) {
	cached := 0
	for i := range snapshots {
		if err := PutSnapshot(ctx, client, &snapshots[i]); err != nil {
			logrus.Warnf("failed to cache snapshot %s/%s: %v",
				snapshots[i].Platform, snapshots[i].PlayerID, err)
			continue
		}
		cached++
	}

	logrus.Infof("cached %d/%d snapshots", cached, len(snapshots))
}
