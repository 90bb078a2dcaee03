// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package activity

import (
	"errors"
	"fmt"

	"github.com/AccelByte/game-churn-features/pkg/rawstore"
	"github.com/AccelByte/game-churn-features/pkg/schema"
	"github.com/AccelByte/game-churn-features/pkg/standardize"
	"github.com/sirupsen/logrus"
)

// ErrNoActivityData is returned when no platform yields any standardized
// activity: either the raw-data root is missing entirely or every platform
// directory is empty.
var ErrNoActivityData = errors.New("no raw activity data found for any platform")

// Loader drives every registered standardizer over the raw store and merges
// their output. Partial absence (some platforms with no data yet) is
// tolerated; only total absence fails the load.
type Loader struct {
	registry *standardize.Registry
	store    *rawstore.Store
}

// NewLoader creates a loader over the given registry and raw store.
func NewLoader(registry *standardize.Registry, store *rawstore.Store) *Loader {
	return &Loader{
		registry: registry,
		store:    store,
	}
}

// LoadAll standardizes every discovered identifier on every registered
// platform and returns the merged, time-sorted collection. Re-running
// against unchanged inputs produces an identical collection.
func (l *Loader) LoadAll() (*Collection, error) {
	if !l.store.Available() {
		return nil, fmt.Errorf("raw data store %s is unreachable: %w", l.store.Root(), ErrNoActivityData)
	}

	var all [][]schema.Activity
	total := 0

	for _, std := range l.registry.GetAll() {
		platform := std.Platform()

		ids, err := std.Discover(l.store)
		if err != nil {
			logrus.Warnf("failed to discover %s identifiers, skipping platform: %v", platform, err)
			continue
		}
		if len(ids) == 0 {
			logrus.Debugf("no raw data for platform %s", platform)
			continue
		}

		count := 0
		for _, id := range ids {
			acts, err := std.Standardize(l.store, id)
			if err != nil {
				logrus.Warnf("failed to standardize %s/%s, skipping player: %v", platform, id, err)
				continue
			}
			if len(acts) == 0 {
				continue
			}
			all = append(all, acts)
			count += len(acts)
		}

		logrus.Infof("standardized %d activities for %d players on %s", count, len(ids), platform)
		total += count
	}

	if total == 0 {
		return nil, ErrNoActivityData
	}

	merged := make([]schema.Activity, 0, total)
	for _, acts := range all {
		merged = append(merged, acts...)
	}

	collection := NewCollection(merged)
	logrus.Infof("merged activity collection: %d activities, %d player/platform pairs",
		collection.Len(), len(collection.Keys()))

	return collection, nil
}
