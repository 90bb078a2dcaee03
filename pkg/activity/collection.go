// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package activity loads and merges standardized activities from all
// platforms into one unified, time-sorted, read-only collection. The
// collection is built once per run and shared by all feature workers.
package activity

import (
	"sort"

	"github.com/AccelByte/game-churn-features/pkg/schema"
)

// Collection is the unified activity set, sorted by timestamp and indexed by
// (player, platform) key. It is immutable after construction and safe for
// concurrent readers.
type Collection struct {
	activities []schema.Activity
	byKey      map[schema.PlayerKey][]schema.Activity
}

// NewCollection builds a collection from activities in any order. Sorting is
// stable on timestamp with a key tiebreak so that repeated runs over the
// same inputs produce an identical collection.
func NewCollection(activities []schema.Activity) *Collection {
	sorted := make([]schema.Activity, len(activities))
	copy(sorted, activities)

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		if sorted[i].Platform != sorted[j].Platform {
			return sorted[i].Platform < sorted[j].Platform
		}
		return sorted[i].PlayerID < sorted[j].PlayerID
	})

	byKey := make(map[schema.PlayerKey][]schema.Activity)
	for _, a := range sorted {
		key := schema.PlayerKey{PlayerID: a.PlayerID, Platform: a.Platform}
		byKey[key] = append(byKey[key], a)
	}

	return &Collection{
		activities: sorted,
		byKey:      byKey,
	}
}

// Len returns the total number of activities.
func (c *Collection) Len() int {
	return len(c.activities)
}

// All returns the full time-ascending activity slice. Callers must not
// mutate it.
func (c *Collection) All() []schema.Activity {
	return c.activities
}

// ForKey returns the time-ascending activities for one (player, platform)
// pair, or nil if the pair was never observed.
func (c *Collection) ForKey(key schema.PlayerKey) []schema.Activity {
	return c.byKey[key]
}

// Keys returns every distinct (player, platform) pair, sorted by platform
// then player ID.
func (c *Collection) Keys() []schema.PlayerKey {
	keys := make([]schema.PlayerKey, 0, len(c.byKey))
	for key := range c.byKey {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})

	return keys
}
